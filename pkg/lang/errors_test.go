package lang

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithFrameWrapsPlainError(t *testing.T) {
	plain := errors.New("something went wrong")
	wrapped := WithFrame(plain, "foo", []Value{NewNumFromInt64(1)})
	assert.Equal(t, BadTypes, wrapped.Kind)
	assert.Equal(t, "something went wrong", wrapped.Message)
	assert.Len(t, wrapped.Frames, 1)
	assert.Equal(t, "foo", wrapped.Frames[0].Callee)
}

func TestWithFrameAccumulatesInnermostFirst(t *testing.T) {
	base := NewError(DivideByZero, "division by zero")
	once := WithFrame(base, "inner", nil)
	twice := WithFrame(once, "outer", nil)

	assert.Len(t, twice.Frames, 2)
	assert.Equal(t, "inner", twice.Frames[0].Callee)
	assert.Equal(t, "outer", twice.Frames[1].Callee)
}

func TestFrameStringQuotesStrings(t *testing.T) {
	f := Frame{Callee: "%", Args: []Value{Str("a"), NewNumFromInt64(2)}}
	assert.Equal(t, `%("a", 2)`, f.String())
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "BadTypes", BadTypes.String())
	assert.Equal(t, "DivideByZero", DivideByZero.String())
	assert.Equal(t, "UndefinedSymbol", UndefinedSymbol.String())
}

func TestAsErrorPassesThroughAndWraps(t *testing.T) {
	lerr := NewError(UserError, "boom")
	assert.Same(t, lerr, AsError(lerr))

	plain := errors.New("oops")
	wrapped := AsError(plain)
	assert.Equal(t, BadTypes, wrapped.Kind)
	assert.Equal(t, "oops", wrapped.Message)
}
