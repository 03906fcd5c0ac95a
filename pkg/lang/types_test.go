package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTruthy(t *testing.T) {
	assert.True(t, IsTruthy(Bool(true)))
	assert.False(t, IsTruthy(Bool(false)))
	assert.False(t, IsTruthy(Nil{}))
	assert.True(t, IsTruthy(NewNumFromInt64(0)), "zero is truthy; only false/nil are falsy")
	assert.True(t, IsTruthy(Str("")), "empty string is truthy")
	assert.True(t, IsTruthy((*Seq)(nil)), "empty list is truthy")
}

func TestEqualNilCrossVariant(t *testing.T) {
	assert.True(t, Equal(Nil{}, (*Seq)(nil)))
	assert.True(t, Equal((*Seq)(nil), Nil{}))
	assert.False(t, Equal(NewSeq(QuoteKind), Nil{}), "an empty Quote is not Nil; only an empty List is")
	assert.False(t, Equal(NewSeq(TupleKind), Nil{}), "an empty Tuple is not Nil; only an empty List is")
}

func TestEqualSeqKindMustMatch(t *testing.T) {
	list := NewSeq(ListKind, NewNumFromInt64(1))
	tuple := NewSeq(TupleKind, NewNumFromInt64(1))
	assert.False(t, Equal(list, tuple), "List and Tuple are distinct equality classes even with equal elements")

	assert.False(t, Equal(NewSeq(TupleKind), NewSeq(ListKind)), "empty Tuple and empty List are distinct variants")
	assert.False(t, Equal(NewSeq(QuoteKind), NewSeq(ListKind)), "empty Quote and empty List are distinct variants")
	assert.True(t, Equal(NewSeq(TupleKind), NewSeq(TupleKind)), "two empty Tuples are equal to each other")
}

func TestSeqConsAndRest(t *testing.T) {
	empty := NewSeq(ListKind)
	one := Cons(NewNumFromInt64(1), empty)
	two := Cons(NewNumFromInt64(2), one)
	assert.Equal(t, "(2 1)", two.String())
	assert.Equal(t, "(1)", two.Rest().String())
	assert.Equal(t, "2", two.First().String())
}

func TestAsListConvertsQuote(t *testing.T) {
	q := NewSeq(QuoteKind, Symbol("a"), Symbol("b"))
	l := q.AsList()
	assert.Equal(t, ListKind, l.Kind())
	assert.Equal(t, "(a b)", l.String())
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "num", TypeName(NewNumFromInt64(1)))
	assert.Equal(t, "bool", TypeName(Bool(true)))
	assert.Equal(t, "nil", TypeName(Nil{}))
	assert.Equal(t, "str", TypeName(Str("x")))
	assert.Equal(t, "symbol", TypeName(Symbol("x")))
	assert.Equal(t, "list", TypeName(NewSeq(ListKind)))
	assert.Equal(t, "quote", TypeName(NewSeq(QuoteKind, Symbol("x"))))
	assert.Equal(t, "tuple", TypeName(NewSeq(TupleKind, NewNumFromInt64(1))))
	assert.Equal(t, "dict", TypeName(NewDict()))
}
