package lang

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinType(t *testing.T) {
	env := NewRootEnvironment()
	assert.Equal(t, Str("num"), evalString(t, env, "(type 1)"))
	assert.Equal(t, Str("str"), evalString(t, env, `(type "x")`))
	assert.Equal(t, Str("bool"), evalString(t, env, "(type true)"))
	assert.Equal(t, Str("nil"), evalString(t, env, "(type nil)"))
	assert.Equal(t, Str("list"), evalString(t, env, "(type '(1 2))"))
	assert.Equal(t, Str("tuple"), evalString(t, env, "(type (tuple 1 2))"))
	assert.Equal(t, Str("function"), evalString(t, env, "(type +)"))
}

func TestBuiltinDoc(t *testing.T) {
	env := NewRootEnvironment()
	result := evalString(t, env, "(doc +)")
	s, ok := result.(Str)
	require.True(t, ok)
	assert.NotEmpty(t, string(s))
}

func TestBuiltinAllSymbols(t *testing.T) {
	env := NewRootEnvironment()
	result := evalString(t, env, "(all-symbols)")
	seq, ok := result.(*Seq)
	require.True(t, ok)
	assert.Greater(t, seq.Len(), 0)
}

func TestBuiltinEvalQuoted(t *testing.T) {
	env := NewRootEnvironment()
	assert.Equal(t, "3", evalString(t, env, `(eval '(+ 1 2))`).String())
	assert.Equal(t, "42", evalString(t, env, `(eval (quote 42))`).String())
}

func TestBuiltinErrAndPanic(t *testing.T) {
	env := NewRootEnvironment()

	form, err := ReadString(`(err "boom")`)
	require.NoError(t, err)
	_, evalErr := Eval(form, env)
	require.Error(t, evalErr)
	assert.Equal(t, UserError, AsError(evalErr).Kind)

	form, err = ReadString(`(panic "unrecoverable")`)
	require.NoError(t, err)
	_, evalErr = Eval(form, env)
	require.Error(t, evalErr)
	assert.Equal(t, PanicError, AsError(evalErr).Kind)
}

func TestBuiltinFsOpenReadWriteClose(t *testing.T) {
	env := NewRootEnvironment()
	path := filepath.Join(t.TempDir(), "scratch.txt")
	defer os.Remove(path)

	evalString(t, env, `(def f (fs::open "`+path+`"))`)
	evalString(t, env, `(call_method f "write" "hello\n")`)
	evalString(t, env, `(call_method f "close")`)

	evalString(t, env, `(def g (fs::open "`+path+`"))`)
	line := evalString(t, env, `(call_method g "read-line")`)
	assert.Equal(t, Str("hello"), line)
	evalString(t, env, `(call_method g "close")`)
}

func TestBuiltinMethodsListsFileRecord(t *testing.T) {
	env := NewRootEnvironment()
	path := filepath.Join(t.TempDir(), "scratch2.txt")
	defer os.Remove(path)

	evalString(t, env, `(def f (fs::open "`+path+`"))`)
	result := evalString(t, env, `(methods f)`)
	d, ok := result.(*Dict)
	require.True(t, ok)
	assert.True(t, d.Has(Str("read-line")))
	assert.True(t, d.Has(Str("write")))
	assert.True(t, d.Has(Str("close")))
	evalString(t, env, `(call_method f "close")`)
}
