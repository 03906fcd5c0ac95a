package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalString(t *testing.T, env *Environment, src string) Value {
	t.Helper()
	form, err := ReadString(src)
	require.NoError(t, err, "parsing %q", src)
	result, err := Eval(form, env)
	require.NoError(t, err, "evaluating %q", src)
	return result
}

func TestEvalSelfEvaluating(t *testing.T) {
	env := NewRootEnvironment()
	tests := []struct{ input, expected string }{
		{"42", "42"},
		{"-42", "-42"},
		{"3.14", "3.14"},
		{`"hello"`, "hello"},
		{"nil", "nil"},
		{"true", "true"},
		{"()", "()"},
	}
	for _, tt := range tests {
		result := evalString(t, env, tt.input)
		assert.Equal(t, tt.expected, result.String(), "input %q", tt.input)
	}
}

func TestEvalArithmetic(t *testing.T) {
	env := NewRootEnvironment()
	tests := []struct{ input, expected string }{
		{"(+ 1 2)", "3"},
		{"(+ 1 2 3)", "6"},
		{"(+)", "0"},
		{"(- 5 3)", "2"},
		{"(- 10)", "-10"},
		{"(* 2 3 4)", "24"},
		{"(/ 6 2)", "3"},
		{"(% 7 2)", "1"},
		{"(inc 41)", "42"},
		{"(int 3.7)", "3"},
		{"(int -3.7)", "-3"},
	}
	for _, tt := range tests {
		result := evalString(t, env, tt.input)
		assert.Equal(t, tt.expected, result.String(), "input %q", tt.input)
	}
}

func TestEvalComparisonAndEquality(t *testing.T) {
	env := NewRootEnvironment()
	assert.Equal(t, Bool(true), evalString(t, env, "(= 1 1 1)"))
	assert.Equal(t, Bool(false), evalString(t, env, "(= 1 2)"))
	assert.Equal(t, Bool(true), evalString(t, env, "(< 1 2 3)"))
	assert.Equal(t, Bool(false), evalString(t, env, "(< 1 3 2)"))
	assert.Equal(t, Bool(true), evalString(t, env, "(= '(1 2) '(1 2))"))
	assert.Equal(t, Bool(true), evalString(t, env, "(= nil '())"))
}

func TestEvalSpecialForms(t *testing.T) {
	env := NewRootEnvironment()

	// if: empty list is truthy, only false/nil are falsy (spec.md §8 scenario 7).
	assert.Equal(t, Str("empty"), evalString(t, env, `(if () "empty" "nope")`))
	assert.Equal(t, Str("b"), evalString(t, env, `(if nil "a" "b")`))
	assert.Equal(t, Str("b"), evalString(t, env, `(if false "a" "b")`))

	assert.Equal(t, "2", evalString(t, env, `(cond false 1 true 2)`).String())
	assert.Equal(t, Str("two"), evalString(t, env, `(match 2 1 "one" 2 "two" _ "other")`))
	assert.Equal(t, Str("other"), evalString(t, env, `(match 99 1 "one" 2 "two" _ "other")`))

	assert.Equal(t, "3", evalString(t, env, `(do 1 2 3)`).String())
	assert.Equal(t, "3", evalString(t, env, `(bind (x 1 y 2) (+ x y))`).String())

	evalString(t, env, `(def answer 42)`)
	assert.Equal(t, "42", evalString(t, env, "answer").String())
	// redefinition silently overwrites (Open Question 4).
	evalString(t, env, `(def answer 43)`)
	assert.Equal(t, "43", evalString(t, env, "answer").String())

	evalString(t, env, `(defn add2 (x y) (+ x y))`)
	assert.Equal(t, "7", evalString(t, env, "(add2 3 4)").String())

	assert.Equal(t, "9", evalString(t, env, "((fn (x) (* x x)) 3)").String())
}

func TestEvalAndOr(t *testing.T) {
	env := NewRootEnvironment()
	assert.Equal(t, Bool(true), evalString(t, env, "(and true true)"))
	assert.Equal(t, Bool(false), evalString(t, env, "(and true false)"))
	assert.Equal(t, "3", evalString(t, env, "(or false 3)").String())
	assert.Equal(t, Bool(false), evalString(t, env, "(or false false)"))
}

func TestEvalVariadicAndRest(t *testing.T) {
	env := NewRootEnvironment()
	evalString(t, env, `(defn sum-all (& xs) (reduce + 0 xs))`)
	assert.Equal(t, "10", evalString(t, env, "(sum-all 1 2 3 4)").String())
}

func TestQuoteDesugaring(t *testing.T) {
	env := NewRootEnvironment()
	// Quoting a list form reads directly as the Quote variant.
	result := evalString(t, env, "'(1 2 3)")
	assert.Equal(t, "(1 2 3)", result.String())
	assert.Equal(t, "list", TypeName(result))

	// Quoting a bare symbol prevents it from resolving.
	result = evalString(t, env, "'foo")
	assert.Equal(t, Symbol("foo"), result)
}

func TestTupleEquality(t *testing.T) {
	env := NewRootEnvironment()
	assert.Equal(t, Bool(true), evalString(t, env, "(= (tuple 1 2) (tuple 1 2))"))
	assert.Equal(t, Bool(true), evalString(t, env, "(empty? (tuple))"))
}

func TestErrorUndefinedSymbol(t *testing.T) {
	env := NewRootEnvironment()
	form, err := ReadString("totally-unbound")
	require.NoError(t, err)
	_, err = Eval(form, env)
	require.Error(t, err)
	lerr := AsError(err)
	assert.Equal(t, UndefinedSymbol, lerr.Kind)
}

// TestErrorStacktrace is spec.md §8's literal error-path scenario: the
// innermost frame names the builtin that actually rejected the bad type,
// and each caller above it appends its own frame outward.
func TestErrorStacktrace(t *testing.T) {
	env := NewRootEnvironment()
	evalString(t, env, `(defn bottom (x) (% x 2))`)

	form, err := ReadString(`(bottom "a")`)
	require.NoError(t, err)
	_, err = Eval(form, env)
	require.Error(t, err)

	lerr := AsError(err)
	assert.Equal(t, BadTypes, lerr.Kind)
	require.Len(t, lerr.Frames, 2)
	assert.Equal(t, "%", lerr.Frames[0].Callee)
	assert.Equal(t, "%(\"a\", 2)", lerr.Frames[0].String())
	assert.Equal(t, "bottom(\"a\")", lerr.Frames[1].String())
}
