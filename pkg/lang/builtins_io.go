package lang

import (
	"bufio"
	"fmt"
	"os"
)

// registerIO wires printing, introspection and error/record primitives
// (spec.md §4.6/§6). Grounded on pkg/core/eval.go's print/type/doc
// builtins, extended with eval/err/panic/all-symbols and the Record
// dispatch pair (call_method/methods).
func registerIO(root *Environment) {
	def := func(name, doc string, fn BuiltinFn) { root.Define(Symbol(name), builtin(name, doc, fn)) }

	stdout := bufio.NewWriter(os.Stdout)
	def("print", "print a value's display form with no trailing newline", printerBuiltin(stdout, false))
	def("println", "print a value's display form followed by a newline", printerBuiltin(stdout, true))

	def("type", "the type name of a value, as a string", biType)
	def("doc", "the doc string of a function, or nil", biDoc)
	def("all-symbols", "every symbol bound in the current environment, as a list", biAllSymbols)

	def("eval", "re-evaluate a Value (e.g. an already-read List) in the root environment", biEval)
	def("err", "construct a UserError with the given message", biErr)
	def("panic", "raise a Panic error, unwinding past ordinary error handling", biPanic)

	def("call_method", "invoke a named method on a record", biCallMethod)
	def("methods", "the method table of a record, as a dict of name to doc string", biMethods)
	def("fs::open", "open a file by path as a record exposing read-line/write/close", biFsOpen)
}

// printerBuiltin shares one buffered stdout writer across print/println,
// flushing after every call since REPL output must appear immediately.
func printerBuiltin(w *bufio.Writer, newline bool) BuiltinFn {
	return func(args []Value, _ *Environment) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("print expects 1 argument")
		}
		text := displayString(args[0])
		if newline {
			fmt.Fprintln(w, text)
		} else {
			fmt.Fprint(w, text)
		}
		if err := w.Flush(); err != nil {
			return nil, err
		}
		return args[0], nil
	}
}

// displayString is print/println's rendering: a Str prints its raw bytes
// (not the quoted form errors use), everything else uses String().
func displayString(v Value) string {
	if s, ok := v.(Str); ok {
		return string(s)
	}
	return v.String()
}

func biType(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type expects 1 argument")
	}
	return Str(TypeName(args[0])), nil
}

func biDoc(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("doc expects 1 argument")
	}
	fn, ok := args[0].(*Function)
	if !ok || fn.Doc == "" {
		return Nil{}, nil
	}
	return Str(fn.Doc), nil
}

func biAllSymbols(args []Value, env *Environment) (Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("all-symbols expects 0 arguments")
	}
	syms := env.Symbols()
	elems := make([]Value, len(syms))
	for i, s := range syms {
		elems[i] = s
	}
	return NewSeq(ListKind, elems...), nil
}

func biEval(args []Value, env *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("eval expects 1 argument")
	}
	return Eval(args[0], env.Root())
}

func biErr(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("err expects 1 argument")
	}
	msg, ok := args[0].(Str)
	if !ok {
		return nil, fmt.Errorf("err expects a string, got %s", TypeName(args[0]))
	}
	return nil, NewError(UserError, "%s", string(msg))
}

func biPanic(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("panic expects 1 argument")
	}
	msg, ok := args[0].(Str)
	if !ok {
		return nil, fmt.Errorf("panic expects a string, got %s", TypeName(args[0]))
	}
	return nil, NewError(PanicError, "%s", string(msg))
}

func biCallMethod(args []Value, _ *Environment) (Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("call_method expects a record, a method name, and arguments")
	}
	rec, ok := args[0].(Record)
	if !ok {
		return nil, fmt.Errorf("call_method expects a record, got %s", TypeName(args[0]))
	}
	name, ok := args[1].(Str)
	if !ok {
		return nil, fmt.Errorf("call_method expects a method name string, got %s", TypeName(args[1]))
	}
	return CallMethod(rec, string(name), args[2:])
}

func biMethods(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("methods expects 1 argument")
	}
	rec, ok := args[0].(Record)
	if !ok {
		return nil, fmt.Errorf("methods expects a record, got %s", TypeName(args[0]))
	}
	return MethodsList(rec), nil
}

func biFsOpen(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("fs::open expects 1 argument")
	}
	path, ok := args[0].(Str)
	if !ok {
		return nil, fmt.Errorf("fs::open expects a path string, got %s", TypeName(args[0]))
	}
	return OpenFileRecord(string(path))
}
