package lang

import "fmt"

// registerArithmetic wires the numeric/comparison primitives of spec.md
// §4.3 into root. Grounded on pkg/core/eval.go's NewCoreEnvironment
// arithmetic builtins (same polymorphism-by-type-switch idiom), rewired
// onto the arbitrary-precision Num engine in numeric.go.
func registerArithmetic(root *Environment) {
	def := func(name, doc string, fn BuiltinFn) { root.Define(Symbol(name), builtin(name, doc, fn)) }

	def("+", "sum numbers, concatenate strings/lists/tuples of the same variant", biPlus)
	def("-", "subtract numbers; negate with one argument", biMinus)
	def("*", "multiply numbers, or repeat a string N times", biTimes)
	def("/", "divide numbers; fails with DivideByZero on a zero divisor", biDivide)
	def("%", "remainder of two numbers; fails with DivideByZero on a zero divisor", biMod)
	def("sqrt", "square root of a non-negative number", biSqrt)
	def("inc", "add 1 to a number", biInc)
	def("int", "truncate a number toward zero", biInt)

	def("=", "true if all arguments are structurally equal", biEq)
	def("<", "true if arguments are in strictly increasing order", biLt)
	def("<=", "true if arguments are in non-decreasing order", biLe)
	def(">", "true if arguments are in strictly decreasing order", biGt)
	def(">=", "true if arguments are in non-increasing order", biGe)

	def("not", "logical negation; only false and nil are falsy", biNot)
}

func asNum(v Value) (Num, bool) {
	n, ok := v.(Num)
	return n, ok
}

func biPlus(args []Value, _ *Environment) (Value, error) {
	if len(args) == 0 {
		return NewNumFromInt64(0), nil
	}
	switch first := args[0].(type) {
	case Num:
		acc := first
		for _, a := range args[1:] {
			n, ok := asNum(a)
			if !ok {
				return nil, fmt.Errorf("+ cannot mix num with %s", TypeName(a))
			}
			var err error
			acc, err = Add(acc, n)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	case Str:
		acc := string(first)
		for _, a := range args[1:] {
			s, ok := a.(Str)
			if !ok {
				return nil, fmt.Errorf("+ cannot mix str with %s", TypeName(a))
			}
			acc += string(s)
		}
		return Str(acc), nil
	case *Seq:
		if first.Kind() == QuoteKind {
			return nil, fmt.Errorf("+ does not operate on quote values")
		}
		elems := first.Elements()
		for _, a := range args[1:] {
			s, ok := a.(*Seq)
			if !ok || s.Kind() != first.Kind() {
				return nil, fmt.Errorf("+ requires matching list/tuple variants, got %s", TypeName(a))
			}
			elems = append(elems, s.Elements()...)
		}
		return NewSeq(first.Kind(), elems...), nil
	default:
		return nil, fmt.Errorf("+ expects numbers, strings, lists or tuples, got %s", TypeName(args[0]))
	}
}

func biMinus(args []Value, _ *Environment) (Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("- expects at least 1 argument")
	}
	first, ok := asNum(args[0])
	if !ok {
		return nil, numericTypeError("-", args[0])
	}
	if len(args) == 1 {
		return Neg(first)
	}
	acc := first
	for _, a := range args[1:] {
		n, ok := asNum(a)
		if !ok {
			return nil, numericTypeError("-", a)
		}
		var err error
		acc, err = Sub(acc, n)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func biTimes(args []Value, _ *Environment) (Value, error) {
	if len(args) == 0 {
		return NewNumFromInt64(1), nil
	}
	if s, ok := args[0].(Str); ok {
		return repeatString(s, args[1:])
	}
	first, ok := asNum(args[0])
	if !ok {
		return nil, numericTypeError("*", args[0])
	}
	acc := first
	for _, a := range args[1:] {
		n, ok := asNum(a)
		if !ok {
			return nil, numericTypeError("*", a)
		}
		var err error
		acc, err = Mul(acc, n)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func repeatString(s Str, rest []Value) (Value, error) {
	if len(rest) != 1 {
		return nil, fmt.Errorf("* on a string expects exactly one numeric repeat count")
	}
	n, ok := asNum(rest[0])
	if !ok || !n.IsInteger() || n.Sign() < 0 {
		return nil, fmt.Errorf("* on a string expects a non-negative integer repeat count")
	}
	count64, err := n.Int64()
	if err != nil {
		return nil, err
	}
	count := int(count64)
	out := make([]byte, 0, len(s)*count)
	for i := 0; i < count; i++ {
		out = append(out, s...)
	}
	return Str(out), nil
}

func biDivide(args []Value, _ *Environment) (Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("/ expects at least 2 arguments")
	}
	acc, ok := asNum(args[0])
	if !ok {
		return nil, numericTypeError("/", args[0])
	}
	for _, a := range args[1:] {
		n, ok := asNum(a)
		if !ok {
			return nil, numericTypeError("/", a)
		}
		result, divByZero, err := Div(acc, n)
		if divByZero {
			return nil, NewError(DivideByZero, "division by zero")
		}
		if err != nil {
			return nil, err
		}
		acc = result
	}
	return acc, nil
}

func biMod(args []Value, _ *Environment) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%% expects 2 arguments")
	}
	x, ok1 := asNum(args[0])
	y, ok2 := asNum(args[1])
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%% expects numbers")
	}
	result, divByZero, err := Mod(x, y)
	if divByZero {
		return nil, NewError(DivideByZero, "modulo by zero")
	}
	return result, err
}

func biSqrt(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sqrt expects 1 argument")
	}
	n, ok := asNum(args[0])
	if !ok {
		return nil, numericTypeError("sqrt", args[0])
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("sqrt expects a non-negative number")
	}
	return Sqrt(n)
}

func biInc(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("inc expects 1 argument")
	}
	n, ok := asNum(args[0])
	if !ok {
		return nil, numericTypeError("inc", args[0])
	}
	return Inc(n)
}

func biInt(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("int expects 1 argument")
	}
	n, ok := asNum(args[0])
	if !ok {
		return nil, numericTypeError("int", args[0])
	}
	return Trunc(n), nil
}

func biEq(args []Value, _ *Environment) (Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("= expects at least 2 arguments")
	}
	for _, a := range args[1:] {
		if !Equal(args[0], a) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func numChain(name string, args []Value, ok func(cmp int) bool) (Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%s expects at least 2 arguments", name)
	}
	prev, okType := asNum(args[0])
	if !okType {
		return nil, numericTypeError(name, args[0])
	}
	for _, a := range args[1:] {
		n, okType := asNum(a)
		if !okType {
			return nil, numericTypeError(name, a)
		}
		if !ok(prev.Cmp(n)) {
			return Bool(false), nil
		}
		prev = n
	}
	return Bool(true), nil
}

func biLt(args []Value, _ *Environment) (Value, error) {
	return numChain("<", args, func(c int) bool { return c < 0 })
}

func biLe(args []Value, _ *Environment) (Value, error) {
	return numChain("<=", args, func(c int) bool { return c <= 0 })
}

func biGt(args []Value, _ *Environment) (Value, error) {
	return numChain(">", args, func(c int) bool { return c > 0 })
}

func biGe(args []Value, _ *Environment) (Value, error) {
	return numChain(">=", args, func(c int) bool { return c >= 0 })
}

func biNot(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("not expects 1 argument")
	}
	return Bool(!IsTruthy(args[0])), nil
}
