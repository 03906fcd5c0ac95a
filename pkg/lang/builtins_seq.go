package lang

import "fmt"

// registerSeq wires the lazy sequence engine of spec.md §4.4 into root:
// range/map/filter/take/zip build LazySeq pipelines, doall/foreach/reduce
// drive them. Grounded on pkg/core/eval.go's higher-order builtins
// (map/filter/reduce over a realized list), generalized to the
// demand-driven pull model lazyseq.go implements fresh.
func registerSeq(root *Environment) {
	def := func(name, doc string, fn BuiltinFn) { root.Define(Symbol(name), builtin(name, doc, fn)) }

	def("range", "a lazy sequence counting from 0 (or from), optionally stopping before to", biRange)
	def("map", "lazily apply a function to every element of a sequence", biMap)
	def("filter", "lazily keep elements of a sequence for which a predicate holds", biFilter)
	def("take", "lazily take at most n elements of a sequence", biTake)
	def("doall", "eagerly realize a lazy sequence into a list", biDoall)
	def("foreach", "eagerly call a function on each element of a sequence for effect", biForeach)
	def("reduce", "fold a sequence left-to-right with a binary function", biReduce)
}

func applyFn1(fn *Function, env *Environment) func(Value) (Value, error) {
	return func(v Value) (Value, error) { return Apply(fn, []Value{v}, env) }
}

func asFunction(op string, v Value) (*Function, error) {
	fn, ok := v.(*Function)
	if !ok {
		return nil, fmt.Errorf("%s expects a function, got %s", op, TypeName(v))
	}
	return fn, nil
}

func biRange(args []Value, _ *Environment) (Value, error) {
	switch len(args) {
	case 0:
		return rangeSeq(NewNumFromInt64(0), Num{}, false), nil
	case 1:
		to, ok := asNum(args[0])
		if !ok {
			return nil, numericTypeError("range", args[0])
		}
		return rangeSeq(NewNumFromInt64(0), to, true), nil
	case 2:
		from, ok1 := asNum(args[0])
		to, ok2 := asNum(args[1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("range expects numbers")
		}
		return rangeSeq(from, to, true), nil
	default:
		return nil, fmt.Errorf("range expects 0, 1, or 2 arguments")
	}
}

func biMap(args []Value, env *Environment) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("map expects 2 arguments")
	}
	fn, err := asFunction("map", args[0])
	if err != nil {
		return nil, err
	}
	src, err := ToLazySeq(args[1])
	if err != nil {
		return nil, err
	}
	return mapSeq(applyFn1(fn, env), src), nil
}

func biFilter(args []Value, env *Environment) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("filter expects 2 arguments")
	}
	fn, err := asFunction("filter", args[0])
	if err != nil {
		return nil, err
	}
	src, err := ToLazySeq(args[1])
	if err != nil {
		return nil, err
	}
	pred := func(v Value) (bool, error) {
		out, err := Apply(fn, []Value{v}, env)
		if err != nil {
			return false, err
		}
		return IsTruthy(out), nil
	}
	return filterSeq(pred, src), nil
}

func biTake(args []Value, _ *Environment) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("take expects 2 arguments")
	}
	n, ok := asNum(args[0])
	if !ok {
		return nil, numericTypeError("take", args[0])
	}
	count, err := n.Int64()
	if err != nil {
		return nil, err
	}
	src, err := ToLazySeq(args[1])
	if err != nil {
		return nil, err
	}
	return takeSeq(count, src), nil
}

func biDoall(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("doall expects 1 argument")
	}
	src, err := ToLazySeq(args[0])
	if err != nil {
		return nil, err
	}
	return Doall(src)
}

func biForeach(args []Value, env *Environment) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("foreach expects 2 arguments")
	}
	fn, err := asFunction("foreach", args[0])
	if err != nil {
		return nil, err
	}
	src, err := ToLazySeq(args[1])
	if err != nil {
		return nil, err
	}
	if err := Foreach(func(v Value) error {
		_, err := Apply(fn, []Value{v}, env)
		return err
	}, src); err != nil {
		return nil, err
	}
	return Nil{}, nil
}

func biReduce(args []Value, env *Environment) (Value, error) {
	var fnVal, seqVal, init Value
	hasInit := false
	switch len(args) {
	case 2:
		fnVal, seqVal = args[0], args[1]
	case 3:
		fnVal, init, seqVal = args[0], args[1], args[2]
		hasInit = true
	default:
		return nil, fmt.Errorf("reduce expects 2 or 3 arguments")
	}
	fn, err := asFunction("reduce", fnVal)
	if err != nil {
		return nil, err
	}
	src, err := ToLazySeq(seqVal)
	if err != nil {
		return nil, err
	}
	return Reduce(func(acc, x Value) (Value, error) {
		return Apply(fn, []Value{acc, x}, env)
	}, init, hasInit, src)
}
