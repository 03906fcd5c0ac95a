package lang

import (
	"fmt"
	"sort"
)

// registerCollections wires list/tuple/dict primitives (spec.md §4.6).
// Grounded on pkg/core/eval_collections.go's count/length/nth/empty?
// builtins, generalized to the List/Quote/Tuple/Dict Value model.
func registerCollections(root *Environment) {
	def := func(name, doc string, fn BuiltinFn) { root.Define(Symbol(name), builtin(name, doc, fn)) }

	def("list", "build a list from the given arguments", biList)
	def("tuple", "build a tuple from the given arguments", biTuple)
	def("head", "the first element of a list", biHead)
	def("tail", "every element but the first of a list", biTail)
	def("cons", "prepend an element to a list", biCons)
	def("nth", "the element of a collection at a 0-based index", biNth)
	def("len", "the number of elements in a collection", biLen)
	def("empty?", "true if a collection has no elements", biEmptyP)
	def("sort", "sort a list of numbers or strings ascending", biSort)
	def("apply", "call a function with a list of arguments", biApply)
	def("zip", "pair elements of two sequences; stops at the shorter", biZip)

	def("dict", "build a dict from alternating key/value arguments", biDict)
	def("assoc", "return a new dict with a key bound to a value", biAssoc)
	def("remove", "return a new dict without a key", biRemove)
	def("get", "look up a key in a dict, or return nil", biGet)
	def("keys", "the keys of a dict as a list", biKeys)
	def("values", "the values of a dict as a list", biValues)
	def("has?", "true if a dict contains a key", biHasP)

	def("ident", "the identity function", biIdent)
}

func biList(args []Value, _ *Environment) (Value, error) {
	return NewSeq(ListKind, args...), nil
}

func biTuple(args []Value, _ *Environment) (Value, error) {
	return NewSeq(TupleKind, args...), nil
}

func asSeqLike(op string, v Value) (*Seq, error) {
	s, ok := v.(*Seq)
	if !ok {
		return nil, fmt.Errorf("%s expects a list, got %s", op, TypeName(v))
	}
	return s, nil
}

func biHead(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("head expects 1 argument")
	}
	s, err := asSeqLike("head", args[0])
	if err != nil {
		return nil, err
	}
	return s.First(), nil
}

func biTail(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("tail expects 1 argument")
	}
	s, err := asSeqLike("tail", args[0])
	if err != nil {
		return nil, err
	}
	return s.Rest(), nil
}

func biCons(args []Value, _ *Environment) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("cons expects 2 arguments")
	}
	s, err := asSeqLike("cons", args[1])
	if err != nil {
		return nil, err
	}
	return Cons(args[0], s), nil
}

func biNth(args []Value, _ *Environment) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("nth expects 2 arguments")
	}
	idxNum, ok := asNum(args[1])
	if !ok {
		return nil, numericTypeError("nth", args[1])
	}
	idx, err := idxNum.Int64()
	if err != nil {
		return nil, err
	}
	switch coll := args[0].(type) {
	case *Seq:
		if idx < 0 || idx >= int64(coll.Len()) {
			return nil, NewError(IndexOutOfBounds, "nth index %d out of bounds", idx)
		}
		c := coll
		for i := int64(0); i < idx; i++ {
			c = c.Rest()
		}
		return c.First(), nil
	case Str:
		if idx < 0 || idx >= int64(len(coll)) {
			return nil, NewError(IndexOutOfBounds, "nth index %d out of bounds", idx)
		}
		return Str(coll[idx]), nil
	default:
		return nil, fmt.Errorf("nth expects a list or string, got %s", TypeName(args[0]))
	}
}

func biLen(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len expects 1 argument")
	}
	switch coll := args[0].(type) {
	case *Seq:
		return NewNumFromInt64(int64(coll.Len())), nil
	case Str:
		return NewNumFromInt64(int64(len(coll))), nil
	case *Dict:
		return NewNumFromInt64(int64(coll.Count())), nil
	case Nil:
		return NewNumFromInt64(0), nil
	default:
		return nil, fmt.Errorf("len expects a collection, got %s", TypeName(args[0]))
	}
}

func biEmptyP(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("empty? expects 1 argument")
	}
	switch coll := args[0].(type) {
	case *Seq:
		return Bool(coll.IsEmpty()), nil
	case Str:
		return Bool(len(coll) == 0), nil
	case *Dict:
		return Bool(coll.Count() == 0), nil
	case Nil:
		return Bool(true), nil
	default:
		return nil, fmt.Errorf("empty? expects a collection, got %s", TypeName(args[0]))
	}
}

func biSort(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sort expects 1 argument")
	}
	s, err := asSeqLike("sort", args[0])
	if err != nil {
		return nil, err
	}
	elems := s.Elements()
	sorted := append([]Value(nil), elems...)
	var sortErr error
	sort.SliceStable(sorted, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		switch a := sorted[i].(type) {
		case Num:
			b, ok := sorted[j].(Num)
			if !ok {
				sortErr = fmt.Errorf("sort expects a homogeneous list of numbers or strings")
				return false
			}
			return a.Cmp(b) < 0
		case Str:
			b, ok := sorted[j].(Str)
			if !ok {
				sortErr = fmt.Errorf("sort expects a homogeneous list of numbers or strings")
				return false
			}
			return a < b
		default:
			sortErr = fmt.Errorf("sort expects numbers or strings, got %s", TypeName(sorted[i]))
			return false
		}
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return NewSeq(ListKind, sorted...), nil
}

func biApply(args []Value, env *Environment) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("apply expects 2 arguments")
	}
	fn, ok := args[0].(*Function)
	if !ok {
		return nil, fmt.Errorf("apply expects a function, got %s", TypeName(args[0]))
	}
	argList, err := asSeqLike("apply", args[1])
	if err != nil {
		return nil, err
	}
	return Apply(fn, argList.Elements(), env)
}

func biZip(args []Value, _ *Environment) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("zip expects 2 arguments")
	}
	a, err := ToLazySeq(args[0])
	if err != nil {
		return nil, err
	}
	b, err := ToLazySeq(args[1])
	if err != nil {
		return nil, err
	}
	return zipSeq(a, b), nil
}

func biDict(args []Value, _ *Environment) (Value, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("dict expects an even number of arguments")
	}
	return NewDict(args...), nil
}

func asDict(op string, v Value) (*Dict, error) {
	d, ok := v.(*Dict)
	if !ok {
		return nil, fmt.Errorf("%s expects a dict, got %s", op, TypeName(v))
	}
	return d, nil
}

func biAssoc(args []Value, _ *Environment) (Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("assoc expects 3 arguments")
	}
	d, err := asDict("assoc", args[0])
	if err != nil {
		return nil, err
	}
	return d.Assoc(args[1], args[2]), nil
}

func biRemove(args []Value, _ *Environment) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("remove expects 2 arguments")
	}
	d, err := asDict("remove", args[0])
	if err != nil {
		return nil, err
	}
	return d.Remove(args[1]), nil
}

func biGet(args []Value, _ *Environment) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("get expects 2 arguments")
	}
	d, err := asDict("get", args[0])
	if err != nil {
		return nil, err
	}
	return d.Get(args[1]), nil
}

func biKeys(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("keys expects 1 argument")
	}
	d, err := asDict("keys", args[0])
	if err != nil {
		return nil, err
	}
	return NewSeq(ListKind, d.Keys()...), nil
}

func biValues(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("values expects 1 argument")
	}
	d, err := asDict("values", args[0])
	if err != nil {
		return nil, err
	}
	return NewSeq(ListKind, d.Values()...), nil
}

func biHasP(args []Value, _ *Environment) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("has? expects 2 arguments")
	}
	d, err := asDict("has?", args[0])
	if err != nil {
		return nil, err
	}
	return Bool(d.Has(args[1])), nil
}

func biIdent(args []Value, _ *Environment) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ident expects 1 argument")
	}
	return args[0], nil
}
