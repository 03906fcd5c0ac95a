package lang

import "fmt"

// pull demands the next element. ok=false signals exhaustion. An error
// surfaces a failure in an upstream predicate/function (e.g. a `filter`
// predicate that itself raises an error).
type pull func() (Value, bool, error)

// LazySeq is a handle to a demand-driven sequence producer: spec.md §9's
// "small object carrying its state and a pull function". Composing
// map/filter/take stacks these objects without ever materializing an
// intermediate List (spec.md §4.4's invariant).
type LazySeq struct {
	origin string
	next   pull
}

func (s *LazySeq) String() string { return fmt.Sprintf("#<iter:%s>", s.origin) }

// newLazySeq wraps a raw pull function, boxing its state explicitly in the
// closure's captured variables rather than any shared mutable field, per
// spec.md §9's design note.
func newLazySeq(origin string, next pull) *LazySeq {
	return &LazySeq{origin: origin, next: next}
}

// rangeSeq implements the 0/1/2-arity `range` builtin.
func rangeSeq(from Num, to Num, hasTo bool) *LazySeq {
	cur := from
	return newLazySeq("range", func() (Value, bool, error) {
		if hasTo && cur.Cmp(to) >= 0 {
			return nil, false, nil
		}
		v := cur
		next, err := Inc(cur)
		if err != nil {
			return nil, false, err
		}
		cur = next
		return v, true, nil
	})
}

// seqFromValues lets `map`/`filter`/`take`/`doall` treat an already
// realized List/Tuple/Dict as a LazySeq source, per spec.md §4.4: "if `s`
// is a concrete List/Tuple, result is still a LazySeq."
func seqFromValues(values []Value) *LazySeq {
	i := 0
	return newLazySeq("values", func() (Value, bool, error) {
		if i >= len(values) {
			return nil, false, nil
		}
		v := values[i]
		i++
		return v, true, nil
	})
}

// ToLazySeq coerces a Value that can act as an iterable source into a
// LazySeq, or reports BadTypes.
func ToLazySeq(v Value) (*LazySeq, error) {
	switch val := v.(type) {
	case *LazySeq:
		return val, nil
	case *Seq:
		return seqFromValues(val.Elements()), nil
	case *Dict:
		return seqFromValues(val.Values()), nil
	case Nil:
		return seqFromValues(nil), nil
	default:
		return nil, fmt.Errorf("expected an iterable sequence, got %s", TypeName(v))
	}
}

// mapSeq yields f(x) for each x of src.
func mapSeq(f func(Value) (Value, error), src *LazySeq) *LazySeq {
	return newLazySeq("map", func() (Value, bool, error) {
		v, ok, err := src.next()
		if err != nil || !ok {
			return nil, ok, err
		}
		out, err := f(v)
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	})
}

// filterSeq yields only elements of src for which p holds.
func filterSeq(p func(Value) (bool, error), src *LazySeq) *LazySeq {
	return newLazySeq("filter", func() (Value, bool, error) {
		for {
			v, ok, err := src.next()
			if err != nil || !ok {
				return nil, ok, err
			}
			keep, err := p(v)
			if err != nil {
				return nil, false, err
			}
			if keep {
				return v, true, nil
			}
		}
	})
}

// takeSeq yields at most n elements of src; always finite.
func takeSeq(n int64, src *LazySeq) *LazySeq {
	remaining := n
	return newLazySeq("take", func() (Value, bool, error) {
		if remaining <= 0 {
			return nil, false, nil
		}
		v, ok, err := src.next()
		if err != nil || !ok {
			return nil, false, err
		}
		remaining--
		return v, true, nil
	})
}

// zipSeq pairs elements of a and b as 2-element Lists, stopping at the
// shorter source.
func zipSeq(a, b *LazySeq) *LazySeq {
	return newLazySeq("zip", func() (Value, bool, error) {
		av, aok, err := a.next()
		if err != nil {
			return nil, false, err
		}
		if !aok {
			return nil, false, nil
		}
		bv, bok, err := b.next()
		if err != nil {
			return nil, false, err
		}
		if !bok {
			return nil, false, nil
		}
		return NewSeq(ListKind, av, bv), true, nil
	})
}

// Doall materializes a LazySeq into a List.
func Doall(s *LazySeq) (*Seq, error) {
	var elems []Value
	for {
		v, ok, err := s.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		elems = append(elems, v)
	}
	return NewSeq(ListKind, elems...), nil
}

// Foreach drives f(x) across every element of s for side effect.
func Foreach(f func(Value) error, s *LazySeq) error {
	for {
		v, ok, err := s.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := f(v); err != nil {
			return err
		}
	}
}

// Reduce folds s left-to-right. If hasInit is false, init is ignored, the
// first element seeds the accumulator and the sequence must be non-empty
// (spec.md §4.4).
func Reduce(f func(acc, x Value) (Value, error), init Value, hasInit bool, s *LazySeq) (Value, error) {
	acc := init
	if !hasInit {
		v, ok, err := s.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("reduce of empty sequence with no initial value")
		}
		acc = v
	}
	for {
		v, ok, err := s.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return acc, nil
		}
		acc, err = f(acc, v)
		if err != nil {
			return nil, err
		}
	}
}
