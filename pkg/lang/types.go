// Package lang implements the x7 core: reader, evaluator, environment,
// lazy sequences, arbitrary-precision arithmetic and the error/stacktrace
// machinery that ties them together.
package lang

import (
	"fmt"
	"strings"
)

// Value is the universal tagged sum carrying every x7 runtime object,
// homoiconically reused as the AST produced by the reader.
type Value interface {
	String() string
}

// Bool is the true/false variant.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Nil is the singleton nil/empty-list-equal variant.
type Nil struct{}

func (Nil) String() string { return "nil" }

// Str is an immutable UTF-8 string.
type Str string

func (s Str) String() string { return string(s) }

// Quoted returns the value as it would be printed inside a Go/Lisp string
// literal, used by error-frame argument rendering (`print` shows the raw
// text instead).
func (s Str) Quoted() string { return fmt.Sprintf("%q", string(s)) }

// Symbol is an unresolved identifier; evaluating one looks it up in the
// active Environment.
type Symbol string

func (s Symbol) String() string { return string(s) }

// SeqKind distinguishes the three ordered-sequence Value variants, which
// share a single persistent-linked-list representation (see Seq) but
// evaluate under different rules (spec.md §3/§4.2).
type SeqKind int

const (
	// ListKind: evaluating applies head as callable to the evaluated tail.
	ListKind SeqKind = iota
	// QuoteKind: evaluates to a List without recursing into its elements.
	QuoteKind
	// TupleKind: evaluates to itself; elements were evaluated once at
	// construction time by the `tuple` builtin / `^(...)` reader form.
	TupleKind
)

// Seq is a persistent (cons-cell) ordered sequence of Values, shared by
// List, Quote and Tuple. Sharing tails makes Cons/Rest O(1) and
// allocation-free beyond the new head cell, matching spec.md §9's
// "cheap cons/tail" requirement.
//
// The empty List is the untyped nil *Seq (spec.md §3: "Nil equals an
// empty List"). The empty Quote and empty Tuple are each a distinct
// non-nil sentinel node (head and tail left at their zero value) so
// that their SeqKind survives even with no elements — without it,
// `(tuple)` and `'()` would be indistinguishable and wrongly compare
// equal. A node's head is only ever Go-nil on one of these sentinels;
// every real element is assigned a concrete Value by Cons/NewSeq.
type Seq struct {
	kind SeqKind
	head Value
	tail *Seq
}

// NewSeq builds a Seq of the given kind from a slice of elements.
func NewSeq(kind SeqKind, elements ...Value) *Seq {
	if len(elements) == 0 {
		return emptySeq(kind)
	}
	var result *Seq
	for i := len(elements) - 1; i >= 0; i-- {
		result = &Seq{kind: kind, head: elements[i], tail: result}
	}
	return result
}

// emptySeq is the zero-element Seq of kind: nil for ListKind (the
// universal empty/terminal value), a bare sentinel node otherwise.
func emptySeq(kind SeqKind) *Seq {
	if kind == ListKind {
		return nil
	}
	return &Seq{kind: kind}
}

func (s *Seq) Kind() SeqKind {
	if s == nil {
		return ListKind
	}
	return s.kind
}

func (s *Seq) IsEmpty() bool { return s == nil || (s.head == nil && s.tail == nil) }

func (s *Seq) First() Value {
	if s.IsEmpty() {
		return Nil{}
	}
	return s.head
}

func (s *Seq) Rest() *Seq {
	if s == nil {
		return nil
	}
	return s.tail
}

// Cons prepends v, inheriting kind from s (or ListKind if s is empty/nil).
// An empty sentinel tail is normalized to plain nil so every real chain
// still terminates in nil, never in a sentinel node.
func Cons(v Value, s *Seq) *Seq {
	kind := s.Kind()
	if s.IsEmpty() {
		s = nil
	}
	return &Seq{kind: kind, head: v, tail: s}
}

func (s *Seq) Len() int {
	n := 0
	for c := s.realChain(); c != nil; c = c.tail {
		n++
	}
	return n
}

// Elements materializes the sequence into a slice.
func (s *Seq) Elements() []Value {
	elems := make([]Value, 0, s.Len())
	for c := s.realChain(); c != nil; c = c.tail {
		elems = append(elems, c.head)
	}
	return elems
}

func (s *Seq) String() string {
	open, closer := "(", ")"
	if s.Kind() == TupleKind {
		open = "^("
	}
	var b strings.Builder
	b.WriteString(open)
	first := true
	for c := s.realChain(); c != nil; c = c.tail {
		if !first {
			b.WriteByte(' ')
		}
		b.WriteString(c.head.String())
		first = false
	}
	b.WriteString(closer)
	return b.String()
}

// realChain returns s if it holds a real element, or nil if s is empty
// (either the untyped nil or a kind-only sentinel) — the common guard
// every element-iterating method starts from.
func (s *Seq) realChain() *Seq {
	if s.IsEmpty() {
		return nil
	}
	return s
}

// AsList reinterprets s as a ListKind sequence, used when `quote`/`eval`
// turn a Quote into the List it denotes.
func (s *Seq) AsList() *Seq {
	if s.IsEmpty() {
		return nil
	}
	if s.kind == ListKind {
		return s
	}
	return &Seq{kind: ListKind, head: s.head, tail: s.tail.AsList()}
}

// ParamSpec describes a Function's formal parameters: a fixed prefix and
// an optional `&rest` symbol collecting surplus arguments into a List.
type ParamSpec struct {
	Fixed []Symbol
	Rest  Symbol // "" if not variadic
}

func (p ParamSpec) IsVariadic() bool { return p.Rest != "" }

func (p ParamSpec) String() string {
	parts := make([]string, 0, len(p.Fixed)+2)
	for _, s := range p.Fixed {
		parts = append(parts, string(s))
	}
	if p.IsVariadic() {
		parts = append(parts, "&", string(p.Rest))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// BuiltinFn is the host-side implementation of a builtin Function.
type BuiltinFn func(args []Value, env *Environment) (Value, error)

// Function is the single callable record: user-defined and builtin
// functions share this shape (spec.md §3).
type Function struct {
	Name    string // "" for anonymous fn
	Params  ParamSpec
	Doc     string
	Body    Value     // user-defined body (implicit `do`); nil for builtins
	Closure *Environment // always the root environment per spec.md §9
	Builtin BuiltinFn    // non-nil for builtins
}

func (f *Function) IsBuiltin() bool { return f.Builtin != nil }

func (f *Function) String() string {
	name := f.Name
	if name == "" {
		name = "anonymous"
	}
	if f.IsBuiltin() {
		return fmt.Sprintf("#<builtin:%s>", name)
	}
	return fmt.Sprintf("#<function:%s>", name)
}

// Record is the opaque host-object interface external collaborators
// (like FileRecord) implement. Spec.md §6: "the interpreter treats
// Records as opaque apart from this interface."
type Record interface {
	Value
	RecordName() string
	Methods() map[string]RecordMethod
	Invoke(name string, args []Value) (Value, error)
}

// RecordMethod documents one method a Record exposes.
type RecordMethod struct {
	Doc string
}

// TypeName returns the §4.6 `type` builtin's string for v.
func TypeName(v Value) string {
	switch val := v.(type) {
	case Num:
		return "num"
	case Bool:
		return "bool"
	case Nil:
		return "nil"
	case Str:
		return "str"
	case Symbol:
		return "symbol"
	case *Seq:
		switch val.Kind() {
		case QuoteKind:
			return "quote"
		case TupleKind:
			return "tuple"
		default:
			return "list"
		}
	case *Function:
		return "function"
	case *LazySeq:
		return "iter"
	case *Dict:
		return "dict"
	case Record:
		return "record"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// IsTruthy implements spec.md §4.2's truthiness rule: only false and Nil
// are falsy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case Bool:
		return bool(val)
	case Nil:
		return false
	default:
		return true
	}
}

// Equal implements spec.md §4.3's structural `=`: same-variant
// element-wise equality; Nil equals an empty List specifically (not an
// empty Quote or Tuple, which remain their own equality classes).
func Equal(a, b Value) bool {
	if isNilOrEmptyList(a) && isNilOrEmptyList(b) {
		return true
	}
	switch x := a.(type) {
	case Num:
		y, ok := b.(Num)
		return ok && x.Cmp(y) == 0
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Str:
		y, ok := b.(Str)
		return ok && x == y
	case Symbol:
		y, ok := b.(Symbol)
		return ok && x == y
	case *Seq:
		y, ok := b.(*Seq)
		if !ok || x.Kind() != y.Kind() {
			return false
		}
		return seqEqual(x, y)
	case *Dict:
		y, ok := b.(*Dict)
		return ok && x.Equal(y)
	case *Function:
		return a == b
	case *LazySeq:
		return a == b
	case Record:
		return a == b
	default:
		return false
	}
}

// isNilOrEmptyList reports whether v is Nil or an empty ListKind *Seq.
// An empty Quote or Tuple is deliberately excluded: equality between
// List, Quote and Tuple requires the same variant (spec.md §3), so only
// the List variant's empty form is interchangeable with Nil.
func isNilOrEmptyList(v Value) bool {
	switch val := v.(type) {
	case Nil:
		return true
	case *Seq:
		return val.IsEmpty() && val.Kind() == ListKind
	default:
		return false
	}
}

func seqEqual(a, b *Seq) bool {
	a, b = a.realChain(), b.realChain()
	for {
		if a == nil && b == nil {
			return true
		}
		if a == nil || b == nil {
			return false
		}
		if !Equal(a.head, b.head) {
			return false
		}
		a, b = a.tail, b.tail
	}
}
