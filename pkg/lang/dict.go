package lang

import (
	"strings"
)

// Dict is a persistent, insertion-ordered mapping from keys to Values. Any
// Value is accepted as a key (keys are not restricted to atoms); two keys
// are the same key when their type names and printed forms match (see
// dictKey). Adapted from the teacher's
// pkg/core/types.go HashMap, made copy-on-write per spec.md §3's
// immutability invariant ("any mutation produces a new Value").
type Dict struct {
	keys   []Value
	values map[string]Value
}

// NewDict builds a Dict from alternating key/value arguments.
func NewDict(pairs ...Value) *Dict {
	d := &Dict{values: make(map[string]Value)}
	for i := 0; i+1 < len(pairs); i += 2 {
		d = d.Assoc(pairs[i], pairs[i+1])
	}
	return d
}

func dictKey(k Value) string {
	return TypeName(k) + ":" + k.String()
}

func (d *Dict) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range d.keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k.String())
		b.WriteByte(' ')
		b.WriteString(d.values[dictKey(k)].String())
	}
	b.WriteString("}")
	return b.String()
}

// Get returns the value for key, or Nil{} if absent.
func (d *Dict) Get(key Value) Value {
	if d == nil {
		return Nil{}
	}
	if v, ok := d.values[dictKey(key)]; ok {
		return v
	}
	return Nil{}
}

func (d *Dict) Has(key Value) bool {
	if d == nil {
		return false
	}
	_, ok := d.values[dictKey(key)]
	return ok
}

// Assoc returns a new Dict with key bound to value, leaving d unmodified.
func (d *Dict) Assoc(key, value Value) *Dict {
	nd := &Dict{values: make(map[string]Value, len(d.keysOrEmpty())+1)}
	kk := dictKey(key)
	replaced := false
	for _, k := range d.keysOrEmpty() {
		if dictKey(k) == kk {
			nd.keys = append(nd.keys, key)
			replaced = true
		} else {
			nd.keys = append(nd.keys, k)
		}
	}
	if !replaced {
		nd.keys = append(nd.keys, key)
	}
	for k, v := range d.valuesOrEmpty() {
		nd.values[k] = v
	}
	nd.values[kk] = value
	return nd
}

// Remove returns a new Dict without key, leaving d unmodified.
func (d *Dict) Remove(key Value) *Dict {
	kk := dictKey(key)
	nd := &Dict{values: make(map[string]Value)}
	for _, k := range d.keysOrEmpty() {
		if dictKey(k) == kk {
			continue
		}
		nd.keys = append(nd.keys, k)
		nd.values[dictKey(k)] = d.values[dictKey(k)]
	}
	return nd
}

func (d *Dict) keysOrEmpty() []Value {
	if d == nil {
		return nil
	}
	return d.keys
}

func (d *Dict) valuesOrEmpty() map[string]Value {
	if d == nil {
		return nil
	}
	return d.values
}

func (d *Dict) Count() int { return len(d.keysOrEmpty()) }

func (d *Dict) Keys() []Value { return append([]Value(nil), d.keysOrEmpty()...) }

func (d *Dict) Values() []Value {
	keys := d.keysOrEmpty()
	vals := make([]Value, len(keys))
	for i, k := range keys {
		vals[i] = d.Get(k)
	}
	return vals
}

// Equal implements spec.md §9's "unordered mapping; equality is key-set
// and value-wise".
func (d *Dict) Equal(o *Dict) bool {
	if d.Count() != o.Count() {
		return false
	}
	for _, k := range d.keysOrEmpty() {
		if !o.Has(k) || !Equal(d.Get(k), o.Get(k)) {
			return false
		}
	}
	return true
}
