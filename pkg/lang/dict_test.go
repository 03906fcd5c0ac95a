package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictAssocGetImmutable(t *testing.T) {
	d := NewDict()
	d2 := d.Assoc(Str("a"), NewNumFromInt64(1))

	assert.False(t, d.Has(Str("a")), "original dict must be unmodified")
	assert.True(t, d2.Has(Str("a")))
	assert.Equal(t, "1", d2.Get(Str("a")).String())
	assert.Equal(t, Nil{}, d.Get(Str("a")))
}

func TestDictAssocOverwritesPreservingOrder(t *testing.T) {
	d := NewDict(Str("a"), NewNumFromInt64(1), Str("b"), NewNumFromInt64(2))
	d2 := d.Assoc(Str("a"), NewNumFromInt64(99))
	assert.Equal(t, 2, d2.Count())
	assert.Equal(t, "99", d2.Get(Str("a")).String())
	keys := d2.Keys()
	assert.Equal(t, []Value{Str("a"), Str("b")}, keys)
}

func TestDictRemove(t *testing.T) {
	d := NewDict(Str("a"), NewNumFromInt64(1), Str("b"), NewNumFromInt64(2))
	d2 := d.Remove(Str("a"))
	assert.Equal(t, 1, d2.Count())
	assert.False(t, d2.Has(Str("a")))
	assert.Equal(t, 2, d.Count(), "original dict must be unmodified")
}

func TestDictEqual(t *testing.T) {
	a := NewDict(Str("x"), NewNumFromInt64(1), Str("y"), NewNumFromInt64(2))
	b := NewDict(Str("y"), NewNumFromInt64(2), Str("x"), NewNumFromInt64(1))
	assert.True(t, a.Equal(b), "dict equality is key-set and value-wise, order-independent")

	c := NewDict(Str("x"), NewNumFromInt64(1))
	assert.False(t, a.Equal(c))
}
