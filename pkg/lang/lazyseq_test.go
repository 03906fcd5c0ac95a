package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeSeqFinite(t *testing.T) {
	s := rangeSeq(NewNumFromInt64(0), NewNumFromInt64(5), true)
	list, err := Doall(s)
	require.NoError(t, err)
	assert.Equal(t, "(0 1 2 3 4)", list.String())
}

func TestRangeSeqInfiniteStaysLazy(t *testing.T) {
	s := rangeSeq(NewNumFromInt64(0), Num{}, false)
	limited := takeSeq(3, s)
	list, err := Doall(limited)
	require.NoError(t, err)
	assert.Equal(t, "(0 1 2)", list.String())
}

func TestMapFilterComposition(t *testing.T) {
	src := seqFromValues([]Value{
		NewNumFromInt64(1), NewNumFromInt64(2), NewNumFromInt64(3), NewNumFromInt64(4),
	})
	doubled := mapSeq(func(v Value) (Value, error) {
		n := v.(Num)
		return Mul(n, NewNumFromInt64(2))
	}, src)
	evens := filterSeq(func(v Value) (bool, error) {
		n := v.(Num)
		return n.Cmp(NewNumFromInt64(4)) >= 0, nil
	}, doubled)
	list, err := Doall(evens)
	require.NoError(t, err)
	assert.Equal(t, "(4 6 8)", list.String())
}

func TestZipStopsAtShorter(t *testing.T) {
	a := seqFromValues([]Value{NewNumFromInt64(1), NewNumFromInt64(2), NewNumFromInt64(3)})
	b := seqFromValues([]Value{NewNumFromInt64(10), NewNumFromInt64(20)})
	list, err := Doall(zipSeq(a, b))
	require.NoError(t, err)
	assert.Equal(t, "((1 10) (2 20))", list.String())
}

func TestReduceWithAndWithoutInit(t *testing.T) {
	src := seqFromValues([]Value{NewNumFromInt64(1), NewNumFromInt64(2), NewNumFromInt64(3)})
	add := func(acc, x Value) (Value, error) { return Add(acc.(Num), x.(Num)) }

	sum, err := Reduce(add, NewNumFromInt64(0), true, src)
	require.NoError(t, err)
	assert.Equal(t, "6", sum.String())

	src2 := seqFromValues([]Value{NewNumFromInt64(1), NewNumFromInt64(2), NewNumFromInt64(3)})
	sum2, err := Reduce(add, nil, false, src2)
	require.NoError(t, err)
	assert.Equal(t, "6", sum2.String())
}

func TestForeachVisitsEveryElement(t *testing.T) {
	src := seqFromValues([]Value{NewNumFromInt64(1), NewNumFromInt64(2), NewNumFromInt64(3)})
	var seen []string
	err := Foreach(func(v Value) error {
		seen = append(seen, v.String())
		return nil
	}, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, seen)
}

func TestToLazySeqFromConcreteCollections(t *testing.T) {
	list := NewSeq(ListKind, NewNumFromInt64(1), NewNumFromInt64(2))
	s, err := ToLazySeq(list)
	require.NoError(t, err)
	out, err := Doall(s)
	require.NoError(t, err)
	assert.Equal(t, "(1 2)", out.String())

	_, err = ToLazySeq(Bool(true))
	require.Error(t, err)
}
