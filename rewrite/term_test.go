package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermConcatSliceEquality(t *testing.T) {
	a := NewTerm(ConcreteSymbol{Name: "A"}, ConcreteSymbol{Name: "B"})
	b := NewTerm(ConcreteSymbol{Name: "C"})

	joined := a.Concat(b)
	require.Equal(t, 3, joined.Len())
	assert.Equal(t, "A", joined.At(0).String())
	assert.Equal(t, "C", joined.At(2).String())

	prefix := joined.Slice(0, 2)
	assert.True(t, prefix.Equal(a))

	suffix := joined.SliceFrom(2)
	assert.True(t, suffix.Equal(b))
}

func TestTermConcatWithEmptyIsIdentity(t *testing.T) {
	a := NewTerm(ConcreteSymbol{Name: "A"})
	assert.True(t, a.Concat(EmptyTerm).Equal(a))
	assert.True(t, EmptyTerm.Concat(a).Equal(a))
}

func TestTermHashConsistentWithEqual(t *testing.T) {
	a := NewTerm(ConcreteSymbol{Name: "A"}, TraitSymbol{Name: "T"})
	b := NewTerm(ConcreteSymbol{Name: "A"}, TraitSymbol{Name: "T"})
	c := NewTerm(TraitSymbol{Name: "T"}, ConcreteSymbol{Name: "A"})

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestTermStringEmpty(t *testing.T) {
	assert.Equal(t, "ε", EmptyTerm.String())
}

func TestTermSliceOutOfRangePanics(t *testing.T) {
	a := NewTerm(ConcreteSymbol{Name: "A"})
	assert.Panics(t, func() { a.Slice(0, 2) })
	assert.Panics(t, func() { a.At(5) })
}
