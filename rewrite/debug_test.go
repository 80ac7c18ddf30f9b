package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolDebugString(t *testing.T) {
	assert.Equal(t, "[concrete: Int]", symbolDebugString(ConcreteSymbol{Name: "Int"}))
	assert.Equal(t, "[Collection]", symbolDebugString(TraitSymbol{Name: "Collection"}))
	assert.Equal(t, "[::Collection.Index]", symbolDebugString(AssociatedTypeSymbol{Trait: "Collection", Name: "Index"}))
	assert.Equal(t, "Self", symbolDebugString(GenericTypeSymbol{Name: "Self"}))
}

func TestRuleDebugString(t *testing.T) {
	r := newRule(
		NewTerm(GenericTypeSymbol{Name: "Self"}, TraitSymbol{Name: "Collection"}),
		NewTerm(GenericTypeSymbol{Name: "Self"}),
	)
	assert.Equal(t, "Self.[Collection] => Self", ruleDebugString(r))
}

func TestDumpOmitsSimplifiedRules(t *testing.T) {
	sys := NewSystem(nil)
	source := NewTerm(sym("P"), sym("Q"), sym("Z"))
	target1 := NewTerm(sym("P"), sym("Q"), sym("Y"))
	target2 := NewTerm(sym("P"), sym("Q"), sym("B"))

	_, _, err := sys.Insert(newRule(source, target1))
	require.NoError(t, err)
	_, _, err = sys.Insert(newRule(source, target2))
	require.NoError(t, err)

	dump := Dump(sys)
	assert.NotContains(t, dump, "=> [concrete: P].[concrete: Q].[concrete: Y]")
	assert.Contains(t, dump, "[concrete: P].[concrete: Q].[concrete: Z] => [concrete: P].[concrete: Q].[concrete: B]")
}
