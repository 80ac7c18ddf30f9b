package rewrite

import (
	"cmp"
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v3"
	xtgoset "github.com/xtgo/set"
)

// Ordering is the result of a total strict order comparison.
type Ordering int8

const (
	Ascending Ordering = -1
	Equal     Ordering = 0
	Descending Ordering = 1
)

func orderFromCompare(c int) Ordering {
	switch {
	case c < 0:
		return Ascending
	case c > 0:
		return Descending
	default:
		return Equal
	}
}

// TypeProperties supplies the trait-refinement map consulted by the term order.
// Built up incrementally (one immediate-base declaration at a time) and then
// consulted read-only during ordering and completion, the way the constraint
// reader in internal/constraintlang populates it from "trait B : A" lines.
type TypeProperties struct {
	immediateBases map[string][]string
}

// NewTypeProperties returns an empty builder: no trait has any declared base.
func NewTypeProperties() *TypeProperties {
	return &TypeProperties{immediateBases: make(map[string][]string)}
}

// AddBase declares that trait refines base directly.
func (tp *TypeProperties) AddBase(trait, base string) {
	tp.immediateBases[trait] = append(tp.immediateBases[trait], base)
}

// ImmediateBases returns the directly-declared bases of trait, unordered.
func (tp *TypeProperties) ImmediateBases(trait string) []string {
	return tp.immediateBases[trait]
}

// TransitiveBases computes the fixpoint union of trait's bases, its bases'
// bases, and so on. Cycles in the refinement graph are rejected as
// InvalidTraitGraph rather than silently truncated.
func (tp *TypeProperties) TransitiveBases(trait string) ([]string, error) {
	visited := set.New[string](8)
	result, err := tp.transitiveBasesRec(trait, visited)
	if err != nil {
		return nil, err
	}
	sort.Strings(result)
	n := xtgoset.Uniq(sort.StringSlice(result))
	return result[:n], nil
}

func (tp *TypeProperties) transitiveBasesRec(trait string, visiting *set.Set[string]) ([]string, error) {
	if visiting.Contains(trait) {
		return nil, newInvalidTraitGraph(trait)
	}
	visiting.Insert(trait)
	defer visiting.Remove(trait)

	bases := append([]string(nil), tp.immediateBases[trait]...)
	sort.Strings(bases)
	n := xtgoset.Uniq(sort.StringSlice(bases))
	acc := bases[:n]

	for _, base := range acc {
		transitive, err := tp.transitiveBasesRec(base, visiting)
		if err != nil {
			return nil, err
		}
		if len(transitive) == 0 {
			continue
		}
		merged := make([]string, 0, len(acc)+len(transitive))
		merged = append(merged, acc...)
		merged = append(merged, transitive...)
		sort.Strings(merged)
		m := xtgoset.Union(sort.StringSlice(merged), len(acc))
		acc = merged[:m]
	}
	return acc, nil
}

// CompareSymbol implements spec.md §4.B's symbol order.
func CompareSymbol(a, b Symbol, tp *TypeProperties) (Ordering, error) {
	if a.Kind() != b.Kind() {
		return orderFromCompare(cmp.Compare(int(a.Kind()), int(b.Kind()))), nil
	}
	switch av := a.(type) {
	case ConcreteSymbol:
		bv := b.(ConcreteSymbol)
		return orderFromCompare(strings.Compare(av.Name, bv.Name)), nil
	case TraitSymbol:
		bv := b.(TraitSymbol)
		return compareTraits(av.Name, bv.Name, tp)
	case AssociatedTypeSymbol:
		bv := b.(AssociatedTypeSymbol)
		if av.Name == bv.Name {
			return compareTraits(av.Trait, bv.Trait, tp)
		}
		return orderFromCompare(strings.Compare(av.Name, bv.Name)), nil
	case GenericTypeSymbol:
		bv := b.(GenericTypeSymbol)
		return orderFromCompare(strings.Compare(av.Name, bv.Name)), nil
	default:
		panic("rewrite: unhandled Symbol case in CompareSymbol")
	}
}

// compareTraits orders two traits by size of their transitive base set
// (fewer bases orders after / Descending, more bases orders before /
// Ascending), falling back to lexical order on a tie.
func compareTraits(nameA, nameB string, tp *TypeProperties) (Ordering, error) {
	if nameA == nameB {
		return Equal, nil
	}
	basesA, err := tp.TransitiveBases(nameA)
	if err != nil {
		return Equal, err
	}
	basesB, err := tp.TransitiveBases(nameB)
	if err != nil {
		return Equal, err
	}
	if len(basesA) != len(basesB) {
		// fewer bases => descending (ordered after); more bases => ascending
		if len(basesA) < len(basesB) {
			return Descending, nil
		}
		return Ascending, nil
	}
	return orderFromCompare(strings.Compare(nameA, nameB)), nil
}

// CompareTerm implements spec.md §4.B's term order: shortlex over the symbol order.
// Longer terms order after shorter ones (Descending); ties break left to right
// on the first differing symbol.
func CompareTerm(u, v Term, tp *TypeProperties) (Ordering, error) {
	if u.Len() != v.Len() {
		return orderFromCompare(cmp.Compare(u.Len(), v.Len())), nil
	}
	for i := 0; i < u.Len(); i++ {
		ord, err := CompareSymbol(u.At(i), v.At(i), tp)
		if err != nil {
			return Equal, err
		}
		if ord != Equal {
			return ord, nil
		}
	}
	return Equal, nil
}
