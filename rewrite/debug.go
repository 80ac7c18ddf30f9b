package rewrite

import (
	"fmt"
	"strings"
)

// symbolDebugString renders s per spec.md §6's debug dump format, which is
// deliberately distinct from Symbol.String()'s terser rendering used
// elsewhere (error messages, Term.String()).
func symbolDebugString(s Symbol) string {
	switch v := s.(type) {
	case ConcreteSymbol:
		return "[concrete: " + v.Name + "]"
	case TraitSymbol:
		return "[" + v.Name + "]"
	case AssociatedTypeSymbol:
		return "[::" + v.Trait + "." + v.Name + "]"
	case GenericTypeSymbol:
		return v.Name
	default:
		return s.String()
	}
}

func termDebugString(t Term) string {
	if t.IsEmpty() {
		return "ε"
	}
	parts := make([]string, t.Len())
	for i := 0; i < t.Len(); i++ {
		parts[i] = symbolDebugString(t.At(i))
	}
	return strings.Join(parts, ".")
}

func ruleDebugString(r Rule) string {
	return termDebugString(r.Source) + " => " + termDebugString(r.Target)
}

// Dump renders every active rule in sys, one per line, sorted by rule id
// for determinism. Right-simplified rules are omitted, matching spec.md
// §4.D's "active indices" view (SPEC_FULL.md §8).
func Dump(sys *System) string {
	var b strings.Builder
	for _, id := range sys.store.ActiveIDs() {
		fmt.Fprintf(&b, "%d: %s\n", id, ruleDebugString(sys.store.Get(id)))
	}
	return b.String()
}
