package constraintlang

import (
	"fmt"
	"strings"

	"github.com/traitkb/kb/rewrite"
)

// ParseTypeExpr reads a single dotted identifier chain, as used by the CLI's
// reduce subcommand to parse its term argument outside of a full document.
func ParseTypeExpr(raw string) (rewrite.Type, error) {
	return parseType(raw, false)
}

// parseType reads a dotted identifier chain into a rewrite.Type.
//
// The root segment is GenericParam("Self") when it reads "Self", otherwise
// ConcreteType(root) unless bareAsTrait is set and the chain has no further
// segments, in which case it is TraitType(root) — bound's rhs and trait
// declarations name traits by a bare identifier, everywhere else a bare
// capitalized identifier names a nominal type (SPEC_FULL.md §5).
//
// Every segment past the root is consumed in (trait, name) pairs building
// nested associated-type selectors, e.g. "Self.Collection.Slice" is
// AssociatedType(trait="Collection", name="Slice") rooted at Self; a longer
// chain repeats the owning trait name per selector, e.g.
// "Self.Collection.Slice.Collection.Index".
func parseType(raw string, bareAsTrait bool) (rewrite.Type, error) {
	parts := strings.Split(raw, ".")
	if len(parts) == 0 || parts[0] == "" {
		return rewrite.Type{}, fmt.Errorf("empty type expression")
	}

	root := parts[0]
	var t rewrite.Type
	switch {
	case root == "Self":
		t = rewrite.GenericParam("Self")
	case bareAsTrait && len(parts) == 1:
		t = rewrite.TraitType(root)
	default:
		t = rewrite.ConcreteType(root)
	}

	rest := parts[1:]
	if len(rest)%2 != 0 {
		return rewrite.Type{}, fmt.Errorf("associated-type chain %q has an odd number of trailing segments; expected trait.name pairs", raw)
	}
	for i := 0; i < len(rest); i += 2 {
		trait, name := rest[i], rest[i+1]
		t = rewrite.SelectAssociatedType(t, trait, name)
	}
	return t, nil
}
