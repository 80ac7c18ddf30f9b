package rewrite

// Type is the external, pre-translation representation of a type
// expression: spec.md §3's "Well-formed translation from Type to Term".
// Construct values with ConcreteType, TraitType, GenericParam, and
// SelectAssociatedType; the zero value is not a valid Type.
type Type struct {
	kind      Kind
	name      string
	trait     string
	qualifier *Type
}

// ConcreteType names a nominal type.
func ConcreteType(name string) Type { return Type{kind: KindConcrete, name: name} }

// TraitType names a trait.
func TraitType(name string) Type { return Type{kind: KindTrait, name: name} }

// GenericParam names a type parameter, e.g. "Self".
func GenericParam(name string) Type { return Type{kind: KindGenericType, name: name} }

// SelectAssociatedType selects associated type `name` of `trait` on `qualifier`.
func SelectAssociatedType(qualifier Type, trait, name string) Type {
	q := qualifier
	return Type{kind: KindAssociatedType, trait: trait, name: name, qualifier: &q}
}

// IsAbstract reports whether t is a generic parameter or an associated-type
// selection thereof — the only legal lhs of an Equality constraint
// (spec.md §6, GLOSSARY "Abstract parameter").
func (t Type) IsAbstract() bool {
	return t.kind == KindGenericType || t.kind == KindAssociatedType
}

// Term translates t per spec.md §3's Type → Term table.
func (t Type) Term() Term {
	switch t.kind {
	case KindConcrete:
		return NewTerm(ConcreteSymbol{Name: t.name})
	case KindTrait:
		return NewTerm(TraitSymbol{Name: t.name})
	case KindGenericType:
		return NewTerm(GenericTypeSymbol{Name: t.name})
	case KindAssociatedType:
		return t.qualifier.Term().Concat(NewTerm(AssociatedTypeSymbol{Trait: t.trait, Name: t.name}))
	default:
		panic("rewrite: invalid Type value")
	}
}

func (t Type) String() string { return t.Term().String() }

// ConstraintKind distinguishes the two constraint shapes spec.md §6 accepts.
type ConstraintKind uint8

const (
	Bound ConstraintKind = iota
	Equality
)

// Constraint is one input fact the driver supplies before completion.
type Constraint struct {
	Kind ConstraintKind
	Lhs  Type
	Rhs  Type
}

// BoundConstraint builds a Bound(lhs, rhs) constraint.
func BoundConstraint(lhs, rhs Type) Constraint {
	return Constraint{Kind: Bound, Lhs: lhs, Rhs: rhs}
}

// EqualityConstraint builds an Equality(lhs, rhs) constraint.
func EqualityConstraint(lhs, rhs Type) Constraint {
	return Constraint{Kind: Equality, Lhs: lhs, Rhs: rhs}
}

// toRule shapes c into its initial rule per spec.md §6. This is the
// "trivial shaping step" spec.md §1 calls out as an external collaborator;
// it is kept here, alongside Type, rather than in a separate package,
// since neither has any other reason to exist independently of the other.
func (c Constraint) toRule(tp *TypeProperties) (Rule, error) {
	switch c.Kind {
	case Bound:
		lhs := c.Lhs.Term()
		source := lhs.Concat(c.Rhs.Term())
		return newRule(source, lhs), nil
	case Equality:
		if !c.Lhs.IsAbstract() {
			return Rule{}, newInvalidEqualityLhs(c.Lhs.Term())
		}
		v := c.Lhs.Term()
		var u Term
		if c.Rhs.IsAbstract() {
			u = c.Rhs.Term()
		} else {
			u = v.Concat(c.Rhs.Term())
		}
		ord, err := CompareTerm(u, v, tp)
		if err != nil {
			return Rule{}, err
		}
		if ord == Ascending {
			u, v = v, u
		}
		return newRule(u, v), nil
	default:
		return Rule{}, newInvalidRule(EmptyTerm, EmptyTerm)
	}
}

// Translate shapes each constraint into an initial rule and inserts it into
// sys, in order. It stops and returns the first error encountered; sys is
// left with whichever prior constraints were already inserted (spec.md §7:
// precondition failures are fatal to the run, not silently skipped).
func Translate(sys *System, constraints []Constraint) ([]RuleID, error) {
	ids := make([]RuleID, 0, len(constraints))
	for _, c := range constraints {
		r, err := c.toRule(sys.properties)
		if err != nil {
			return ids, err
		}
		_, id, err := sys.Insert(r)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
