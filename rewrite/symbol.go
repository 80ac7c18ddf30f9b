package rewrite

import (
	"hash/fnv"
)

// Kind is the coarse discriminator used to order symbols of different cases
// against each other. Values are fixed by spec: Concrete < Trait < AssociatedType < GenericType.
type Kind uint8

const (
	KindConcrete Kind = iota
	KindTrait
	KindAssociatedType
	KindGenericType
)

// Symbol is an immutable, value-equal, hashable tagged variant with four cases:
// Concrete, Trait, AssociatedType and GenericType.
//
// Implemented as an interface over small value types rather than a single
// struct with an enum tag, the way the teacher's SimpleType cases are each
// their own type under one interface (frontend/types/datatypes.go).
type Symbol interface {
	Kind() Kind
	Hash() uint64
	String() string
	Equal(other Symbol) bool
}

// ConcreteSymbol names a nominal type.
type ConcreteSymbol struct {
	Name string
}

func (s ConcreteSymbol) Kind() Kind { return KindConcrete }
func (s ConcreteSymbol) String() string { return s.Name }
func (s ConcreteSymbol) Hash() uint64 {
	return fnvString("concrete\x00" + s.Name)
}
func (s ConcreteSymbol) Equal(other Symbol) bool {
	o, ok := other.(ConcreteSymbol)
	return ok && o.Name == s.Name
}

// TraitSymbol names a trait.
type TraitSymbol struct {
	Name string
}

func (s TraitSymbol) Kind() Kind { return KindTrait }
func (s TraitSymbol) String() string { return s.Name }
func (s TraitSymbol) Hash() uint64 {
	return fnvString("trait\x00" + s.Name)
}
func (s TraitSymbol) Equal(other Symbol) bool {
	o, ok := other.(TraitSymbol)
	return ok && o.Name == s.Name
}

// AssociatedTypeSymbol is an associated-type selector qualified by the trait that declares it.
type AssociatedTypeSymbol struct {
	Trait string
	Name  string
}

func (s AssociatedTypeSymbol) Kind() Kind { return KindAssociatedType }
func (s AssociatedTypeSymbol) String() string {
	return "::" + s.Trait + "." + s.Name
}
func (s AssociatedTypeSymbol) Hash() uint64 {
	return fnvString("assoc\x00" + s.Trait + "\x00" + s.Name)
}
func (s AssociatedTypeSymbol) Equal(other Symbol) bool {
	o, ok := other.(AssociatedTypeSymbol)
	return ok && o.Trait == s.Trait && o.Name == s.Name
}

// GenericTypeSymbol is a type parameter.
type GenericTypeSymbol struct {
	Name string
}

func (s GenericTypeSymbol) Kind() Kind { return KindGenericType }
func (s GenericTypeSymbol) String() string { return s.Name }
func (s GenericTypeSymbol) Hash() uint64 {
	return fnvString("generic\x00" + s.Name)
}
func (s GenericTypeSymbol) Equal(other Symbol) bool {
	o, ok := other.(GenericTypeSymbol)
	return ok && o.Name == s.Name
}

func fnvString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// symbolHasher adapts Symbol to benbjohnson/immutable.Hasher, the way the
// teacher's util/hset wraps immutable.Hasher for value-typed hashable elements.
type symbolHasher struct{}

func (symbolHasher) Hash(s Symbol) uint32 {
	h := s.Hash()
	return uint32(h ^ (h >> 32))
}

func (symbolHasher) Equal(a, b Symbol) bool {
	return a.Equal(b)
}
