package rewrite

import "github.com/traitkb/kb/util"

// Term is an immutable, ordered sequence of symbols. It supports
// concatenation, half-open-range slicing, length and index-based access.
//
// Slices are contiguous, zero-copy views over a shared backing array the
// way spec.md §9's design notes ask for ("reference-counted symbol arrays
// with offset/length views avoids quadratic copying"); concatenation
// necessarily allocates a fresh backing array since it merges two
// independent views into one contiguous sequence.
type Term struct {
	data   []Symbol
	offset int
	length int
}

// NewTerm builds a term owning a fresh copy of symbols.
func NewTerm(symbols ...Symbol) Term {
	data := make([]Symbol, len(symbols))
	copy(data, symbols)
	return Term{data: data, offset: 0, length: len(data)}
}

// EmptyTerm is the zero-length term.
var EmptyTerm = Term{}

func (t Term) Len() int { return t.length }

func (t Term) IsEmpty() bool { return t.length == 0 }

// At returns the symbol at position i, 0 <= i < Len().
func (t Term) At(i int) Symbol {
	if i < 0 || i >= t.length {
		panic("rewrite: Term index out of range")
	}
	return t.data[t.offset+i]
}

// Slice returns the half-open range [from, to) as a view sharing the
// receiver's backing array; it never copies and never mutates t.
func (t Term) Slice(from, to int) Term {
	if from < 0 || to > t.length || from > to {
		panic("rewrite: Term.Slice out of range")
	}
	return Term{data: t.data, offset: t.offset + from, length: to - from}
}

// SliceFrom is shorthand for Slice(from, Len()).
func (t Term) SliceFrom(from int) Term {
	return t.Slice(from, t.length)
}

// Concat returns a new term, the receiver's symbols followed by other's.
// Neither input is mutated.
func (t Term) Concat(other Term) Term {
	if t.length == 0 {
		return other.owned()
	}
	if other.length == 0 {
		return t.owned()
	}
	data := make([]Symbol, t.length+other.length)
	copy(data, t.data[t.offset:t.offset+t.length])
	copy(data[t.length:], other.data[other.offset:other.offset+other.length])
	return Term{data: data, offset: 0, length: len(data)}
}

// owned returns a term backed by an array scoped to exactly this view,
// used so Concat never holds on to an oversized backing array via a slice view.
func (t Term) owned() Term {
	if t.offset == 0 && t.length == len(t.data) {
		return t
	}
	data := make([]Symbol, t.length)
	copy(data, t.data[t.offset:t.offset+t.length])
	return Term{data: data, offset: 0, length: len(data)}
}

// Symbols materializes the term's symbols as an owned slice.
func (t Term) Symbols() []Symbol {
	out := make([]Symbol, t.length)
	copy(out, t.data[t.offset:t.offset+t.length])
	return out
}

func (t Term) Equal(other Term) bool {
	if t.length != other.length {
		return false
	}
	for i := 0; i < t.length; i++ {
		if !t.At(i).Equal(other.At(i)) {
			return false
		}
	}
	return true
}

// Hash combines per-symbol hashes order-sensitively, consistent with Equal.
func (t Term) Hash() uint64 {
	var h uint64 = 14695981039346656037 // FNV-1a 64-bit offset basis
	for i := 0; i < t.length; i++ {
		h ^= t.At(i).Hash()
		h *= 1099511628211 // FNV-1a 64-bit prime
	}
	return h
}

// String renders the term using each symbol's informal Stringer, dot-joined.
// For the canonical debug dump format, see Dump in debug.go.
func (t Term) String() string {
	if t.length == 0 {
		return "ε"
	}
	return util.JoinString(t.Symbols(), ".")
}
