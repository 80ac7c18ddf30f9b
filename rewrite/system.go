package rewrite

import (
	"iter"

	"github.com/traitkb/kb/internal/log"
	"github.com/traitkb/kb/util"
)

// System owns a rule store and a trie index over it, and is the unit of
// exclusive mutable ownership spec.md §5 describes: the completion driver
// borrows it mutably during the loop and immutably during overlap
// enumeration; it must not be mutated mid-enumeration for a given rule id.
type System struct {
	store      *RuleStore
	trie       *Trie
	properties *TypeProperties
}

// NewSystem returns an empty rewriting system ordered by tp's trait-refinement map.
func NewSystem(tp *TypeProperties) *System {
	if tp == nil {
		tp = NewTypeProperties()
	}
	return &System{store: newRuleStore(), trie: NewTrie(), properties: tp}
}

func (s *System) compare(u, v Term) (Ordering, error) {
	return CompareTerm(u, v, s.properties)
}

// Insert implements spec.md §4.E. Precondition: order(r.Source, r.Target) ==
// Descending; violating it is reported as InvalidRule rather than silently
// accepted.
//
// It returns every rule id freshly appended to the store during this call,
// in insertion order, alongside id, the id representing r itself (which may
// be a pre-existing id when r was absorbed into or derived from an already
// active rule). A right-simplification or target-recovery cascade appends
// more than one rule per call, and every one of them needs its own overlaps
// enumerated — callers such as Complete must enqueue the whole slice, not
// just id, or a newly active rule can go unconsidered for critical pairs.
func (s *System) Insert(r Rule) (ids []RuleID, id RuleID, err error) {
	ord, err := s.compare(r.Source, r.Target)
	if err != nil {
		return nil, 0, err
	}
	if ord != Descending {
		return nil, 0, newInvalidRule(r.Source, r.Target)
	}
	return s.insertChecked(r)
}

// insertChecked recurses without re-checking the Descending precondition,
// since every recursive call already constructs an ordered pair. The
// recursion depth is bounded by the chain of target comparisons sharing
// r.Source (spec.md §9 "Recursive insertion"); a future caller bothered by
// call-stack growth on pathological inputs can swap this for an explicit
// stack without changing behavior.
func (s *System) insertChecked(r Rule) (ids []RuleID, id RuleID, err error) {
	oldID, found := s.trie.Get(r.Source)
	if !found {
		id = s.store.Append(r)
		s.trie.Set(r.Source, id)
		log.DefaultLogger.Debug("inserted rule", "section", "rewrite", "id", id, "rule", r.String())
		return []RuleID{id}, id, nil
	}

	old := s.store.Get(oldID)
	ord, err := s.compare(r.Target, old.Target)
	if err != nil {
		return nil, 0, err
	}
	switch ord {
	case Equal:
		return nil, oldID, nil
	case Descending:
		// r.Target > old.Target: old target is smaller, recover it via a
		// derived rule so r itself stays derivable. The derived rule is
		// genuinely new even though r itself is absorbed into oldID.
		derivedIDs, _, err := s.insertChecked(newRule(r.Target, old.Target))
		if err != nil {
			return nil, 0, err
		}
		return derivedIDs, oldID, nil
	default: // Ascending
		s.store.MarkRightSimplified(oldID)
		derivedIDs, _, err := s.insertChecked(newRule(old.Target, r.Target))
		if err != nil {
			return nil, 0, err
		}
		newID := s.store.Append(r)
		s.trie.Set(r.Source, newID)
		log.DefaultLogger.Debug("right-simplified", "section", "rewrite", "old", oldID, "new", newID)
		return append(derivedIDs, newID), newID, nil
	}
}

// Reduce rewrites u to its normal form: repeatedly find the leftmost
// position admitting a rewrite and apply it once, restarting on the result,
// until no position admits a reduction (spec.md §4.E).
func (s *System) Reduce(u Term) Term {
	for {
		next, changed := s.reduceStep(u)
		if !changed {
			return u
		}
		u = next
	}
}

func (s *System) reduceStep(u Term) (Term, bool) {
	for p := 0; p < u.Len(); p++ {
		// Keep the deepest payload met on the walk, not just the node where
		// the walk stops: that node can lack a payload while a shorter rule
		// source still matches u[p..].
		node := s.trie.root
		matched, found := RuleID(0), false
		for k := p; k < u.Len(); k++ {
			child, ok := node.children.Get(u.At(k))
			if !ok {
				break
			}
			node = child
			if node.hasPayload {
				matched, found = node.payload, true
			}
		}
		if !found {
			continue
		}
		r := s.store.Get(matched)
		rewritten := u.Slice(0, p).Concat(r.Target).Concat(u.SliceFrom(p + r.Source.Len()))
		return rewritten, true
	}
	return u, false
}

// forEachOverlap implements spec.md §4.E's overlap enumeration for rule i.
// It returns a (ruleID, position) pair per match rather than invoking a
// callback inline: spec.md §5 requires the trie and rule store to stay
// untouched for the whole of one rule's enumeration, so the driver must
// finish collecting before it resolves and inserts anything. Each pair's
// Fst is the overlapping rule's id, Snd is the position within rule i's
// source where the overlap begins.
func (s *System) forEachOverlap(i RuleID) []util.Pair[RuleID, int] {
	rule := s.store.Get(i)
	u1 := rule.Source

	var overlaps []util.Pair[RuleID, int]
	record := func(j RuleID, p int) {
		if i == j && p == 0 {
			return
		}
		overlaps = append(overlaps, util.NewPair(j, p))
	}

	for p := 0; p < u1.Len(); p++ {
		suffix := u1.SliceFrom(p)
		node := s.trie.root
		consumed := 0
		for consumed < suffix.Len() {
			child, ok := node.children.Get(suffix.At(consumed))
			if !ok {
				node = nil
				break
			}
			node = child
			consumed++
			if node.hasPayload {
				record(node.payload, p)
			}
		}
		if node != nil && consumed == suffix.Len() {
			for _, j := range s.trie.ElementsOf(node) {
				record(j, p)
			}
		}
	}
	return overlaps
}

// resolveCriticalPair implements spec.md §4.E's resolution step. Because the
// term order is total, this never fails to decide a direction once both
// sides have been reduced; it can still fail if the order itself fails
// (a cyclic trait graph), which propagates as an error.
//
// Like Insert, it returns every rule id freshly appended during resolution,
// not just the id for the shaped pair itself, since Insert can cascade.
func (s *System) resolveCriticalPair(p CriticalPair) (ids []RuleID, id RuleID, err error) {
	if p.Trivial() {
		return nil, 0, nil
	}
	b1 := s.Reduce(p.First)
	b2 := s.Reduce(p.Second)
	ord, err := s.compare(b1, b2)
	if err != nil {
		return nil, 0, err
	}
	switch ord {
	case Equal:
		return nil, 0, nil
	case Ascending:
		ids, id, err = s.Insert(newRule(b2, b1))
	default: // Descending
		ids, id, err = s.Insert(newRule(b1, b2))
	}
	return ids, id, err
}

// ActiveRules implements spec.md §6's enumeration entry point.
func (s *System) ActiveRules() iter.Seq2[Term, Term] {
	return func(yield func(Term, Term) bool) {
		for _, id := range s.store.ActiveIDs() {
			r := s.store.Get(id)
			if !yield(r.Source, r.Target) {
				return
			}
		}
	}
}

// Stats reports simple counters for observability (SPEC_FULL.md §8).
type Stats struct {
	TotalRules      int
	ActiveRules     int
	SimplifiedRules int
}

func (s *System) Stats() Stats {
	total := s.store.TotalCount()
	active := s.store.ActiveCount()
	return Stats{TotalRules: total, ActiveRules: active, SimplifiedRules: total - active}
}

// Properties returns the trait-refinement map this system was built with.
func (s *System) Properties() *TypeProperties {
	return s.properties
}
