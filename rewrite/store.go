package rewrite

import (
	"sort"

	"github.com/hashicorp/go-set/v3"
)

// RuleStore is an append-only, indexable container of rules. Identifiers are
// dense and stable once issued (spec.md §3 "Rule identifier"); rules are
// never deleted, only flagged right-simplified.
//
// active tracks non-simplified rule ids incrementally rather than being
// recomputed by a scan on every call, mirroring the kind of small
// bookkeeping set the teacher keeps on classTag.parents
// (frontend/types/datatypes.go) rather than reconstructing the cached
// view from scratch.
type RuleStore struct {
	rules  []Rule
	active *set.Set[RuleID]
}

func newRuleStore() *RuleStore {
	return &RuleStore{active: set.New[RuleID](16)}
}

// Append adds r at a fresh id and returns it.
func (s *RuleStore) Append(r Rule) RuleID {
	id := RuleID(len(s.rules))
	s.rules = append(s.rules, r)
	s.active.Insert(id)
	return id
}

// Get returns the rule stored at id.
func (s *RuleStore) Get(id RuleID) Rule {
	return s.rules[id]
}

// Len returns the total number of rules ever inserted, simplified or not.
func (s *RuleStore) Len() int {
	return len(s.rules)
}

// MarkRightSimplified flags the rule at id and removes it from the active set.
func (s *RuleStore) MarkRightSimplified(id RuleID) {
	s.rules[id] = s.rules[id].withRightSimplified()
	s.active.Remove(id)
}

// ActiveIDs returns the ids of rules whose right-simplified flag is clear,
// sorted ascending for deterministic iteration.
func (s *RuleStore) ActiveIDs() []RuleID {
	ids := s.active.Slice()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsActive reports whether id's right-simplified flag is still clear.
func (s *RuleStore) IsActive(id RuleID) bool { return s.active.Contains(id) }

// ActiveCount and TotalCount back System.Stats (SPEC_FULL.md §8).
func (s *RuleStore) ActiveCount() int { return s.active.Size() }
func (s *RuleStore) TotalCount() int  { return len(s.rules) }
