package rewrite

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/traitkb/kb/internal/log"
	"github.com/traitkb/kb/util"
)

// Budget bounds a completion run. Either field left at zero means that
// dimension is unbounded; a Budget with both fields zero never reports
// BudgetExceededError (spec.md §7).
type Budget struct {
	MaxRules int
	MaxSteps int
}

func (b *Budget) exceeded(rulesInserted, stepsPopped int) bool {
	if b == nil {
		return false
	}
	if b.MaxRules > 0 && rulesInserted > b.MaxRules {
		return true
	}
	if b.MaxSteps > 0 && stepsPopped > b.MaxSteps {
		return true
	}
	return false
}

// Complete runs the Knuth-Bendix-style saturation loop of spec.md §4.F: a
// LIFO worklist of rule ids whose overlaps have not yet been enumerated,
// a visited set of OverlapIdentifier so no overlap is resolved twice, and a
// budget guard that turns non-termination into a returned error instead of
// an unbounded loop.
//
// For each popped rule id, all of its overlaps are enumerated into a buffer
// first and only then drained (spec.md §5's "enumerate into a buffer, then
// drain and possibly insert" discipline) — resolving one overlap can insert
// a rule and right-simplify another, and that mutation must not happen
// while forEachOverlap is still walking the trie for the current id.
//
// sys is mutated in place; on BudgetExceededError it is left in a
// well-formed, still-usable partial state (spec.md §7).
func Complete(sys *System, budget *Budget) error {
	var stack util.Stack[RuleID]
	for _, id := range sys.store.ActiveIDs() {
		stack.Push(id)
	}
	visited := set.New[OverlapIdentifier](64)

	rulesInserted := sys.store.TotalCount()
	stepsPopped := 0

	for {
		i, ok := stack.Pop()
		if !ok {
			break
		}
		if !sys.store.IsActive(i) {
			continue
		}

		stepsPopped++
		if budget.exceeded(rulesInserted, stepsPopped) {
			err := &BudgetExceededError{RulesInserted: rulesInserted, PairsPopped: stepsPopped}
			log.DefaultLogger.Warn("completion budget exceeded", "section", "completion", "error", err)
			return err
		}

		for _, ov := range sys.forEachOverlap(i) {
			j, position := ov.Fst, ov.Snd

			oid, err := packOverlapID(i, j, position)
			if err != nil {
				return err
			}
			if !visited.Insert(oid) {
				continue
			}

			pair := formCriticalPair(sys.store.Get(i), sys.store.Get(j), position)
			newIDs, _, err := sys.resolveCriticalPair(pair)
			if err != nil {
				return err
			}
			if len(newIDs) == 0 {
				continue
			}

			// Every id in newIDs is a freshly active rule, whether it's the
			// resolved pair itself or one pulled in by a right-simplification
			// cascade inside Insert; each needs its own overlaps enumerated,
			// so all of them go on the worklist, not just the first.
			rulesInserted += len(newIDs)
			for _, newID := range newIDs {
				stack.Push(newID)
			}
			log.DefaultLogger.Debug("critical pair resolved", "section", "completion",
				"i", i, "j", j, "position", position, "new_ids", newIDs)
			if budget.exceeded(rulesInserted, stepsPopped) {
				err := &BudgetExceededError{RulesInserted: rulesInserted, PairsPopped: stepsPopped}
				log.DefaultLogger.Warn("completion budget exceeded", "section", "completion", "error", err)
				return err
			}
		}
	}
	log.DefaultLogger.Info("completion saturated", "section", "completion",
		"rules_inserted", rulesInserted, "pairs_popped", stepsPopped)
	return nil
}
