package rewrite

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrCode classifies engine errors the way the teacher's ilerr.ErrCode
// classifies compiler errors (frontend/ilerr/errors.go), without the
// teacher's source-position machinery: this engine has no surface syntax.
type ErrCode int

const (
	_ ErrCode = iota
	ErrInvalidRule
	ErrInvalidEqualityLhs
	ErrBudgetExceeded
	ErrOverlapIDOverflow
	ErrInvalidTraitGraph
)

func (c ErrCode) String() string {
	switch c {
	case ErrInvalidRule:
		return "InvalidRule"
	case ErrInvalidEqualityLhs:
		return "InvalidEqualityLhs"
	case ErrBudgetExceeded:
		return "BudgetExceeded"
	case ErrOverlapIDOverflow:
		return "OverlapIdOverflow"
	case ErrInvalidTraitGraph:
		return "InvalidTraitGraph"
	default:
		return "Unknown"
	}
}

// RuleError is the engine's single error type; Code distinguishes the kinds
// described in spec.md §7. Construction always runs through
// github.com/pkg/errors so a caller that wraps a RuleError with %w retains
// the original stack, the way the teacher's ilerr.New captures
// debug.Stack() at the point an IleError is raised.
type RuleError struct {
	code ErrCode
	msg  string
}

func (e *RuleError) Error() string { return fmt.Sprintf("(%s) %s", e.code, e.msg) }
func (e *RuleError) Code() ErrCode { return e.code }

func newRuleError(code ErrCode, msg string) error {
	return errors.WithStack(&RuleError{code: code, msg: msg})
}

// newInvalidRule is raised at insertion when a caller violates the
// precondition order(r.source, r.target) == Descending. Fatal to the run.
func newInvalidRule(source, target Term) error {
	return newRuleError(ErrInvalidRule, fmt.Sprintf("rule source %q is not strictly greater than target %q under the term order", source, target))
}

// newInvalidEqualityLhs is raised before insertion when an Equality
// constraint's lhs is not an abstract parameter.
func newInvalidEqualityLhs(lhs Term) error {
	return newRuleError(ErrInvalidEqualityLhs, fmt.Sprintf("equality constraint lhs %q is not an abstract parameter", lhs))
}

// newOverlapIDOverflow is raised when an OverlapIdentifier's packed fields
// (16 bits each by default) cannot represent a rule id or position.
func newOverlapIDOverflow(ruleID RuleID, position int) error {
	return newRuleError(ErrOverlapIDOverflow, fmt.Sprintf("rule id %d or position %d does not fit the packed overlap identifier encoding", ruleID, position))
}

// newInvalidTraitGraph is raised when the trait-refinement map declares a cycle.
func newInvalidTraitGraph(trait string) error {
	return newRuleError(ErrInvalidTraitGraph, fmt.Sprintf("cyclic trait refinement detected reaching %q", trait))
}

// BudgetExceededError is returned, never panicked, when completion does not
// converge within configured bounds (spec.md §7). The partial system
// remains well-formed and is still reachable from the caller's System value.
type BudgetExceededError struct {
	RulesInserted int
	PairsPopped   int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("(%s) completion budget exceeded after %d rule insertions and %d pairs popped", ErrBudgetExceeded, e.RulesInserted, e.PairsPopped)
}

func (e *BudgetExceededError) Code() ErrCode { return ErrBudgetExceeded }
