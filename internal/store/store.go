// Package store holds the goal and budget state. Everything lives in memory
// and is lost on restart - the service makes no durability promise.
package store

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-copilot/internal/domain"
)

// Store is the process-wide goal/budget state, safe for concurrent use. One
// goal at most; budgets are keyed by normalized category. Near-simultaneous
// writes are last-write-wins.
type Store struct {
	mu      sync.RWMutex
	goal    *domain.Goal
	budgets map[string]domain.Budget
}

// New creates an empty store.
func New() *Store {
	return &Store{
		budgets: make(map[string]domain.Budget),
	}
}

// SetGoal overwrites the current goal. No history is retained.
func (s *Store) SetGoal(goal domain.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := goal
	s.goal = &g
}

// Goal returns the current goal, if one is set.
func (s *Store) Goal() (domain.Goal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.goal == nil {
		return domain.Goal{}, false
	}
	return *s.goal, true
}

// SetBudget upserts one category budget; other entries are untouched.
func (s *Store) SetBudget(category string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.budgets[category] = domain.Budget{Category: category, Amount: amount}
}

// Budget returns the budget for the exact category key.
func (s *Store) Budget(category string) (domain.Budget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.budgets[category]
	return b, ok
}

// HasBudgets reports whether any budget is set.
func (s *Store) HasBudgets() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.budgets) > 0
}

// MatchBudgetCategory finds the stored budget whose category name appears in
// the message, case-insensitively. This is how "check my budget for
// groceries" resolves to the "Groceries" entry.
func (s *Store) MatchBudgetCategory(message string) (domain.Budget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(message)
	for category, b := range s.budgets {
		if strings.Contains(lower, strings.ToLower(category)) {
			return b, true
		}
	}
	return domain.Budget{}, false
}
