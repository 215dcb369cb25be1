// Package metrics derives spending and savings figures from categorized
// transactions and renders them as user-facing sentences.
package metrics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-copilot/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// centsToDollars converts minor units to major units exactly.
func centsToDollars(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// BudgetStatus is the month-to-date standing of one category budget.
type BudgetStatus struct {
	Category  string
	Limit     decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
}

// ComputeBudgetStatus sums this calendar month's expenses in the budget's
// category, evaluated against now. Expenses are negative amounts; records
// with missing dates are skipped.
func ComputeBudgetStatus(txs []domain.Transaction, budget domain.Budget, now time.Time) BudgetStatus {
	spent := decimal.Zero
	for _, tx := range txs {
		if tx.Amount >= 0 || tx.Category != budget.Category {
			continue
		}
		if tx.Date.IsZero() || !tx.Date.SameMonth(now) {
			continue
		}
		spent = spent.Add(centsToDollars(-tx.Amount))
	}

	return BudgetStatus{
		Category:  budget.Category,
		Limit:     budget.Amount,
		Spent:     spent,
		Remaining: budget.Amount.Sub(spent),
	}
}

// PercentUsed is spent-over-limit as a percentage. Zero limit reports 0.
func (s BudgetStatus) PercentUsed() decimal.Decimal {
	if s.Limit.IsZero() {
		return decimal.Zero
	}
	return s.Spent.Div(s.Limit).Mul(hundred)
}

// Message renders one of three shapes: nothing spent, within budget, over
// budget.
func (s BudgetStatus) Message() string {
	if s.Spent.IsZero() {
		return fmt.Sprintf("You haven't spent anything from your '%s' budget of $%s this month.",
			s.Category, s.Limit.StringFixed(2))
	}
	if s.Spent.GreaterThan(s.Limit) {
		return fmt.Sprintf("For your '%s' budget of $%s, you have spent $%s this month. You are $%s over budget.",
			s.Category, s.Limit.StringFixed(2), s.Spent.StringFixed(2), s.Spent.Sub(s.Limit).StringFixed(2))
	}
	return fmt.Sprintf("For your '%s' budget of $%s, you have spent $%s this month. You have $%s remaining (%s%% used).",
		s.Category, s.Limit.StringFixed(2), s.Spent.StringFixed(2),
		s.Remaining.StringFixed(2), s.PercentUsed().StringFixed(1))
}

// GoalProgress is the standing of the savings goal.
type GoalProgress struct {
	Goal  domain.Goal
	Saved decimal.Decimal
}

// ComputeGoalProgress sums income/deposits (positive amounts) dated on or
// after the goal's start date, day granularity. A goal without a start date
// counts every positive transaction, dated or not.
func ComputeGoalProgress(txs []domain.Transaction, goal domain.Goal) GoalProgress {
	var startDay time.Time
	if !goal.StartDate.IsZero() {
		startDay = domain.NewDay(goal.StartDate).Time
	}

	saved := decimal.Zero
	for _, tx := range txs {
		if tx.Amount <= 0 {
			continue
		}
		if !startDay.IsZero() {
			if tx.Date.IsZero() || tx.Date.Time.Before(startDay) {
				continue
			}
		}
		saved = saved.Add(centsToDollars(tx.Amount))
	}

	return GoalProgress{Goal: goal, Saved: saved}
}

// Exceeded reports whether the goal is met. Equality counts as exceeded.
func (p GoalProgress) Exceeded() bool {
	return p.Saved.GreaterThanOrEqual(p.Goal.Target)
}

// PercentComplete is saved-over-target as a percentage, guarded for a zero
// target.
func (p GoalProgress) PercentComplete() decimal.Decimal {
	if p.Goal.Target.IsZero() {
		return decimal.Zero
	}
	return p.Saved.Div(p.Goal.Target).Mul(hundred)
}

// Message renders the congratulatory or in-progress sentence.
func (p GoalProgress) Message() string {
	if p.Exceeded() {
		return fmt.Sprintf("Congratulations! You have exceeded your goal! You have saved $%s for your %s, which is $%s more than your $%s target. Great job!",
			p.Saved.StringFixed(2), p.Goal.Name,
			p.Saved.Sub(p.Goal.Target).StringFixed(2), p.Goal.Target.StringFixed(2))
	}
	return fmt.Sprintf("You are doing great! You have saved $%s of your $%s goal for your %s. You are %s%% of the way there, with $%s to go.",
		p.Saved.StringFixed(2), p.Goal.Target.StringFixed(2), p.Goal.Name,
		p.PercentComplete().StringFixed(1), p.Goal.Target.Sub(p.Saved).StringFixed(2))
}

// ProactiveTip names the largest expense of the trailing 30 days, inclusive,
// at day granularity. Ties go to the first-encountered record. Returns
// ("", false) when no expense qualifies; that is an empty result, not an
// error.
func ProactiveTip(txs []domain.Transaction, now time.Time) (string, bool) {
	cutoff := domain.NewDay(now.AddDate(0, 0, -30)).Time

	var largest *domain.Transaction
	for i := range txs {
		tx := &txs[i]
		if tx.Amount >= 0 || tx.Date.IsZero() || tx.Date.Time.Before(cutoff) {
			continue
		}
		if largest == nil || -tx.Amount > -largest.Amount {
			largest = tx
		}
	}
	if largest == nil {
		return "", false
	}

	amount := centsToDollars(-largest.Amount)
	tip := fmt.Sprintf("I noticed your largest expense in the last 30 days was $%s for %s. Consider reviewing if this aligns with your financial goals.",
		amount.StringFixed(2), largest.Description)
	return tip, true
}
