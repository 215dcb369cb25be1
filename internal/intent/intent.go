// Package intent routes a free-text message to one of the five handling
// branches with ordered keyword rules.
package intent

import "strings"

// Intent is the selected handling branch for a message.
type Intent string

const (
	SetGoal           Intent = "SET_GOAL"
	SetBudget         Intent = "SET_BUDGET"
	CheckBudget       Intent = "CHECK_BUDGET"
	CheckGoalProgress Intent = "CHECK_GOAL_PROGRESS"
	GeneralQuery      Intent = "GENERAL_QUERY"
)

// rule pairs an intent with the phrases that select it. Rules are evaluated
// in slice order; the first rule with any matching phrase wins, so a message
// that matches several groups routes to the earliest one.
type rule struct {
	intent   Intent
	keywords []string
}

var rules = []rule{
	{SetGoal, []string{"set a goal", "i want to save", "save for"}},
	{SetBudget, []string{"set a budget", "budget for"}},
	{CheckBudget, []string{"check my budget", "how is my budget"}},
	{CheckGoalProgress, []string{"check goal", "how am i doing"}},
}

// Classify picks exactly one intent for the message. Matching is
// case-insensitive substring containment; no scoring. Messages that match
// nothing fall through to GeneralQuery.
func Classify(message string) Intent {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent
			}
		}
	}
	return GeneralQuery
}
