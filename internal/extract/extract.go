// Package extract turns a goal or budget declaration in free text into
// structured fields, using the oracle as the parser of record.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dvloznov/finance-copilot/internal/oracle"
)

// ErrNoExtraction is the typed "could not extract" result. Oracle failures,
// schema violations, and non-positive amounts all collapse into it: the
// caller's only move is a clarification prompt either way.
var ErrNoExtraction = errors.New("no extraction")

// GoalFields are the structured parts of a goal declaration.
type GoalFields struct {
	Name         string
	TargetAmount decimal.Decimal
}

// BudgetFields are the structured parts of a budget declaration. Category is
// title-case normalized so it can be used directly as a storage key.
type BudgetFields struct {
	Category string
	Amount   decimal.Decimal
}

var titleCaser = cases.Title(language.English)

// GoalFromMessage asks the oracle to pull a goal name and target amount out
// of the message. Returns ErrNoExtraction unless both fields come back and
// the amount is strictly positive.
func GoalFromMessage(ctx context.Context, o oracle.Oracle, message string) (*GoalFields, error) {
	if o == nil {
		return nil, ErrNoExtraction
	}

	reply, err := o.Generate(ctx, goalPrompt(message))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoExtraction, err)
	}

	var obj struct {
		Name         *string      `json:"name"`
		TargetAmount *json.Number `json:"target_amount"`
	}
	if err := decodeObject(reply, &obj); err != nil {
		return nil, err
	}
	if obj.Name == nil || *obj.Name == "" || obj.TargetAmount == nil {
		return nil, ErrNoExtraction
	}

	target, err := positiveAmount(*obj.TargetAmount)
	if err != nil {
		return nil, err
	}

	return &GoalFields{Name: *obj.Name, TargetAmount: target}, nil
}

// BudgetFromMessage asks the oracle for a budget category and monthly amount.
func BudgetFromMessage(ctx context.Context, o oracle.Oracle, message string) (*BudgetFields, error) {
	if o == nil {
		return nil, ErrNoExtraction
	}

	reply, err := o.Generate(ctx, budgetPrompt(message))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoExtraction, err)
	}

	var obj struct {
		Category *string      `json:"category"`
		Amount   *json.Number `json:"amount"`
	}
	if err := decodeObject(reply, &obj); err != nil {
		return nil, err
	}
	if obj.Category == nil || *obj.Category == "" || obj.Amount == nil {
		return nil, ErrNoExtraction
	}

	amount, err := positiveAmount(*obj.Amount)
	if err != nil {
		return nil, err
	}

	return &BudgetFields{
		Category: NormalizeCategory(*obj.Category),
		Amount:   amount,
	}, nil
}

// NormalizeCategory title-cases a category so "groceries" and "Groceries"
// collide to the same budget entry.
func NormalizeCategory(category string) string {
	return titleCaser.String(category)
}

// decodeObject pulls the object-shaped window out of the oracle reply and
// unmarshals it. The model was told to answer "{}" when it cannot extract;
// that sentinel decodes to all-nil fields and fails the presence checks
// above.
func decodeObject(reply string, v interface{}) error {
	objText := oracle.ExtractJSONObject(reply)
	if objText == "" {
		return fmt.Errorf("%w: no JSON object in reply", ErrNoExtraction)
	}
	if err := json.Unmarshal([]byte(objText), v); err != nil {
		return fmt.Errorf("%w: %v", ErrNoExtraction, err)
	}
	return nil
}

// positiveAmount parses the numeric field and rejects zero and below.
func positiveAmount(n json.Number) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", ErrNoExtraction, n)
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: amount %s is not positive", ErrNoExtraction, d)
	}
	return d, nil
}
