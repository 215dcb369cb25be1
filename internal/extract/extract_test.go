package extract

import (
	"context"
	"errors"
	"testing"
)

type mockOracle struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockOracle) Generate(ctx context.Context, prompt string) (string, error) {
	return m.GenerateFunc(ctx, prompt)
}

func fixedReply(reply string) *mockOracle {
	return &mockOracle{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return reply, nil
		},
	}
}

func TestGoalFromMessage(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		wantName   string
		wantTarget string
		wantErr    bool
	}{
		{
			name:       "plain object",
			reply:      `{"name": "vacation", "target_amount": 1500}`,
			wantName:   "vacation",
			wantTarget: "1500",
		},
		{
			name:       "fenced object",
			reply:      "```json\n{\"name\": \"new laptop\", \"target_amount\": 799.99}\n```",
			wantName:   "new laptop",
			wantTarget: "799.99",
		},
		{
			name:    "empty object sentinel",
			reply:   "{}",
			wantErr: true,
		},
		{
			name:    "missing target amount",
			reply:   `{"name": "vacation"}`,
			wantErr: true,
		},
		{
			name:    "missing name",
			reply:   `{"target_amount": 1500}`,
			wantErr: true,
		},
		{
			name:    "negative amount",
			reply:   `{"name": "vacation", "target_amount": -5}`,
			wantErr: true,
		},
		{
			name:    "zero amount",
			reply:   `{"name": "vacation", "target_amount": 0}`,
			wantErr: true,
		},
		{
			name:    "non-numeric amount",
			reply:   `{"name": "vacation", "target_amount": "lots"}`,
			wantErr: true,
		},
		{
			name:    "no object at all",
			reply:   "I could not find a goal in that message.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GoalFromMessage(context.Background(), fixedReply(tt.reply), "irrelevant")
			if tt.wantErr {
				if !errors.Is(err, ErrNoExtraction) {
					t.Fatalf("GoalFromMessage() error = %v, want ErrNoExtraction", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GoalFromMessage() unexpected error: %v", err)
			}
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if got.TargetAmount.String() != tt.wantTarget {
				t.Errorf("TargetAmount = %s, want %s", got.TargetAmount, tt.wantTarget)
			}
		})
	}
}

func TestGoalFromMessage_OracleFailure(t *testing.T) {
	o := &mockOracle{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	if _, err := GoalFromMessage(context.Background(), o, "save 500 for a trip"); !errors.Is(err, ErrNoExtraction) {
		t.Errorf("GoalFromMessage() error = %v, want ErrNoExtraction", err)
	}

	if _, err := GoalFromMessage(context.Background(), nil, "save 500 for a trip"); !errors.Is(err, ErrNoExtraction) {
		t.Errorf("GoalFromMessage(nil oracle) error = %v, want ErrNoExtraction", err)
	}
}

func TestBudgetFromMessage(t *testing.T) {
	tests := []struct {
		name         string
		reply        string
		wantCategory string
		wantAmount   string
		wantErr      bool
	}{
		{
			name:         "plain object",
			reply:        `{"category": "Groceries", "amount": 500}`,
			wantCategory: "Groceries",
			wantAmount:   "500",
		},
		{
			name:         "lowercase category normalized",
			reply:        `{"category": "groceries", "amount": 500}`,
			wantCategory: "Groceries",
			wantAmount:   "500",
		},
		{
			name:         "multi-word category normalized",
			reply:        `{"category": "dining out", "amount": 120.50}`,
			wantCategory: "Dining Out",
			wantAmount:   "120.5",
		},
		{
			name:    "empty object sentinel",
			reply:   "{}",
			wantErr: true,
		},
		{
			name:    "negative amount",
			reply:   `{"category": "Shopping", "amount": -10}`,
			wantErr: true,
		},
		{
			name:    "missing category",
			reply:   `{"amount": 100}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BudgetFromMessage(context.Background(), fixedReply(tt.reply), "irrelevant")
			if tt.wantErr {
				if !errors.Is(err, ErrNoExtraction) {
					t.Fatalf("BudgetFromMessage() error = %v, want ErrNoExtraction", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BudgetFromMessage() unexpected error: %v", err)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
			if got.Amount.String() != tt.wantAmount {
				t.Errorf("Amount = %s, want %s", got.Amount, tt.wantAmount)
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"groceries", "Groceries"},
		{"Groceries", "Groceries"},
		{"GROCERIES", "Groceries"},
		{"dining out", "Dining Out"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeCategory(tt.input); got != tt.want {
				t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
