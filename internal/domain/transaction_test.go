package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDay_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		want     string
		wantZero bool
	}{
		{
			name:    "plain date",
			payload: `{"amount": -100, "description": "x", "date": "2024-03-01"}`,
			want:    "2024-03-01",
		},
		{
			name:    "timestamp truncated to day",
			payload: `{"amount": -100, "description": "x", "date": "2024-03-01T15:04:05Z"}`,
			want:    "2024-03-01",
		},
		{
			name:     "garbage date kept as zero",
			payload:  `{"amount": -100, "description": "x", "date": "yesterday"}`,
			wantZero: true,
		},
		{
			name:     "numeric date kept as zero",
			payload:  `{"amount": -100, "description": "x", "date": 1709251200}`,
			wantZero: true,
		},
		{
			name:     "missing date",
			payload:  `{"amount": -100, "description": "x"}`,
			wantZero: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tx Transaction
			if err := json.Unmarshal([]byte(tt.payload), &tx); err != nil {
				t.Fatalf("one bad date must not fail the record: %v", err)
			}
			if tt.wantZero {
				if !tx.Date.IsZero() {
					t.Errorf("Date = %v, want zero", tx.Date)
				}
				return
			}
			if got := tx.Date.Format("2006-01-02"); got != tt.want {
				t.Errorf("Date = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDay_MarshalJSON(t *testing.T) {
	tx := Transaction{
		Amount:      -100,
		Description: "Coffee",
		Date:        NewDay(time.Date(2024, time.March, 1, 18, 30, 0, 0, time.UTC)),
		Category:    "Dining",
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"amount":-100,"description":"Coffee","date":"2024-03-01","category":"Dining"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestDay_SameMonth(t *testing.T) {
	d := NewDay(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))

	if !d.SameMonth(time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC)) {
		t.Error("same month and year reported false")
	}
	if d.SameMonth(time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("same month of a different year reported true")
	}
	if d.SameMonth(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("different month reported true")
	}
}
