package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// TransactionType is the optional DEPOSIT/WITHDRAWAL marker some upstream
// transaction records carry. The sign of Amount is authoritative; Type is
// informational only.
type TransactionType string

const (
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
)

// Transaction is one record from the transaction-history service.
// Amount is in minor currency units (cents): negative = expense,
// positive = income/deposit. Category is attached during enrichment and is
// the only mutable field.
type Transaction struct {
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	Date        Day             `json:"date"`
	Type        TransactionType `json:"type,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// Day is a calendar date at day granularity. The history service sends
// ISO-8601 strings, sometimes with a time component; anything after 'T' is
// dropped before parsing. An unparseable date decodes to the zero value
// rather than failing the whole payload, so one bad record cannot sink a
// fetch.
type Day struct {
	time.Time
}

const dayLayout = "2006-01-02"

// NewDay truncates t to day granularity.
func NewDay(t time.Time) Day {
	return Day{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// Tolerate non-string dates; the record keeps a zero date and is
		// skipped by date-sensitive computations.
		return nil
	}
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return nil
	}
	d.Time = t
	return nil
}

func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(dayLayout))
}

// SameMonth reports whether d falls in the same calendar month and year as t.
func (d Day) SameMonth(t time.Time) bool {
	return d.Year() == t.Year() && d.Month() == t.Month()
}
