package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a single savings goal. At most one goal exists at a time; setting a
// new one overwrites the last. Target is in major units (dollars) and is
// always strictly positive once stored.
type Goal struct {
	Name      string
	Target    decimal.Decimal
	StartDate time.Time
}

// Budget is a monthly spending limit for one category. The category key is
// title-case normalized before storage so "groceries" and "Groceries" land on
// the same entry. Amount is in major units and strictly positive.
type Budget struct {
	Category string
	Amount   decimal.Decimal
}
