// Package categorize enriches fetched transactions with an oracle-assigned
// spending category.
package categorize

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-copilot/internal/domain"
	"github.com/dvloznov/finance-copilot/internal/oracle"
)

// MaxBatch bounds how many transactions go through the oracle in the single
// batched request. Input is assumed newest-first; anything past the cap still
// gets a category through the reconciliation fallback.
const MaxBatch = 75

const (
	// CategoryOther is assigned to records the oracle dropped or reordered
	// beyond recognition.
	CategoryOther = "Other"

	// CategoryUncategorized is assigned to every record when the oracle call
	// or its reply fails outright.
	CategoryUncategorized = "Uncategorized"
)

// Vocabulary is the closed category set the oracle must pick from.
var Vocabulary = []string{
	"Salary/Income",
	"Groceries",
	"Utilities",
	"Rent/Mortgage",
	"Transport",
	"Shopping",
	"Entertainment",
	"Health",
	"Dining",
	"Transfers",
	CategoryOther,
}

// Categorizer labels transactions via a single batched oracle call.
type Categorizer struct {
	oracle oracle.Oracle
	log    zerolog.Logger
}

// New creates a categorizer. oracle may be nil; categorization then degrades
// to the uncategorized fallback.
func New(o oracle.Oracle, log zerolog.Logger) *Categorizer {
	return &Categorizer{oracle: o, log: log}
}

// Categorize returns the input list, same length and order, with Category
// populated on every record. It never returns an error: any failure marks
// the whole list CategoryUncategorized.
func (c *Categorizer) Categorize(ctx context.Context, txs []domain.Transaction) []domain.Transaction {
	if len(txs) == 0 {
		return txs
	}
	if c.oracle == nil {
		return fallbackAll(txs)
	}

	mapping, err := c.askOracle(ctx, txs)
	if err != nil {
		c.log.Error().Err(err).Msg("Transaction categorization failed")
		return fallbackAll(txs)
	}

	out := make([]domain.Transaction, len(txs))
	for i, tx := range txs {
		category, ok := mapping[txKey{tx.Description, tx.Amount}]
		if !ok || category == "" {
			category = CategoryOther
		}
		tx.Category = category
		out[i] = tx
	}

	c.log.Info().Int("count", len(out)).Msg("Categorized transactions")
	return out
}

// txKey reconciles oracle output to original records. Matching is by
// (description, amount), not position: the model may reorder or drop entries.
type txKey struct {
	description string
	amount      int64
}

type promptEntry struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

type replyEntry struct {
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
}

func (c *Categorizer) askOracle(ctx context.Context, txs []domain.Transaction) (map[txKey]string, error) {
	batch := txs
	if len(batch) > MaxBatch {
		batch = batch[:MaxBatch]
	}

	// Only amount and description go out; dates and types are irrelevant to
	// categorization and just inflate the prompt.
	entries := make([]promptEntry, len(batch))
	for i, tx := range batch {
		entries[i] = promptEntry{Amount: tx.Amount, Description: tx.Description}
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("marshal batch: %w", err)
	}

	reply, err := c.oracle.Generate(ctx, categorizationPrompt(string(payload)))
	if err != nil {
		return nil, err
	}

	arrayText := oracle.ExtractJSONArray(reply)
	if arrayText == "" {
		return nil, fmt.Errorf("no JSON array in oracle reply")
	}

	var categorized []replyEntry
	if err := json.Unmarshal([]byte(arrayText), &categorized); err != nil {
		return nil, fmt.Errorf("unmarshal oracle reply: %w", err)
	}

	mapping := make(map[txKey]string, len(categorized))
	for _, entry := range categorized {
		amount, ok := numberToCents(entry.Amount)
		if !ok {
			continue
		}
		mapping[txKey{entry.Description, amount}] = entry.Category
	}
	return mapping, nil
}

// numberToCents normalizes the echoed amount back to the integer the batch
// was built from. Models occasionally return "100.0" for 100.
func numberToCents(n json.Number) (int64, bool) {
	if v, err := n.Int64(); err == nil {
		return v, true
	}
	if f, err := n.Float64(); err == nil {
		return int64(math.Round(f)), true
	}
	return 0, false
}

func fallbackAll(txs []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(txs))
	for i, tx := range txs {
		tx.Category = CategoryUncategorized
		out[i] = tx
	}
	return out
}
