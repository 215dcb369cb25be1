package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/dvloznov/finance-copilot/internal/domain"
)

// generalQueryPrompt frames the free-form branch: the categorized transaction
// list goes in as JSON context, the user's question verbatim after it.
func generalQueryPrompt(message string, txs []domain.Transaction) string {
	data, err := json.Marshal(txs)
	if err != nil {
		data = []byte("[]")
	}

	return fmt.Sprintf(`You are a helpful financial co-pilot for a retail bank.
Answer the user's question using only the transaction data below.
Amounts are integers in cents; report dollar figures with two decimals.
Be concise and friendly. Never invent transactions that are not in the data.

Transaction Data:
%s

User's Question:
%s`, data, message)
}
