package categorize

import (
	"fmt"
	"strings"
)

// categorizationPrompt builds the single batched instruction for the oracle.
// The reply contract mirrors what the parsing side expects: a raw JSON array
// of {description, amount, category} objects, nothing else.
func categorizationPrompt(batchJSON string) string {
	var b strings.Builder

	b.WriteString("Analyze the following bank transactions and assign each one a category from this list:\n")
	b.WriteString("[")
	for i, cat := range Vocabulary {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", cat)
	}
	b.WriteString("]\n\n")

	b.WriteString("IMPORTANT: Return ONLY a valid JSON array of objects. ")
	b.WriteString("Each object must have \"description\", \"amount\", and \"category\" fields.\n")
	b.WriteString("Keep \"description\" and \"amount\" exactly as given in the input.\n")
	b.WriteString("Do not include any explanations, markdown, or extra text.\n\n")

	b.WriteString("Transactions:\n")
	b.WriteString(batchJSON)

	return b.String()
}
