package extract

import "fmt"

func goalPrompt(message string) string {
	return fmt.Sprintf(`Extract the financial goal information from this message:
%q

Return ONLY a JSON object with "name" (string) and "target_amount" (number) fields.
Example: {"name": "vacation", "target_amount": 1500}
If you cannot extract both pieces of information, return: {}`, message)
}

func budgetPrompt(message string) string {
	return fmt.Sprintf(`Extract the budget information from this message:
%q

Return ONLY a JSON object with "category" (string) and "amount" (number) fields.
Example: {"category": "Groceries", "amount": 500}
If you cannot extract both pieces of information, return: {}`, message)
}
