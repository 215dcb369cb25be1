// Package oracle wraps the LLM text-completion service. The model is treated
// as an untrusted collaborator: it takes a prompt, returns free text, and
// everything downstream re-validates what came back.
package oracle

import (
	"context"
	"strings"
)

// Oracle is a text-in/text-out completion call. Implementations must honor
// the context deadline; no retries are expected of them.
type Oracle interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CleanReply strips Markdown code fences the model sometimes wraps around
// JSON output, despite instructions not to.
func CleanReply(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}

// ExtractJSONArray returns the first-'[' to last-']' window of the reply,
// which survives prose the model adds around the JSON. Returns "" when no
// array-like substring exists.
func ExtractJSONArray(raw string) string {
	s := CleanReply(raw)
	start := strings.Index(s, "[")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "]")
	if end <= start {
		return ""
	}
	return strings.TrimSpace(s[start : end+1])
}

// ExtractJSONObject is the object-shaped counterpart of ExtractJSONArray.
func ExtractJSONObject(raw string) string {
	s := CleanReply(raw)
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end <= start {
		return ""
	}
	return strings.TrimSpace(s[start : end+1])
}
