package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-copilot/internal/api/middleware"
	"github.com/dvloznov/finance-copilot/internal/domain"
	"github.com/dvloznov/finance-copilot/internal/extract"
	"github.com/dvloznov/finance-copilot/internal/intent"
	"github.com/dvloznov/finance-copilot/internal/metrics"
	"github.com/dvloznov/finance-copilot/internal/oracle"
	"github.com/dvloznov/finance-copilot/internal/store"
)

// TransactionSource yields the caller's transaction history. Implementations
// fail soft: no credential or no upstream just means an empty list.
type TransactionSource interface {
	Fetch(authHeader string) []domain.Transaction
}

// Categorizer enriches a transaction list with categories, same length and
// order, never failing past its own boundary.
type Categorizer interface {
	Categorize(ctx context.Context, txs []domain.Transaction) []domain.Transaction
}

// ChatHandler answers POST /api/chat. One message in, one reply out; every
// path through here ends in a reply or a short client error, never a fault.
type ChatHandler struct {
	oracle      oracle.Oracle
	source      TransactionSource
	categorizer Categorizer
	state       *store.Store
	log         zerolog.Logger
}

// NewChatHandler creates the chat handler. oracle may be nil when the model
// is unconfigured; chat then reports unavailability instead of serving.
func NewChatHandler(o oracle.Oracle, source TransactionSource, categorizer Categorizer, state *store.Store, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		oracle:      o,
		source:      source,
		categorizer: categorizer,
		state:       state,
		log:         log,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request, 'message' is required")
		return
	}

	if h.oracle == nil {
		middleware.WriteError(w, http.StatusServiceUnavailable, "The assistant is not configured")
		return
	}

	// Fetch and enrich first; several branches need the categorized list and
	// both steps degrade to something usable on failure.
	txs := h.source.Fetch(r.Header.Get("Authorization"))
	txs = h.categorizer.Categorize(ctx, txs)

	var reply string
	switch intent.Classify(req.Message) {
	case intent.SetGoal:
		reply = h.setGoal(ctx, req.Message)
	case intent.SetBudget:
		reply = h.setBudget(ctx, req.Message)
	case intent.CheckBudget:
		reply = h.checkBudget(req.Message, txs)
	case intent.CheckGoalProgress:
		reply = h.checkGoalProgress(txs)
	default:
		reply = h.generalQuery(ctx, req.Message, txs)
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (h *ChatHandler) setGoal(ctx context.Context, message string) string {
	fields, err := extract.GoalFromMessage(ctx, h.oracle, message)
	if err != nil {
		h.log.Warn().Err(err).Msg("Goal extraction failed")
		return "I couldn't understand the goal. Please try again, for example: 'I want to save 500 for a trip'."
	}

	h.state.SetGoal(domain.Goal{
		Name:      fields.Name,
		Target:    fields.TargetAmount,
		StartDate: time.Now(),
	})

	return fmt.Sprintf("Okay, I've set a goal for you to save $%s for %s.",
		fields.TargetAmount.StringFixed(2), fields.Name)
}

func (h *ChatHandler) setBudget(ctx context.Context, message string) string {
	fields, err := extract.BudgetFromMessage(ctx, h.oracle, message)
	if err != nil {
		h.log.Warn().Err(err).Msg("Budget extraction failed")
		return "I couldn't understand the budget. Please try again, for example: 'Set a $500 budget for Shopping'."
	}

	h.state.SetBudget(fields.Category, fields.Amount)

	return fmt.Sprintf("Okay, I've set a monthly budget of $%s for the '%s' category.",
		fields.Amount.StringFixed(2), fields.Category)
}

func (h *ChatHandler) checkBudget(message string, txs []domain.Transaction) string {
	if !h.state.HasBudgets() {
		return "You haven't set any budgets yet."
	}

	budget, ok := h.state.MatchBudgetCategory(message)
	if !ok {
		return "I couldn't understand which budget you're asking about."
	}

	return metrics.ComputeBudgetStatus(txs, budget, time.Now()).Message()
}

func (h *ChatHandler) checkGoalProgress(txs []domain.Transaction) string {
	goal, ok := h.state.Goal()
	if !ok {
		return "You haven't set a savings goal yet. Would you like to set one?"
	}

	return metrics.ComputeGoalProgress(txs, goal).Message()
}

func (h *ChatHandler) generalQuery(ctx context.Context, message string, txs []domain.Transaction) string {
	reply, err := h.oracle.Generate(ctx, generalQueryPrompt(message, txs))
	if err != nil {
		h.log.Error().Err(err).Msg("General query failed")
		return "Sorry, I encountered an error. Please try again."
	}
	return reply
}

// TipHandler answers POST /api/proactive_tip. Advisory only: it returns a
// tip or an empty object, never an error status.
type TipHandler struct {
	source TransactionSource
	log    zerolog.Logger
}

// NewTipHandler creates the proactive-tip handler.
func NewTipHandler(source TransactionSource, log zerolog.Logger) *TipHandler {
	return &TipHandler{source: source, log: log}
}

// Tip handles POST /api/proactive_tip.
func (h *TipHandler) Tip(w http.ResponseWriter, r *http.Request) {
	txs := h.source.Fetch(r.Header.Get("Authorization"))

	tip, ok := metrics.ProactiveTip(txs, time.Now())
	if !ok {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{})
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"tip": tip})
}
