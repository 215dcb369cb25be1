package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvloznov/finance-copilot/internal/api/handlers"
	"github.com/dvloznov/finance-copilot/internal/api/middleware"
	"github.com/dvloznov/finance-copilot/internal/categorize"
	"github.com/dvloznov/finance-copilot/internal/config"
	"github.com/dvloznov/finance-copilot/internal/logger"
	"github.com/dvloznov/finance-copilot/internal/oracle"
	"github.com/dvloznov/finance-copilot/internal/store"
	"github.com/dvloznov/finance-copilot/internal/transactions"
)

func main() {
	cfg := config.Load()

	// Flag wins over env for the port.
	port := flag.String("port", cfg.Port, "HTTP server port")
	flag.Parse()

	log := logger.New()
	ctx := context.Background()

	// The oracle is optional at startup: without it, chat reports
	// unavailability and the tip endpoint still works.
	var llm oracle.Oracle
	gemini, err := oracle.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Warn().Err(err).Msg("Oracle not configured - chat will be degraded")
	} else {
		llm = gemini
	}

	fetcher := transactions.NewFetcher(cfg.TransactionHistoryURL, cfg.UpstreamTimeout, log)
	categorizer := categorize.New(llm, log)
	state := store.New()

	chatHandler := handlers.NewChatHandler(llm, fetcher, categorizer, state, log)
	tipHandler := handlers.NewTipHandler(fetcher, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			chatHandler.Chat(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/proactive_tip", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			tipHandler.Tip(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
