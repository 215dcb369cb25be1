// Package transactions fetches the caller's transaction history from the
// upstream history service.
package transactions

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-copilot/internal/domain"
)

// Fetcher retrieves the transaction list for the account named in a bearer
// credential. Every failure path degrades to an empty list: the chat flow
// must keep working with no transaction context rather than surface upstream
// trouble to the user.
type Fetcher struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewFetcher creates a fetcher against the given history service base URL,
// e.g. "http://transactionhistory:8080". A single attempt per fetch, bounded
// by timeout; no retries.
func NewFetcher(baseURL string, timeout time.Duration, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Fetch resolves the account ID from the Authorization header and pulls that
// account's transactions, forwarding the same header upstream. Returns an
// empty slice on any failure.
func (f *Fetcher) Fetch(authHeader string) []domain.Transaction {
	accountID, err := accountFromBearer(authHeader)
	if err != nil {
		f.log.Warn().Err(err).Msg("No usable authorization credential")
		return nil
	}

	url := fmt.Sprintf("%s/transactions/%s", f.baseURL, accountID)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		f.log.Error().Err(err).Msg("Failed to build transaction history request")
		return nil
	}
	req.Header.Set("Authorization", authHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Error().Err(err).Msg("Failed to reach transaction history service")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.log.Warn().Int("status", resp.StatusCode).Msg("Transaction history service returned non-OK status")
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.log.Error().Err(err).Msg("Failed to read transaction history response")
		return nil
	}

	var txs []domain.Transaction
	if err := json.Unmarshal(body, &txs); err != nil {
		f.log.Warn().Err(err).Msg("Transaction history payload is not a list")
		return nil
	}

	f.log.Info().Int("count", len(txs)).Msg("Fetched transactions")
	return txs
}

// accountFromBearer decodes the JWT claims without verifying the signature.
// Signature verification happens at the gateway in front of this service;
// here the token is only a carrier for the account ID.
func accountFromBearer(authHeader string) (string, error) {
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fmt.Errorf("missing or malformed Authorization header")
	}
	raw := strings.TrimPrefix(authHeader, "Bearer ")

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return "", fmt.Errorf("decode credential: %w", err)
	}

	acct, ok := claims["acct"].(string)
	if !ok || acct == "" {
		return "", fmt.Errorf("credential has no account ID claim")
	}
	return acct, nil
}
