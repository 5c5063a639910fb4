package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bazaar-be/internal/service"
	"bazaar-be/pkg/logger"
)

// Service implements the PaymentGateway interface over the provider's HTTP
// API. Calls are bounded by the client timeout and must never run while a
// database transaction is held open.
type Service struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewService creates a new payment gateway adapter
func NewService(baseURL, apiKey string, timeout time.Duration, logger *logger.Logger) service.PaymentGateway {
	return &Service{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type createSessionRequest struct {
	Amount      int64  `json:"amount"`
	MerchantRef string `json:"merchant_ref"`
}

type sessionData struct {
	TrxID      string `json:"trx_id"`
	PaymentURL string `json:"payment_url"`
	ExpiredAt  string `json:"expired_at,omitempty"`
}

type createSessionResponse struct {
	Success bool        `json:"success"`
	Data    sessionData `json:"data"`
	Error   string      `json:"error,omitempty"`
}

type checkStatusResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// CreateSession creates a gateway payment session for the given amount
func (s *Service) CreateSession(ctx context.Context, amount int64, merchantRef string) (*service.GatewaySession, error) {
	body, err := json.Marshal(createSessionRequest{Amount: amount, MerchantRef: merchantRef})
	if err != nil {
		return nil, fmt.Errorf("failed to encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var payload createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode session response: %w", err)
	}
	if !payload.Success {
		return nil, fmt.Errorf("gateway rejected session: %s", payload.Error)
	}
	if payload.Data.TrxID == "" || payload.Data.PaymentURL == "" {
		return nil, fmt.Errorf("gateway returned incomplete session data")
	}

	session := &service.GatewaySession{
		TrxID:      payload.Data.TrxID,
		PaymentURL: payload.Data.PaymentURL,
	}

	// An absent or unparsable expiry leaves ExpiredAt nil; the caller falls
	// back to its own hold window
	if payload.Data.ExpiredAt != "" {
		if expiredAt, err := time.Parse(time.RFC3339, payload.Data.ExpiredAt); err == nil {
			session.ExpiredAt = &expiredAt
		} else {
			s.logger.WithField("expired_at", payload.Data.ExpiredAt).Warn("Gateway returned unparsable expiry")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"trx_id": session.TrxID,
		"amount": amount,
	}).Debug("Gateway session created")
	return session, nil
}

// CheckStatus reports the gateway-side status of a transaction
func (s *Service) CheckStatus(ctx context.Context, trxID string) (string, error) {
	url := fmt.Sprintf("%s/v1/transactions/%s/status", s.baseURL, trxID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var payload checkStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode status response: %w", err)
	}
	if !payload.Success {
		return "", fmt.Errorf("gateway rejected status check: %s", payload.Error)
	}
	if payload.Status == "" {
		return "", fmt.Errorf("gateway returned empty status")
	}

	return payload.Status, nil
}
