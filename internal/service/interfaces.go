package service

import (
	"context"
	"time"
)

// GatewaySession is the result of creating a payment session
type GatewaySession struct {
	TrxID      string     `json:"trx_id"`
	PaymentURL string     `json:"payment_url"`
	ExpiredAt  *time.Time `json:"expired_at,omitempty"`
}

// Gateway transaction statuses as reported by the payment provider
const (
	GatewayStatusSuccess = "SUCCESS"
	GatewayStatusExpired = "EXPIRED"
	GatewayStatusPending = "PENDING"
)

// PaymentGateway defines the interface to the external payment provider.
// Both calls are network-bound and must never run while a database
// transaction is held open.
type PaymentGateway interface {
	// CreateSession creates a gateway payment session for the given amount
	CreateSession(ctx context.Context, amount int64, merchantRef string) (*GatewaySession, error)

	// CheckStatus reports the gateway-side status of a transaction
	CheckStatus(ctx context.Context, trxID string) (string, error)
}

// Services aggregates the application services
type Services struct {
	Settings     *SettingsService
	Registration *RegistrationService
	Payment      *PaymentService
	Payout       *PayoutService
}
