package domain

import (
	"encoding/json"
	"time"
)

// TeamCategory classifies what a team sells at the event
type TeamCategory string

const (
	CategoryService      TeamCategory = "SERVICE"
	CategoryGoods        TeamCategory = "GOODS"
	CategoryFoodBeverage TeamCategory = "FOOD_BEVERAGE"
)

// Valid reports whether the category is one of the known values
func (c TeamCategory) Valid() bool {
	switch c {
	case CategoryService, CategoryGoods, CategoryFoodBeverage:
		return true
	}
	return false
}

// PaymentStatus is the team's position in the payment lifecycle
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusVerified PaymentStatus = "VERIFIED"
)

// PaymentMethod selects how the registration fee is settled
type PaymentMethod string

const (
	PaymentMethodGateway        PaymentMethod = "GATEWAY"
	PaymentMethodManualTransfer PaymentMethod = "MANUAL_TRANSFER"
)

// PaymentPlan selects full payment or a down payment with terms
type PaymentPlan string

const (
	PaymentPlanFull        PaymentPlan = "FULL"
	PaymentPlanDownPayment PaymentPlan = "DOWN_PAYMENT"
)

const (
	// RegistrationHold is the soft reservation window granted at creation.
	// Expiry is evaluated lazily by readers, never swept.
	RegistrationHold = 10 * time.Minute

	// IngredientCapacity is the hard cap of concurrently valid claims per ingredient
	IngredientCapacity = 2

	// MinGatewayFee is the smallest fee the gateway accepts for a session
	MinGatewayFee = 1000
)

// Team is the unit of registration. It holds at most one ingredient claim
// (food category only) and at most one booth claim.
type Team struct {
	ID               int64           `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	LeaderUserID     string          `json:"leader_user_id"`
	LeaderName       string          `json:"leader_name"`
	LeaderClass      string          `json:"leader_class"`
	LeaderExternalID string          `json:"leader_external_id"`
	Members          json.RawMessage `json:"members"`
	Contact          string          `json:"contact"`
	Category         TeamCategory    `json:"category"`

	IngredientID    *int64 `json:"ingredient_id,omitempty"`
	BoothLocationID *int64 `json:"booth_location_id,omitempty"`

	PaymentStatus   PaymentStatus  `json:"payment_status"`
	PaymentMethod   PaymentMethod  `json:"payment_method"`
	PaymentPlan     *PaymentPlan   `json:"payment_plan,omitempty"`
	PlanAcceptedAt  *time.Time     `json:"plan_accepted_at,omitempty"`
	PaymentDeadline *time.Time     `json:"payment_deadline,omitempty"`

	GatewayTrxID      *string    `json:"gateway_trx_id,omitempty"`
	GatewayPaymentURL *string    `json:"gateway_payment_url,omitempty"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`

	TransferAmount      *int64     `json:"transfer_amount,omitempty"`
	TransferNote        *string    `json:"transfer_note,omitempty"`
	TransferProofRef    *string    `json:"transfer_proof_ref,omitempty"`
	TransferSubmittedAt *time.Time `json:"transfer_submitted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HoldsValidClaim reports whether the team's resource claims count against
// capacity: payment settled, or the PENDING hold has not yet expired.
func (t *Team) HoldsValidClaim(now time.Time) bool {
	switch t.PaymentStatus {
	case PaymentStatusPaid, PaymentStatusVerified:
		return true
	case PaymentStatusPending:
		return t.PaymentDeadline != nil && t.PaymentDeadline.After(now)
	}
	return false
}

// PaymentCompleted reports whether the payment lifecycle has passed PENDING
func (t *Team) PaymentCompleted() bool {
	return t.PaymentStatus == PaymentStatusPaid || t.PaymentStatus == PaymentStatusVerified
}

// RegisterTeamRequest is the payload for creating a registration
type RegisterTeamRequest struct {
	Name             string       `json:"name"`
	LeaderName       string       `json:"leader_name"`
	LeaderClass      string       `json:"leader_class"`
	LeaderExternalID string       `json:"leader_external_id"`
	Members          []string     `json:"members"`
	Contact          string       `json:"contact"`
	Category         TeamCategory `json:"category"`
	IngredientID     *int64       `json:"ingredient_id,omitempty"`
	IngredientName   string       `json:"ingredient_name,omitempty"`
	BoothLocationID  *int64       `json:"booth_location_id,omitempty"`
}

// TeamSize counts the leader plus the listed members
func (r *RegisterTeamRequest) TeamSize() int {
	return len(r.Members) + 1
}

// SelectPlanRequest chooses the payment plan
type SelectPlanRequest struct {
	Plan        PaymentPlan `json:"plan"`
	AcceptTerms bool        `json:"accept_terms"`
}

// SelectMethodRequest chooses the payment method
type SelectMethodRequest struct {
	Method PaymentMethod `json:"method"`
}

// ManualProofRequest carries a manual bank-transfer proof submission.
// ProofRef is an opaque reference issued by the file store.
type ManualProofRequest struct {
	Amount   int64  `json:"amount"`
	Note     string `json:"note,omitempty"`
	ProofRef string `json:"proof_ref"`
}

// PaymentStatusResponse is returned by the gateway polling endpoint
type PaymentStatusResponse struct {
	Status        PaymentStatus `json:"status"`
	GatewayStatus string        `json:"gateway_status,omitempty"`
	PaymentURL    string        `json:"payment_url,omitempty"`
	Deadline      *time.Time    `json:"deadline,omitempty"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	Message       string        `json:"message,omitempty"`
}
