package domain

import (
	"math"
	"time"
)

// PayoutStatus is driven manually by admins; no automatic transitions
type PayoutStatus string

const (
	PayoutStatusWaitingVerification PayoutStatus = "WAITING_VERIFICATION"
	PayoutStatusProcessing          PayoutStatus = "PROCESSING"
	PayoutStatusTransferred         PayoutStatus = "TRANSFERRED"
)

// Valid reports whether the status is one of the known values
func (s PayoutStatus) Valid() bool {
	switch s {
	case PayoutStatusWaitingVerification, PayoutStatusProcessing, PayoutStatusTransferred:
		return true
	}
	return false
}

const (
	// ProcessingFeeRate is the gateway's fixed processing fee
	ProcessingFeeRate = 0.007
	// OrganizerFeeRate is the organizer's cut of the settled amount
	OrganizerFeeRate = 0.10
)

// TeamPayout holds admin-recorded settlement figures for one team.
// Created on first admin edit or first participant bank-info submission,
// never auto-deleted.
type TeamPayout struct {
	ID                int64        `json:"id"`
	TeamID            int64        `json:"team_id"`
	RecordedAmount    *int64       `json:"recorded_amount,omitempty"`
	Status            PayoutStatus `json:"status"`
	AdminNotes        string       `json:"admin_notes,omitempty"`
	ParticipantNotes  string       `json:"participant_notes,omitempty"`
	BankAccountName   string       `json:"bank_account_name,omitempty"`
	BankAccountNumber string       `json:"bank_account_number,omitempty"`
	UpdatedBy         string       `json:"updated_by,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// PayoutBreakdown is the organizer/participant split derived from an
// admin-recorded settled amount (already net of the gateway fee)
type PayoutBreakdown struct {
	RecordedAmount   int64 `json:"recorded_amount"`
	BeforeProcessing int64 `json:"before_processing"`
	ProcessingFee    int64 `json:"processing_fee"`
	OrganizerFee     int64 `json:"organizer_fee"`
	TakeHome         int64 `json:"take_home"`
}

// CalculatePayout computes the split from a settled amount in integer
// currency units, rounding half up. TakeHome is defined by subtraction so
// OrganizerFee + TakeHome always equals the recorded amount exactly.
func CalculatePayout(recordedAmount int64) PayoutBreakdown {
	settled := float64(recordedAmount)

	beforeProcessing := roundHalfUp(settled / (1 - ProcessingFeeRate))
	organizerFee := roundHalfUp(settled * OrganizerFeeRate)

	return PayoutBreakdown{
		RecordedAmount:   recordedAmount,
		BeforeProcessing: beforeProcessing,
		ProcessingFee:    beforeProcessing - recordedAmount,
		OrganizerFee:     organizerFee,
		TakeHome:         recordedAmount - organizerFee,
	}
}

// roundHalfUp rounds to the nearest integer unit, ties away from zero.
// Amounts are integral currency units well inside float64's exact range.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// UpdatePayoutRequest is the admin payload for recording settlement figures
type UpdatePayoutRequest struct {
	RecordedAmount *int64       `json:"recorded_amount,omitempty"`
	Status         PayoutStatus `json:"status,omitempty"`
	AdminNotes     *string      `json:"admin_notes,omitempty"`
}

// BankInfoRequest is the participant payload for payout delivery details
type BankInfoRequest struct {
	BankAccountName   string `json:"bank_account_name"`
	BankAccountNumber string `json:"bank_account_number"`
	ParticipantNotes  string `json:"participant_notes,omitempty"`
}

// PayoutView is the payout record plus its computed breakdown
type PayoutView struct {
	Payout    *TeamPayout      `json:"payout"`
	Breakdown *PayoutBreakdown `json:"breakdown,omitempty"`
}
