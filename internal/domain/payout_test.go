package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePayout(t *testing.T) {
	tests := []struct {
		name           string
		recordedAmount int64
		expected       PayoutBreakdown
	}{
		{
			name:           "typical settled amount",
			recordedAmount: 100000,
			expected: PayoutBreakdown{
				RecordedAmount:   100000,
				BeforeProcessing: 100705,
				ProcessingFee:    705,
				OrganizerFee:     10000,
				TakeHome:         90000,
			},
		},
		{
			name:           "zero amount",
			recordedAmount: 0,
			expected: PayoutBreakdown{
				RecordedAmount:   0,
				BeforeProcessing: 0,
				ProcessingFee:    0,
				OrganizerFee:     0,
				TakeHome:         0,
			},
		},
		{
			name:           "organizer fee rounds half up",
			recordedAmount: 5,
			expected: PayoutBreakdown{
				RecordedAmount:   5,
				BeforeProcessing: 5,
				ProcessingFee:    0,
				OrganizerFee:     1, // 0.5 rounds up
				TakeHome:         4,
			},
		},
		{
			name:           "small odd amount",
			recordedAmount: 993,
			expected: PayoutBreakdown{
				RecordedAmount:   993,
				BeforeProcessing: 1000,
				ProcessingFee:    7,
				OrganizerFee:     99, // 99.3 rounds down
				TakeHome:         894,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePayout(tt.recordedAmount)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// The split must account for every unit: whatever the rounding does to the
// organizer fee, fee plus take-home always reassembles the recorded amount.
func TestCalculatePayoutConservation(t *testing.T) {
	amounts := []int64{1, 7, 99, 100, 999, 1000, 12345, 99999, 100000, 250000, 1000001}

	for _, amount := range amounts {
		result := CalculatePayout(amount)

		assert.Equal(t, amount, result.OrganizerFee+result.TakeHome,
			"organizer fee + take-home must equal recorded amount for %d", amount)
		assert.Equal(t, result.BeforeProcessing-result.RecordedAmount, result.ProcessingFee,
			"processing fee must be the gross-up delta for %d", amount)
		assert.GreaterOrEqual(t, result.ProcessingFee, int64(0))
		assert.GreaterOrEqual(t, result.OrganizerFee, int64(0))
		assert.GreaterOrEqual(t, result.TakeHome, int64(0))
	}
}

func TestPayoutStatusValid(t *testing.T) {
	assert.True(t, PayoutStatusWaitingVerification.Valid())
	assert.True(t, PayoutStatusProcessing.Valid())
	assert.True(t, PayoutStatusTransferred.Valid())
	assert.False(t, PayoutStatus("PAID").Valid())
	assert.False(t, PayoutStatus("").Valid())
}
