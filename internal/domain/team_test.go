package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHoldsValidClaim(t *testing.T) {
	now := time.Now()
	future := now.Add(5 * time.Minute)
	past := now.Add(-5 * time.Minute)

	tests := []struct {
		name     string
		status   PaymentStatus
		deadline *time.Time
		want     bool
	}{
		{"paid always counts", PaymentStatusPaid, nil, true},
		{"verified always counts", PaymentStatusVerified, nil, true},
		{"pending within hold", PaymentStatusPending, &future, true},
		{"pending past deadline", PaymentStatusPending, &past, false},
		{"pending without deadline", PaymentStatusPending, nil, false},
		{"unknown status", PaymentStatus("REFUNDED"), &future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team := &Team{PaymentStatus: tt.status, PaymentDeadline: tt.deadline}
			assert.Equal(t, tt.want, team.HoldsValidClaim(now))
		})
	}
}

func TestPaymentCompleted(t *testing.T) {
	assert.False(t, (&Team{PaymentStatus: PaymentStatusPending}).PaymentCompleted())
	assert.True(t, (&Team{PaymentStatus: PaymentStatusPaid}).PaymentCompleted())
	assert.True(t, (&Team{PaymentStatus: PaymentStatusVerified}).PaymentCompleted())
}

func TestTeamSizeCountsLeader(t *testing.T) {
	assert.Equal(t, 1, (&RegisterTeamRequest{}).TeamSize())
	assert.Equal(t, 4, (&RegisterTeamRequest{Members: []string{"a", "b", "c"}}).TeamSize())
}

func TestTeamCategoryValid(t *testing.T) {
	assert.True(t, CategoryService.Valid())
	assert.True(t, CategoryGoods.Valid())
	assert.True(t, CategoryFoodBeverage.Valid())
	assert.False(t, TeamCategory("OTHER").Valid())
}
