package domain_test

import (
	"testing"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestReimbursementStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from domain.ReimbursementStatus
		to   domain.ReimbursementStatus
		want bool
	}{
		{domain.ReimbursementPending, domain.ReimbursementApproved, true},
		{domain.ReimbursementPending, domain.ReimbursementRejected, true},
		{domain.ReimbursementPending, domain.ReimbursementPaid, true},
		{domain.ReimbursementApproved, domain.ReimbursementPaid, true},
		{domain.ReimbursementApproved, domain.ReimbursementRejected, false},
		{domain.ReimbursementApproved, domain.ReimbursementPending, false},
		{domain.ReimbursementRejected, domain.ReimbursementApproved, false},
		{domain.ReimbursementRejected, domain.ReimbursementPaid, false},
		{domain.ReimbursementPaid, domain.ReimbursementPending, false},
		{domain.ReimbursementPaid, domain.ReimbursementPaid, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReimbursementStatus_CanBePaid(t *testing.T) {
	assert.True(t, domain.ReimbursementPending.CanBePaid())
	assert.True(t, domain.ReimbursementApproved.CanBePaid())
	assert.False(t, domain.ReimbursementRejected.CanBePaid())
	assert.False(t, domain.ReimbursementPaid.CanBePaid())
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, domain.PaymentTransfer.IsValid())
	assert.True(t, domain.PaymentCheck.IsValid())
	assert.False(t, domain.PaymentMethod("crypto").IsValid())
}
