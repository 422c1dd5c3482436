package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRental(t *testing.T) {
	issued := time.Date(2026, 3, 30, 17, 45, 12, 0, time.UTC)

	t.Run("Default period", func(t *testing.T) {
		rt := NewRental(2, 3, issued, 0)
		assert.Equal(t, int64(2), rt.BookID)
		assert.Equal(t, int64(3), rt.MemberID)
		assert.False(t, rt.Available)
		assert.True(t, rt.IsActive())
		assert.Equal(t, time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC), rt.DueDate)
		assert.Equal(t, time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), rt.ReturnedDate)
	})

	t.Run("Custom period", func(t *testing.T) {
		rt := NewRental(1, 1, issued, 14)
		assert.Equal(t, time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC), rt.ReturnedDate)
	})
}

func TestRental_MarkReturned(t *testing.T) {
	rt := NewRental(1, 1, time.Now(), DefaultLoanPeriodDays)
	due, back := rt.DueDate, rt.ReturnedDate

	rt.MarkReturned()

	assert.True(t, rt.Available)
	assert.False(t, rt.IsActive())
	assert.Equal(t, due, rt.DueDate)
	assert.Equal(t, back, rt.ReturnedDate)
}

func TestHasActiveLoan(t *testing.T) {
	assert.False(t, HasActiveLoan(nil))
	assert.False(t, HasActiveLoan([]Rental{{ID: 1, Available: true}, {ID: 2, Available: true}}))
	assert.True(t, HasActiveLoan([]Rental{{ID: 1, Available: true}, {ID: 2, Available: false}}))
}

func TestLoanOutcome_Message(t *testing.T) {
	assert.True(t, LoanOutcomeSuccess.Succeeded())
	assert.False(t, LoanOutcomeBookUnavailable.Succeeded())
	assert.Equal(t, "not a registered member", LoanOutcomeNotAMember.Message())
	assert.Equal(t, "unknown", LoanOutcome("unknown").Message())
}
