package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"library-backend/internal/config"
	"library-backend/internal/domain"
	"library-backend/internal/metrics"
	"library-backend/internal/repository"
)

type MockRentalRepo struct {
	mock.Mock
	repository.RentalRepository
}

func (m *MockRentalRepo) ListDangling(ctx context.Context) ([]domain.DanglingRental, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DanglingRental), args.Error(1)
}

func TestAuditLedger(t *testing.T) {
	t.Run("sets gauge to number of dangling rentals", func(t *testing.T) {
		repo := new(MockRentalRepo)
		repo.On("ListDangling", mock.Anything).Return([]domain.DanglingRental{
			{RentalID: 1, BookID: 10, MemberID: 2, MissingBook: true},
			{RentalID: 4, BookID: 11, MemberID: 9, MissingMember: true},
		}, nil)

		NewJobRunner(repo, &config.Config{}).AuditLedger()

		assert.Equal(t, float64(2), testutil.ToFloat64(metrics.DanglingRentals))
		repo.AssertExpectations(t)
	})

	t.Run("leaves gauge on error", func(t *testing.T) {
		metrics.DanglingRentals.Set(3)
		repo := new(MockRentalRepo)
		repo.On("ListDangling", mock.Anything).Return(nil, errors.New("db down"))

		NewJobRunner(repo, &config.Config{}).AuditLedger()

		assert.Equal(t, float64(3), testutil.ToFloat64(metrics.DanglingRentals))
	})
}

func TestRunOnce(t *testing.T) {
	repo := new(MockRentalRepo)
	repo.On("ListDangling", mock.Anything).Return([]domain.DanglingRental{}, nil)
	jr := NewJobRunner(repo, &config.Config{})

	assert.True(t, jr.RunOnce(JobAuditLedger))
	assert.False(t, jr.RunOnce("send-reminders"))
	repo.AssertNumberOfCalls(t, "ListDangling", 1)
}

func TestRunWithRecovery_Panic(t *testing.T) {
	jr := NewJobRunner(new(MockRentalRepo), &config.Config{})
	assert.NotPanics(t, func() {
		jr.runWithRecovery("boom", func(context.Context) { panic("boom") })
	})
}
