package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-backend/internal/domain"
	"library-backend/internal/logger"
	"library-backend/internal/metrics"
	"library-backend/internal/repository"
)

// LoanPolicy holds the loan rules that come from configuration.
type LoanPolicy struct {
	PeriodDays int
	// Now defaults to time.Now.
	Now func() time.Time
}

func (p LoanPolicy) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

type loanService struct {
	bookRepo   repository.BookRepository
	memberRepo repository.MemberRepository
	rentalRepo repository.RentalRepository
	tx         repository.Transactor
	policy     LoanPolicy
}

func NewLoanService(
	bookRepo repository.BookRepository,
	memberRepo repository.MemberRepository,
	rentalRepo repository.RentalRepository,
	tx repository.Transactor,
	policy LoanPolicy,
) LoanService {
	if policy.PeriodDays <= 0 {
		policy.PeriodDays = domain.DefaultLoanPeriodDays
	}
	return &loanService{
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		rentalRepo: rentalRepo,
		tx:         tx,
		policy:     policy,
	}
}

func (s *loanService) IssueLoan(ctx context.Context, bookID, memberID int64) (domain.LoanOutcome, error) {
	const method = "loanService.IssueLoan"
	logger.EnterMethod(method, "bookID", bookID, "memberID", memberID)

	if memberID <= 0 {
		err := fmt.Errorf("member id is required: %w", domain.ErrInvalidArgument)
		logger.ExitMethodWithError(method, err, "bookID", bookID)
		return "", err
	}

	var outcome domain.LoanOutcome
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		outcome, err = s.evaluateLoan(ctx, bookID, memberID)
		return err
	})

	// A concurrent loan that won the race surfaces as a guard violation on insert.
	switch {
	case errors.Is(err, domain.ErrBookOnLoan):
		outcome, err = domain.LoanOutcomeBookUnavailable, nil
	case errors.Is(err, domain.ErrMemberHasLoan):
		outcome, err = domain.LoanOutcomeHasUnreturnedBook, nil
	}
	if err != nil {
		logger.ExitMethodWithError(method, err, "bookID", bookID, "memberID", memberID)
		return "", err
	}

	metrics.LoanOutcomes.WithLabelValues(string(outcome)).Inc()
	logger.FromContext(ctx).Info("Loan request evaluated", "book_id", bookID, "member_id", memberID, "outcome", outcome)
	logger.ExitMethod(method, "outcome", outcome)
	return outcome, nil
}

// evaluateLoan runs the eligibility checks in order and records the rental
// when all of them pass. It must run inside a transaction.
func (s *loanService) evaluateLoan(ctx context.Context, bookID, memberID int64) (domain.LoanOutcome, error) {
	isMember, err := s.memberRepo.ExistsByID(ctx, memberID)
	if err != nil {
		return "", fmt.Errorf("check member: %w", err)
	}
	if !isMember {
		return domain.LoanOutcomeNotAMember, nil
	}

	rentals, err := s.rentalRepo.ListByMemberID(ctx, memberID)
	if err != nil {
		return "", fmt.Errorf("list member rentals: %w", err)
	}
	if domain.HasActiveLoan(rentals) {
		return domain.LoanOutcomeHasUnreturnedBook, nil
	}

	onLoan, err := s.rentalRepo.ExistsActiveByBookID(ctx, bookID)
	if err != nil {
		return "", fmt.Errorf("check book availability: %w", err)
	}
	if onLoan {
		return domain.LoanOutcomeBookUnavailable, nil
	}

	rental := domain.NewRental(bookID, memberID, s.policy.now(), s.policy.PeriodDays)
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return "", err
	}
	logger.Debug("Rental recorded", "rental_id", rental.ID, "due_date", rental.DueDate, "returned_date", rental.ReturnedDate)
	return domain.LoanOutcomeSuccess, nil
}

func (s *loanService) ReturnLoan(ctx context.Context, rentalID int64) (int64, error) {
	const method = "loanService.ReturnLoan"
	logger.EnterMethod(method, "rentalID", rentalID)

	if rentalID <= 0 {
		err := fmt.Errorf("rental id is required: %w", domain.ErrInvalidArgument)
		logger.ExitMethodWithError(method, err)
		return 0, err
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		rental, err := s.rentalRepo.GetByID(ctx, rentalID)
		if err != nil {
			return fmt.Errorf("selected book does not exist: %w", err)
		}
		rental.MarkReturned()
		return s.rentalRepo.Update(ctx, rental)
	})
	if err != nil {
		logger.ExitMethodWithError(method, err, "rentalID", rentalID)
		return 0, err
	}

	metrics.LoanReturns.Inc()
	logger.FromContext(ctx).Info("Book returned", "rental_id", rentalID)
	logger.ExitMethod(method, "rentalID", rentalID)
	return rentalID, nil
}

func (s *loanService) ListMemberRentals(ctx context.Context, memberID int64) ([]domain.RentalSummary, error) {
	const method = "loanService.ListMemberRentals"
	logger.EnterMethod(method, "memberID", memberID)

	if memberID <= 0 {
		err := fmt.Errorf("member id is required: %w", domain.ErrInvalidArgument)
		logger.ExitMethodWithError(method, err)
		return nil, err
	}

	var summaries []domain.RentalSummary
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		bookIDs, err := s.rentalRepo.ListBookIDsByMemberID(ctx, memberID)
		if err != nil {
			return err
		}

		member, err := s.memberRepo.GetByID(ctx, memberID)
		if err != nil {
			return fmt.Errorf("selected member does not exist: %w", err)
		}

		summaries = make([]domain.RentalSummary, 0, len(bookIDs))
		for _, bookID := range bookIDs {
			book, err := s.bookRepo.GetByID(ctx, bookID)
			if err != nil {
				return fmt.Errorf("selected book does not exist: %w", err)
			}
			summaries = append(summaries, domain.NewRentalSummary(member, book))
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError(method, err, "memberID", memberID)
		return nil, err
	}

	logger.ExitMethod(method, "memberID", memberID, "count", len(summaries))
	return summaries, nil
}
