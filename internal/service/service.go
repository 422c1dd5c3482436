package service

import (
	"context"

	"library-backend/internal/domain"
)

type BookService interface {
	CreateBook(ctx context.Context, title, writer string) (*domain.Book, error)
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]domain.Book, error)
}

type MemberService interface {
	CreateMember(ctx context.Context, name, phoneNumber string) (*domain.Member, error)
}

// LoanService issues and takes back books. Refused loans are reported through
// the returned outcome; an error means the request could not be evaluated.
type LoanService interface {
	IssueLoan(ctx context.Context, bookID, memberID int64) (domain.LoanOutcome, error)
	ReturnLoan(ctx context.Context, rentalID int64) (int64, error)
	// ListMemberRentals returns every rental recorded for the member, returned or not.
	ListMemberRentals(ctx context.Context, memberID int64) ([]domain.RentalSummary, error)
}
