package grpc

import (
	"context"

	"github.com/stretchr/testify/mock"

	"library-backend/internal/domain"
)

type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) CreateBook(ctx context.Context, title, writer string) (*domain.Book, error) {
	args := m.Called(ctx, title, writer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Book), args.Error(1)
}

type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) CreateMember(ctx context.Context, name, phoneNumber string) (*domain.Member, error) {
	args := m.Called(ctx, name, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) IssueLoan(ctx context.Context, bookID, memberID int64) (domain.LoanOutcome, error) {
	args := m.Called(ctx, bookID, memberID)
	return args.Get(0).(domain.LoanOutcome), args.Error(1)
}
func (m *MockLoanService) ReturnLoan(ctx context.Context, rentalID int64) (int64, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLoanService) ListMemberRentals(ctx context.Context, memberID int64) ([]domain.RentalSummary, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalSummary), args.Error(1)
}
