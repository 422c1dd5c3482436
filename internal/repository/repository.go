package repository

import (
	"context"

	"library-backend/internal/domain"
)

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ListOrderByCreatedAt(ctx context.Context) ([]domain.Book, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, rental *domain.Rental) error
	ExistsActiveByBookID(ctx context.Context, bookID int64) (bool, error)
	ListByMemberID(ctx context.Context, memberID int64) ([]domain.Rental, error)
	ListBookIDsByMemberID(ctx context.Context, memberID int64) ([]int64, error)

	// Rentals referencing a book or member that does not exist.
	ListDangling(ctx context.Context) ([]domain.DanglingRental, error)
}

// Transactor runs fn inside a single transaction. Repositories called with
// the context handed to fn take part in that transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
