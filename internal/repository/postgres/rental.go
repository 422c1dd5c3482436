package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"library-backend/internal/domain"
	"library-backend/internal/logger"
	"library-backend/internal/repository"
)

// Partial unique indexes created by the initial migration.
const (
	activeBookIndex   = "rentals_one_active_per_book"
	activeMemberIndex = "rentals_one_active_per_member"
)

const rentalColumns = `id, book_id, member_id, due_date, returned_date, available`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	logger.EnterMethod("rentalRepository.Create", "bookID", rt.BookID, "memberID", rt.MemberID)

	query := `INSERT INTO rentals (book_id, member_id, due_date, returned_date, available) 
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, rt.BookID, rt.MemberID, rt.DueDate, rt.ReturnedDate, rt.Available).Scan(&rt.ID)
	if err != nil {
		err = mapActiveRentalViolation(err)
		logger.ExitMethodWithError("rentalRepository.Create", err, "bookID", rt.BookID)
		return err
	}

	logger.ExitMethod("rentalRepository.Create", "rentalID", rt.ID)
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.BookID, &rt.MemberID, &rt.DueDate, &rt.ReturnedDate, &rt.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rental %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM rentals WHERE id = $1)`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET due_date=$1, returned_date=$2, available=$3 WHERE id=$4`
	logger.DatabaseCall("update", query, "rentalID", rt.ID)

	result, err := conn(ctx, r.db).ExecContext(ctx, query, rt.DueDate, rt.ReturnedDate, rt.Available, rt.ID)
	if err != nil {
		err = mapActiveRentalViolation(err)
		logger.DatabaseResult("update", 0, err, "rentalID", rt.ID)
		return err
	}

	rows, err := result.RowsAffected()
	logger.DatabaseResult("update", rows, err, "rentalID", rt.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("rental %d: %w", rt.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *rentalRepository) ExistsActiveByBookID(ctx context.Context, bookID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM rentals WHERE book_id = $1 AND available = false)`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, bookID).Scan(&exists)
	return exists, err
}

func (r *rentalRepository) ListByMemberID(ctx context.Context, memberID int64) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE member_id = $1 ORDER BY id`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.BookID, &rt.MemberID, &rt.DueDate, &rt.ReturnedDate, &rt.Available); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) ListBookIDsByMemberID(ctx context.Context, memberID int64) ([]int64, error) {
	query := `SELECT book_id FROM rentals WHERE member_id = $1 ORDER BY id`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *rentalRepository) ListDangling(ctx context.Context) ([]domain.DanglingRental, error) {
	query := `SELECT r.id, r.book_id, r.member_id, b.id IS NULL, m.id IS NULL
	          FROM rentals r
	          LEFT JOIN books b ON b.id = r.book_id
	          LEFT JOIN members m ON m.id = r.member_id
	          WHERE b.id IS NULL OR m.id IS NULL
	          ORDER BY r.id`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dangling []domain.DanglingRental
	for rows.Next() {
		var d domain.DanglingRental
		if err := rows.Scan(&d.RentalID, &d.BookID, &d.MemberID, &d.MissingBook, &d.MissingMember); err != nil {
			return nil, err
		}
		dangling = append(dangling, d)
	}
	return dangling, rows.Err()
}

// mapActiveRentalViolation turns a unique violation on one of the
// active-rental indexes into the matching domain error.
func mapActiveRentalViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code.Name() != "unique_violation" {
		return err
	}
	switch pqErr.Constraint {
	case activeBookIndex:
		return fmt.Errorf("%w: %s", domain.ErrBookOnLoan, pqErr.Message)
	case activeMemberIndex:
		return fmt.Errorf("%w: %s", domain.ErrMemberHasLoan, pqErr.Message)
	default:
		return err
	}
}
