package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"library-backend/internal/domain"
	"library-backend/internal/repository"
)

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	query := `INSERT INTO books (title, writer, created_at) VALUES ($1, $2, $3) RETURNING id`
	return conn(ctx, r.db).QueryRowContext(ctx, query, b.Title, b.Writer, b.CreatedAt).Scan(&b.ID)
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	b := &domain.Book{}
	query := `SELECT id, title, writer, created_at FROM books WHERE id = $1`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Title, &b.Writer, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *bookRepository) ListOrderByCreatedAt(ctx context.Context) ([]domain.Book, error) {
	query := `SELECT id, title, writer, created_at FROM books ORDER BY created_at ASC, id ASC`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Writer, &b.CreatedAt); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
