package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"library-backend/internal/domain"
	"library-backend/internal/repository"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (name, phone_number) VALUES ($1, $2) RETURNING id`
	return conn(ctx, r.db).QueryRowContext(ctx, query, m.Name, m.PhoneNumber).Scan(&m.ID)
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	m := &domain.Member{}
	query := `SELECT id, name, phone_number FROM members WHERE id = $1`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.PhoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}
