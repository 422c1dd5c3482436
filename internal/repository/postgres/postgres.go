package postgres

import (
	"database/sql"

	"library-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookRepository
	repository.MemberRepository
	repository.RentalRepository
	repository.Transactor
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		BookRepository:   NewBookRepository(db),
		MemberRepository: NewMemberRepository(db),
		RentalRepository: NewRentalRepository(db),
		Transactor:       NewTransactor(db),
	}
}

// DB exposes the underlying pool for health checks and shutdown
func (s *Store) DB() *sql.DB {
	return s.db
}
