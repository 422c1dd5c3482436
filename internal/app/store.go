package app

import (
	"context"
	"database/sql"
	"fmt"

	"library-backend/internal/config"
	"library-backend/internal/logger"
	"library-backend/internal/repository"
	"library-backend/internal/repository/memory"
	"library-backend/internal/repository/postgres"
)

// Store is the set of repositories a binary works against, whichever driver backs them.
type Store struct {
	repository.BookRepository
	repository.MemberRepository
	repository.RentalRepository
	repository.Transactor

	close func() error
	ping  func(ctx context.Context) error
}

// Ping reports whether the backing database is reachable. The memory driver is always up.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStore connects the configured driver. For postgres it pings the
// database and applies migrations when auto_migrate is set.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory store; data is lost on exit")
		ms := memory.NewStore()
		return &Store{
			BookRepository:   ms.BookRepository,
			MemberRepository: ms.MemberRepository,
			RentalRepository: ms.RentalRepository,
			Transactor:       ms.Transactor,
		}, nil
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config) (*Store, error) {
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return newPostgresStore(db), nil
}

func newPostgresStore(db *sql.DB) *Store {
	ps := postgres.NewStore(db)
	return &Store{
		BookRepository:   ps.BookRepository,
		MemberRepository: ps.MemberRepository,
		RentalRepository: ps.RentalRepository,
		Transactor:       ps.Transactor,
		close:            ps.DB().Close,
		ping:             ps.DB().PingContext,
	}
}
