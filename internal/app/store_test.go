package app

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/config"
	"library-backend/internal/domain"
)

func TestOpenStore_Memory(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: config.DriverMemory}}

	store, err := OpenStore(ctx, cfg)
	require.NoError(t, err)
	defer store.Close()

	book := &domain.Book{Title: "Dune", Writer: "Herbert"}
	require.NoError(t, store.BookRepository.Create(ctx, book))
	exists, err := store.BookRepository.ExistsByID(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.Config{Database: config.DatabaseConfig{Driver: "sqlite"}})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestStore_PingMemory(t *testing.T) {
	store, err := OpenStore(context.Background(), &config.Config{Database: config.DatabaseConfig{Driver: config.DriverMemory}})
	require.NoError(t, err)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestStore_PingUsesDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	store := newPostgresStore(db)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.ErrorContains(t, store.Ping(context.Background()), "connection refused")

	mock.ExpectClose()
	require.NoError(t, store.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
