// Package memory is a process-local store used for local runs and tests.
// Writes are visible immediately; WithTx gives isolation by serialising
// transactions, not by rollback.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"library-backend/internal/domain"
	"library-backend/internal/repository"
)

type Store struct {
	repository.BookRepository
	repository.MemberRepository
	repository.RentalRepository
	repository.Transactor
}

func NewStore() *Store {
	s := &state{
		books:   make(map[int64]domain.Book),
		members: make(map[int64]domain.Member),
		rentals: make(map[int64]domain.Rental),
	}
	return &Store{
		BookRepository:   &bookRepository{s: s},
		MemberRepository: &memberRepository{s: s},
		RentalRepository: &rentalRepository{s: s},
		Transactor:       &transactor{s: s},
	}
}

type state struct {
	// txMu is held for the duration of a transaction, mu for a single access.
	txMu sync.Mutex
	mu   sync.RWMutex

	books   map[int64]domain.Book
	members map[int64]domain.Member
	rentals map[int64]domain.Rental

	lastBookID, lastMemberID, lastRentalID int64
}

type txKey struct{}

type transactor struct {
	s *state
}

func (t *transactor) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

type bookRepository struct {
	s *state
}

func (r *bookRepository) Create(_ context.Context, b *domain.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	r.s.lastBookID++
	b.ID = r.s.lastBookID
	r.s.books[b.ID] = *b
	return nil
}

func (r *bookRepository) GetByID(_ context.Context, id int64) (*domain.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.books[id]
	if !ok {
		return nil, fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
	}
	return &b, nil
}

func (r *bookRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.books[id]
	return ok, nil
}

func (r *bookRepository) ListOrderByCreatedAt(_ context.Context) ([]domain.Book, error) {
	r.s.mu.RLock()
	books := make([]domain.Book, 0, len(r.s.books))
	for _, b := range r.s.books {
		books = append(books, b)
	}
	r.s.mu.RUnlock()

	sort.Slice(books, func(i, j int) bool {
		if books[i].CreatedAt.Equal(books[j].CreatedAt) {
			return books[i].ID < books[j].ID
		}
		return books[i].CreatedAt.Before(books[j].CreatedAt)
	})
	return books, nil
}

type memberRepository struct {
	s *state
}

func (r *memberRepository) Create(_ context.Context, m *domain.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lastMemberID++
	m.ID = r.s.lastMemberID
	r.s.members[m.ID] = *m
	return nil
}

func (r *memberRepository) GetByID(_ context.Context, id int64) (*domain.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.members[id]
	if !ok {
		return nil, fmt.Errorf("member %d: %w", id, domain.ErrNotFound)
	}
	return &m, nil
}

func (r *memberRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.members[id]
	return ok, nil
}

type rentalRepository struct {
	s *state
}

// Create enforces the same one-active-rental guard as the postgres indexes.
func (r *rentalRepository) Create(_ context.Context, rt *domain.Rental) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if rt.IsActive() {
		if err := r.checkActiveLocked(rt.ID, rt.BookID, rt.MemberID); err != nil {
			return err
		}
	}
	r.s.lastRentalID++
	rt.ID = r.s.lastRentalID
	r.s.rentals[rt.ID] = *rt
	return nil
}

func (r *rentalRepository) GetByID(_ context.Context, id int64) (*domain.Rental, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rt, ok := r.s.rentals[id]
	if !ok {
		return nil, fmt.Errorf("rental %d: %w", id, domain.ErrNotFound)
	}
	return &rt, nil
}

func (r *rentalRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.rentals[id]
	return ok, nil
}

func (r *rentalRepository) Update(_ context.Context, rt *domain.Rental) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rentals[rt.ID]; !ok {
		return fmt.Errorf("rental %d: %w", rt.ID, domain.ErrNotFound)
	}
	if rt.IsActive() {
		if err := r.checkActiveLocked(rt.ID, rt.BookID, rt.MemberID); err != nil {
			return err
		}
	}
	r.s.rentals[rt.ID] = *rt
	return nil
}

func (r *rentalRepository) ExistsActiveByBookID(_ context.Context, bookID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rt := range r.s.rentals {
		if rt.BookID == bookID && rt.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (r *rentalRepository) ListByMemberID(_ context.Context, memberID int64) ([]domain.Rental, error) {
	return r.filter(func(rt domain.Rental) bool { return rt.MemberID == memberID }), nil
}

func (r *rentalRepository) ListBookIDsByMemberID(ctx context.Context, memberID int64) ([]int64, error) {
	rentals, _ := r.ListByMemberID(ctx, memberID)
	ids := make([]int64, len(rentals))
	for i, rt := range rentals {
		ids[i] = rt.BookID
	}
	return ids, nil
}

func (r *rentalRepository) ListDangling(_ context.Context) ([]domain.DanglingRental, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var dangling []domain.DanglingRental
	for _, rt := range r.s.rentals {
		_, hasBook := r.s.books[rt.BookID]
		_, hasMember := r.s.members[rt.MemberID]
		if hasBook && hasMember {
			continue
		}
		dangling = append(dangling, domain.DanglingRental{
			RentalID:      rt.ID,
			BookID:        rt.BookID,
			MemberID:      rt.MemberID,
			MissingBook:   !hasBook,
			MissingMember: !hasMember,
		})
	}
	slices.SortFunc(dangling, func(a, b domain.DanglingRental) int { return int(a.RentalID - b.RentalID) })
	return dangling, nil
}

func (r *rentalRepository) filter(keep func(domain.Rental) bool) []domain.Rental {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Rental
	for _, rt := range r.s.rentals {
		if keep(rt) {
			out = append(out, rt)
		}
	}
	slices.SortFunc(out, func(a, b domain.Rental) int { return int(a.ID - b.ID) })
	return out
}

func (r *rentalRepository) checkActiveLocked(selfID, bookID, memberID int64) error {
	for id, rt := range r.s.rentals {
		if id == selfID || !rt.IsActive() {
			continue
		}
		if rt.BookID == bookID {
			return fmt.Errorf("%w: book %d", domain.ErrBookOnLoan, bookID)
		}
		if rt.MemberID == memberID {
			return fmt.Errorf("%w: member %d", domain.ErrMemberHasLoan, memberID)
		}
	}
	return nil
}
