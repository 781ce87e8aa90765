//go:build unit

package commands_test

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cabinet-keeper/internal/domain/bookmark"
	"cabinet-keeper/internal/domain/cabinet"
	"cabinet-keeper/internal/infra"
	"cabinet-keeper/internal/infra/db"
	"cabinet-keeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func repoErr(kind infra.RepositoryErrorKind, msg string) error {
	return infra.WrapRepoErr(slog.New(slog.DiscardHandler), kind, msg, nil)
}

// duplicateKeyErr mirrors what the pgx-backed repositories return when an
// insert trips a unique index: the kind plus the pg error naming the
// constraint.
func duplicateKeyErr(constraint string) error {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: constraint}
	return infra.WrapRepoErr(slog.New(slog.DiscardHandler), infra.KindDuplicateKey, "duplicate key", pgErr)
}

type bookmarkRow struct {
	UserID    uuid.UUID
	CabinetID int64
	Status    bookmark.Status
}

// fakeStore backs the in-memory unit of work. Repository errors carry the
// same kinds the pgx-backed repositories produce, so the commands exercise
// their real error mapping.
type fakeStore struct {
	mu        sync.Mutex
	cabinets  map[int64]shared.CabinetSnapshot
	users     map[uuid.UUID]shared.UserSnapshot
	rentals   map[uuid.UUID]shared.RentalSnapshot
	bookmarks []bookmarkRow

	rowLocked map[int64]bool
	upsertErr error

	// staleOpenCheck makes FindOpenByUser report nothing open, the way a
	// READ COMMITTED snapshot can lag a concurrent commit. The unique
	// indexes in CreateOpen still fire.
	staleOpenCheck bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cabinets:  map[int64]shared.CabinetSnapshot{},
		users:     map[uuid.UUID]shared.UserSnapshot{},
		rentals:   map[uuid.UUID]shared.RentalSnapshot{},
		rowLocked: map[int64]bool{},
	}
}

func (s *fakeStore) addCabinet(id int64, status cabinet.Status, holderID *uuid.UUID, reason *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.cabinets[id] = shared.CabinetSnapshot{
		ID:        id,
		Status:    status,
		HolderID:  holderID,
		Payable:   true,
		Reason:    reason,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *fakeStore) addUser(id uuid.UUID, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = shared.UserSnapshot{ID: id, Email: id.String() + "@example.com", IsActive: active}
}

func (s *fakeStore) addOpenRental(userID uuid.UUID, cabinetID int64, expiresAt time.Time) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.rentals[id] = shared.RentalSnapshot{
		ID:        id,
		UserID:    userID,
		CabinetID: cabinetID,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	return id
}

func (s *fakeStore) cabinet(id int64) shared.CabinetSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cabinets[id]
}

func (s *fakeStore) openRentalCount(cabinetID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, r := range s.rentals {
		if r.CabinetID == cabinetID && r.EndedAt == nil {
			count++
		}
	}
	return count
}

func (s *fakeStore) openRentalByCabinet(cabinetID int64) *shared.RentalSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rentals {
		if r.CabinetID == cabinetID && r.EndedAt == nil {
			copied := r
			return &copied
		}
	}
	return nil
}

func (s *fakeStore) bookmarkRows() []bookmarkRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bookmarkRow(nil), s.bookmarks...)
}

// fakeUoW satisfies shared.UnitOfWork without a database. Within is not
// transactional: partial writes stay applied on error, which no assertion in
// this package depends on.
type fakeUoW struct {
	store *fakeStore
}

func newFakeUoW(store *fakeStore) *fakeUoW {
	return &fakeUoW{store: store}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) Reads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Cabinets() shared.CabinetRepository      { return &fakeCabinetRepo{store: t.store} }
func (t *fakeTx) Rentals() shared.RentalHistoryRepository { return &fakeRentalRepo{store: t.store} }
func (t *fakeTx) Bookmarks() shared.BookmarkRepository    { return &fakeBookmarkRepo{store: t.store} }
func (t *fakeTx) Users() shared.UserRepository            { return &fakeUserRepo{store: t.store} }
func (t *fakeTx) DB() db.DBTX                             { return nil }

type fakeCabinetRepo struct {
	store *fakeStore
}

func (r *fakeCabinetRepo) FindByID(_ context.Context, _ db.DBTX, id int64) (*shared.CabinetSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap, ok := r.store.cabinets[id]
	if !ok {
		return nil, repoErr(infra.KindNotFound, "cabinet not found")
	}
	copied := snap
	return &copied, nil
}

func (r *fakeCabinetRepo) FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id int64) (*shared.CabinetSnapshot, error) {
	r.store.mu.Lock()
	locked := r.store.rowLocked[id]
	r.store.mu.Unlock()
	if locked {
		return nil, repoErr(infra.KindRowLocked, "cabinet row is locked")
	}
	return r.FindByID(ctx, dbtx, id)
}

func (r *fakeCabinetRepo) UpdateState(_ context.Context, _ db.DBTX, id int64, status cabinet.Status, holderID *uuid.UUID, reason *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap, ok := r.store.cabinets[id]
	if !ok {
		return repoErr(infra.KindNotFound, "cabinet not found")
	}
	snap.Status = status
	snap.HolderID = holderID
	snap.Reason = reason
	snap.UpdatedAt = time.Now()
	r.store.cabinets[id] = snap
	return nil
}

type fakeRentalRepo struct {
	store *fakeStore
}

func (r *fakeRentalRepo) CreateOpen(_ context.Context, _ db.DBTX, userID uuid.UUID, cabinetID int64, expiresAt time.Time) (uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, rental := range r.store.rentals {
		if rental.CabinetID == cabinetID && rental.EndedAt == nil {
			return uuid.Nil, duplicateKeyErr(infra.ConstraintOpenRentalPerCabinet)
		}
	}
	for _, rental := range r.store.rentals {
		if rental.UserID == userID && rental.EndedAt == nil {
			return uuid.Nil, duplicateKeyErr(infra.ConstraintOpenRentalPerUser)
		}
	}
	id := uuid.New()
	r.store.rentals[id] = shared.RentalSnapshot{
		ID:        id,
		UserID:    userID,
		CabinetID: cabinetID,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	return id, nil
}

func (r *fakeRentalRepo) CloseOpenByCabinet(_ context.Context, _ db.DBTX, cabinetID int64, endedAt time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, rental := range r.store.rentals {
		if rental.CabinetID == cabinetID && rental.EndedAt == nil {
			ended := endedAt
			rental.EndedAt = &ended
			r.store.rentals[id] = rental
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRentalRepo) FindOpenByUser(_ context.Context, _ db.DBTX, userID uuid.UUID) (*shared.RentalSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.staleOpenCheck {
		return nil, repoErr(infra.KindNotFound, "no open rental for user")
	}
	for _, rental := range r.store.rentals {
		if rental.UserID == userID && rental.EndedAt == nil {
			copied := rental
			return &copied, nil
		}
	}
	return nil, repoErr(infra.KindNotFound, "no open rental for user")
}

func (r *fakeRentalRepo) ListExpiredOpen(_ context.Context, _ db.DBTX, asOf time.Time) ([]*shared.RentalSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*shared.RentalSnapshot
	for _, rental := range r.store.rentals {
		if rental.EndedAt == nil && rental.ExpiresAt.Before(asOf) {
			copied := rental
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeBookmarkRepo struct {
	store *fakeStore
}

func (r *fakeBookmarkRepo) Upsert(_ context.Context, _ db.DBTX, userID uuid.UUID, cabinetID int64, status bookmark.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.upsertErr != nil {
		return r.store.upsertErr
	}
	for i, row := range r.store.bookmarks {
		if row.UserID == userID && row.CabinetID == cabinetID {
			r.store.bookmarks[i].Status = status
			return nil
		}
	}
	r.store.bookmarks = append(r.store.bookmarks, bookmarkRow{UserID: userID, CabinetID: cabinetID, Status: status})
	return nil
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*shared.UserSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, repoErr(infra.KindNotFound, "user not found")
	}
	copied := user
	return &copied, nil
}

type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) CabinetByID(ctx context.Context, id int64) (*shared.CabinetSnapshot, error) {
	return (&fakeCabinetRepo{store: r.store}).FindByID(ctx, nil, id)
}

func (r *fakeReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	return (&fakeUserRepo{store: r.store}).FindByID(ctx, nil, id)
}

func (r *fakeReads) OpenRentalByUser(ctx context.Context, userID uuid.UUID) (*shared.RentalSnapshot, error) {
	return (&fakeRentalRepo{store: r.store}).FindOpenByUser(ctx, nil, userID)
}

func (r *fakeReads) ExpiredOpenRentals(ctx context.Context, asOf time.Time) ([]*shared.RentalSnapshot, error) {
	return (&fakeRentalRepo{store: r.store}).ListExpiredOpen(ctx, nil, asOf)
}

type dispatchCall struct {
	TaskID    string
	CabinetID int64
	UserID    uuid.UUID
}

// fakeDispatcher records dispatches and optionally hands them to run, which
// stands in for an execution path.
type fakeDispatcher struct {
	name string
	err  error
	run  func(taskID string, cabinetID int64, userID uuid.UUID)

	mu    sync.Mutex
	calls []dispatchCall
}

func (d *fakeDispatcher) Name() string { return d.name }

func (d *fakeDispatcher) DispatchRent(_ context.Context, taskID string, cabinetID int64, userID uuid.UUID) error {
	if d.err != nil {
		return d.err
	}
	d.mu.Lock()
	d.calls = append(d.calls, dispatchCall{TaskID: taskID, CabinetID: cabinetID, UserID: userID})
	d.mu.Unlock()
	if d.run != nil {
		d.run(taskID, cabinetID, userID)
	}
	return nil
}

func (d *fakeDispatcher) dispatched() []dispatchCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]dispatchCall(nil), d.calls...)
}

type notifyCall struct {
	CabinetID int64
	UserID    uuid.UUID
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (n *fakeNotifier) CabinetReturned(_ context.Context, cabinetID int64, userID uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{CabinetID: cabinetID, UserID: userID})
}

func (n *fakeNotifier) notified() []notifyCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifyCall(nil), n.calls...)
}
