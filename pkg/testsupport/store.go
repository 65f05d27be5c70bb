package testsupport

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-member-cache/member"
	"github.com/goliatone/go-member-cache/store"
)

// ErrInjected is the cause wrapped by injected store and cache failures.
var ErrInjected = errors.New("injected failure")

// OpenSQLite returns a BunStore on a private in-memory database with the
// default schema created. The database is closed when the test ends.
func OpenSQLite(t testing.TB) *store.BunStore {
	t.Helper()

	db, err := store.Open(store.DriverSQLite, "file::memory:", false)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := store.NewBunStore(db, store.DefaultMapping())
	if err := s.CreateSchema(context.Background()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return s
}

// RecordingStore wraps a store.Store, counts calls per method and can be told
// to fail. Injected failures are StoreUnavailable errors.
type RecordingStore struct {
	base store.Store

	mu     sync.Mutex
	calls  map[string]int
	failOn map[string]bool
}

var _ store.Store = (*RecordingStore)(nil)

// NewRecordingStore wraps base.
func NewRecordingStore(base store.Store) *RecordingStore {
	return &RecordingStore{
		base:   base,
		calls:  make(map[string]int),
		failOn: make(map[string]bool),
	}
}

// FailOn makes the named methods fail until Recover is called.
func (s *RecordingStore) FailOn(methods ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range methods {
		s.failOn[m] = true
	}
}

// Recover clears every injected failure.
func (s *RecordingStore) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn = make(map[string]bool)
}

// Calls returns how many times method was invoked.
func (s *RecordingStore) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// Reset zeroes the call counters.
func (s *RecordingStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = make(map[string]int)
}

func (s *RecordingStore) track(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[method]++
	if s.failOn[method] {
		return member.StoreUnavailable(method, ErrInjected)
	}
	return nil
}

func (s *RecordingStore) Insert(ctx context.Context, m *member.Member) (*member.Member, error) {
	if err := s.track("Insert"); err != nil {
		return nil, err
	}
	return s.base.Insert(ctx, m)
}

func (s *RecordingStore) FindByID(ctx context.Context, id int64) (*member.Member, error) {
	if err := s.track("FindByID"); err != nil {
		return nil, err
	}
	return s.base.FindByID(ctx, id)
}

func (s *RecordingStore) Update(ctx context.Context, m *member.Member) error {
	if err := s.track("Update"); err != nil {
		return err
	}
	return s.base.Update(ctx, m)
}

func (s *RecordingStore) DeleteByID(ctx context.Context, id int64) error {
	if err := s.track("DeleteByID"); err != nil {
		return err
	}
	return s.base.DeleteByID(ctx, id)
}
