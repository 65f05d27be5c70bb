package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-member-cache/member"
)

func TestLoadFixtureJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "member.json")
	if err := os.WriteFile(path, []byte(`{"id":3,"name":"Carol"}`), 0644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	var m member.Member
	LoadFixtureJSON(t, path, &m)
	if m.ID != 3 || m.Name != "Carol" {
		t.Errorf("unexpected fixture contents %+v", m)
	}
}

func TestCompareWithGolden_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden", "out.json")

	CompareWithGolden(t, path, []byte("first"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected golden file to be created: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("unexpected golden contents %q", data)
	}

	CompareWithGolden(t, path, []byte("first"))
}

func TestPaths(t *testing.T) {
	if got := FixturePath("a.json"); got != filepath.Join("testdata", "a.json") {
		t.Errorf("FixturePath() = %q", got)
	}
	if got := GoldenPath("b.json"); got != filepath.Join("testdata", "golden", "b.json") {
		t.Errorf("GoldenPath() = %q", got)
	}
}

func TestRecordingStore(t *testing.T) {
	ctx := context.Background()
	s := NewRecordingStore(OpenSQLite(t))

	saved, err := s.Insert(ctx, &member.Member{Name: "Alice"})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if _, err := s.FindByID(ctx, saved.ID); err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if s.Calls("Insert") != 1 || s.Calls("FindByID") != 1 {
		t.Errorf("unexpected call counts insert=%d find=%d", s.Calls("Insert"), s.Calls("FindByID"))
	}

	s.FailOn("FindByID")
	if _, err := s.FindByID(ctx, saved.ID); !member.IsStoreUnavailable(err) {
		t.Errorf("expected injected STORE_UNAVAILABLE, got %v", err)
	}

	s.Recover()
	s.Reset()
	if _, err := s.FindByID(ctx, saved.ID); err != nil {
		t.Errorf("expected recovery, got %v", err)
	}
	if s.Calls("FindByID") != 1 {
		t.Errorf("expected counters to reset, got %d", s.Calls("FindByID"))
	}
}

func TestCacheKit(t *testing.T) {
	ctx := context.Background()
	kit := NewCacheKit(t, time.Minute)

	_ = kit.Members.Put(ctx, &member.Member{ID: 1, Name: "Alice"}, 0)
	if got, _ := kit.Members.Get(ctx, 1); got == nil {
		t.Fatal("expected hit")
	}

	kit.Backend.SetDown(true)
	if _, err := kit.Members.Get(ctx, 1); !member.IsCacheUnavailable(err) {
		t.Errorf("expected CACHE_UNAVAILABLE while down, got %v", err)
	}
	kit.Backend.SetDown(false)

	kit.Clock.Advance(time.Minute)
	if got, _ := kit.Members.Get(ctx, 1); got != nil {
		t.Errorf("expected expiry after a minute, got %v", got)
	}
}
