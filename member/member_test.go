package member

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateNew(t *testing.T) {
	tests := []struct {
		name    string
		member  *Member
		wantErr bool
	}{
		{name: "valid", member: &Member{Name: "Alice"}},
		{name: "trims name", member: &Member{Name: "  Bob  "}},
		{name: "nil member", member: nil, wantErr: true},
		{name: "empty name", member: &Member{Name: ""}, wantErr: true},
		{name: "blank name", member: &Member{Name: "   "}, wantErr: true},
		{name: "id already set", member: &Member{ID: 7, Name: "Carol"}, wantErr: true},
		{name: "name too long", member: &Member{Name: strings.Repeat("x", MaxNameLength+1)}, wantErr: true},
		{name: "invalid utf8 name", member: &Member{Name: "Al\xffce"}, wantErr: true},
		{name: "multibyte name", member: &Member{Name: "Zoë"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNew(tt.member)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error but got none")
				}
				if !IsInvalid(err) {
					t.Errorf("expected INVALID_MEMBER code, got %q (%v)", Code(err), err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error but got: %v", err)
			}
		})
	}
}

func TestValidateNew_NormalizesName(t *testing.T) {
	m := &Member{Name: "  Bob  "}
	if err := ValidateNew(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "Bob" {
		t.Errorf("expected trimmed name 'Bob', got %q", m.Name)
	}
}

func TestValidateChanges_AllowsPersistedID(t *testing.T) {
	if err := ValidateChanges(&Member{ID: 3, Name: "Dana"}); err != nil {
		t.Fatalf("expected no error for update payload with id, got: %v", err)
	}
	if err := ValidateChanges(&Member{ID: 3}); !IsInvalid(err) {
		t.Fatalf("expected validation error for empty name, got: %v", err)
	}
	if err := ValidateChanges(&Member{ID: 3, Name: "Da\xc3na"}); !IsInvalid(err) {
		t.Fatalf("expected invalid utf8 error, got: %v", err)
	}
}

func TestValidateID(t *testing.T) {
	for _, id := range []int64{0, -1} {
		if err := ValidateID(id); !IsInvalid(err) {
			t.Errorf("ValidateID(%d) expected validation error, got %v", id, err)
		}
	}
	if err := ValidateID(1); err != nil {
		t.Errorf("ValidateID(1) unexpected error: %v", err)
	}
}

func TestMember_CloneAndEqual(t *testing.T) {
	m := &Member{ID: 1, Name: "Alice"}
	c := m.Clone()
	if c == m {
		t.Fatal("Clone returned the same pointer")
	}
	if !m.Equal(c) {
		t.Errorf("expected clone to equal original: %v vs %v", m, c)
	}
	c.Name = "Eve"
	if m.Equal(c) {
		t.Error("mutating the clone changed equality with the original")
	}

	var nilMember *Member
	if nilMember.Clone() != nil {
		t.Error("expected nil clone of nil member")
	}
	if !nilMember.Equal(nil) {
		t.Error("expected nil members to be equal")
	}
	if m.Persisted() == false || (&Member{}).Persisted() {
		t.Error("Persisted() should follow the id")
	}
}

func TestErrorPredicates(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name  string
		err   error
		check func(error) bool
		code  string
	}{
		{name: "not found", err: NotFound(42), check: IsNotFound, code: CodeNotFound},
		{name: "store", err: StoreUnavailable("insert", cause), check: IsStoreUnavailable, code: CodeStoreUnavailable},
		{name: "cache", err: CacheUnavailable("get", cause), check: IsCacheUnavailable, code: CodeCacheUnavailable},
		{name: "invalid", err: Invalid(cause), check: IsInvalid, code: CodeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("predicate returned false for %v", tt.err)
			}
			if got := Code(tt.err); got != tt.code {
				t.Errorf("Code() = %q, want %q", got, tt.code)
			}
		})
	}

	if IsNotFound(cause) || IsNotFound(nil) {
		t.Error("foreign and nil errors must not match")
	}
	if StoreUnavailable("x", nil) != nil || CacheUnavailable("x", nil) != nil {
		t.Error("wrapping nil must return nil")
	}
}

func TestStoreUnavailable_KeepsCategorisedErrors(t *testing.T) {
	err := StoreUnavailable("update", NotFound(9))
	if !IsNotFound(err) {
		t.Errorf("expected not found to pass through unchanged, got %q", Code(err))
	}
}

func TestStoreUnavailable_UnwrapsToCause(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := StoreUnavailable("insert", cause)
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped error to unwrap to cause")
	}
}
