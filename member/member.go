package member

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxNameLength bounds the name column.
const MaxNameLength = 255

// Member is the cached entity. The JSON form is the cache snapshot format.
type Member struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Persisted reports whether the store has assigned an id.
func (m *Member) Persisted() bool {
	return m != nil && m.ID > 0
}

// Clone returns a copy that shares no memory with m.
func (m *Member) Clone() *Member {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// Equal compares two snapshots field by field.
func (m *Member) Equal(other *Member) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.ID == other.ID && m.Name == other.Name
}

func (m *Member) String() string {
	if m == nil {
		return "member<nil>"
	}
	return "member<" + strconv.FormatInt(m.ID, 10) + "," + m.Name + ">"
}

// Normalize trims surrounding whitespace from the name.
func (m *Member) Normalize() {
	if m == nil {
		return
	}
	m.Name = strings.TrimSpace(m.Name)
}

// ErrInvalidUTF8 rejects names the JSON cache snapshot could not carry unchanged.
var ErrInvalidUTF8 = errors.New("must be valid UTF-8")

func validUTF8(value any) error {
	s, _ := value.(string)
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}
	return nil
}

func nameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.By(validUTF8),
		validation.RuneLength(1, MaxNameLength),
	}
}

// ValidateNew checks a member about to be created. The id must be unset.
func ValidateNew(m *Member) error {
	if m == nil {
		return Invalid(ErrNilMember)
	}
	m.Normalize()
	err := validation.ValidateStruct(m,
		validation.Field(&m.ID, validation.In(int64(0)).Error("must not be set on join")),
		validation.Field(&m.Name, nameRules()...),
	)
	if err != nil {
		return Invalid(err)
	}
	return nil
}

// ValidateChanges checks the fields an update may carry.
func ValidateChanges(m *Member) error {
	if m == nil {
		return Invalid(ErrNilMember)
	}
	m.Normalize()
	err := validation.ValidateStruct(m,
		validation.Field(&m.Name, nameRules()...),
	)
	if err != nil {
		return Invalid(err)
	}
	return nil
}

// ValidateID rejects identifiers the store can never have assigned.
func ValidateID(id int64) error {
	if err := validation.Validate(id, validation.Required, validation.Min(int64(1))); err != nil {
		return Invalid(validation.Errors{"id": err})
	}
	return nil
}
