package store

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Default identifiers used by DefaultMapping.
const (
	DefaultTable      = "member"
	DefaultIDColumn   = "member_id"
	DefaultNameColumn = "name"
)

// Mapping names the table and columns a member is persisted to.
type Mapping struct {
	Table      string
	IDColumn   string
	NameColumn string
}

// DefaultMapping returns the member(member_id, name) layout.
func DefaultMapping() Mapping {
	return Mapping{
		Table:      DefaultTable,
		IDColumn:   DefaultIDColumn,
		NameColumn: DefaultNameColumn,
	}
}

// WithDefaults fills empty fields from DefaultMapping.
func (m Mapping) WithDefaults() Mapping {
	d := DefaultMapping()
	if m.Table == "" {
		m.Table = d.Table
	}
	if m.IDColumn == "" {
		m.IDColumn = d.IDColumn
	}
	if m.NameColumn == "" {
		m.NameColumn = d.NameColumn
	}
	return m
}

// Validate rejects mappings with missing identifiers or an id column that
// doubles as the name column.
func (m Mapping) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Table, validation.Required),
		validation.Field(&m.IDColumn, validation.Required),
		validation.Field(&m.NameColumn, validation.Required, validation.NotIn(m.IDColumn).Error("must differ from the id column")),
	)
}
