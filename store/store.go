package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/goliatone/go-member-cache/member"
)

// Store is the durable CRUD contract the repository writes through.
type Store interface {
	// Insert persists a new member and returns it with the generated id.
	Insert(ctx context.Context, m *member.Member) (*member.Member, error)
	// FindByID returns (nil, nil) when no row has the id.
	FindByID(ctx context.Context, id int64) (*member.Member, error)
	// Update overwrites the name of an existing row.
	Update(ctx context.Context, m *member.Member) error
	// DeleteByID removes the row. A missing id is not an error.
	DeleteByID(ctx context.Context, id int64) error
}

// BunStore implements Store on a bun DB.
type BunStore struct {
	db      *bun.DB
	mapping Mapping
}

var _ Store = (*BunStore)(nil)

// NewBunStore binds db to mapping. Empty mapping fields take their defaults.
func NewBunStore(db *bun.DB, mapping Mapping) *BunStore {
	return &BunStore{
		db:      db,
		mapping: mapping.WithDefaults(),
	}
}

// DB returns the underlying bun handle.
func (s *BunStore) DB() *bun.DB {
	return s.db
}

// Mapping returns the effective table mapping.
func (s *BunStore) Mapping() Mapping {
	return s.mapping
}

func (s *BunStore) Insert(ctx context.Context, m *member.Member) (*member.Member, error) {
	if m == nil {
		return nil, member.Invalid(member.ErrNilMember)
	}

	var id int64
	err := s.db.NewRaw(
		"INSERT INTO ? (?) VALUES (?) RETURNING ?",
		bun.Ident(s.mapping.Table),
		bun.Ident(s.mapping.NameColumn),
		m.Name,
		bun.Ident(s.mapping.IDColumn),
	).Scan(ctx, &id)
	if err != nil {
		return nil, member.StoreUnavailable("insert", err)
	}

	return &member.Member{ID: id, Name: m.Name}, nil
}

func (s *BunStore) FindByID(ctx context.Context, id int64) (*member.Member, error) {
	m := &member.Member{}
	err := s.db.NewSelect().
		TableExpr("?", bun.Ident(s.mapping.Table)).
		ColumnExpr("?, ?", bun.Ident(s.mapping.IDColumn), bun.Ident(s.mapping.NameColumn)).
		Where("? = ?", bun.Ident(s.mapping.IDColumn), id).
		Limit(1).
		Scan(ctx, &m.ID, &m.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, member.StoreUnavailable("find", err)
	}
	return m, nil
}

func (s *BunStore) Update(ctx context.Context, m *member.Member) error {
	if m == nil {
		return member.Invalid(member.ErrNilMember)
	}

	res, err := s.db.NewUpdate().
		TableExpr("?", bun.Ident(s.mapping.Table)).
		Set("? = ?", bun.Ident(s.mapping.NameColumn), m.Name).
		Where("? = ?", bun.Ident(s.mapping.IDColumn), m.ID).
		Exec(ctx)
	if err != nil {
		return member.StoreUnavailable("update", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return member.StoreUnavailable("update", err)
	}
	if n == 0 {
		return member.NotFound(m.ID)
	}
	return nil
}

func (s *BunStore) DeleteByID(ctx context.Context, id int64) error {
	_, err := s.db.NewDelete().
		TableExpr("?", bun.Ident(s.mapping.Table)).
		Where("? = ?", bun.Ident(s.mapping.IDColumn), id).
		Exec(ctx)
	if err != nil {
		return member.StoreUnavailable("delete", err)
	}
	return nil
}

// CreateSchema creates the mapped table if it does not exist yet.
func (s *BunStore) CreateSchema(ctx context.Context) error {
	idType := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.db.Dialect().Name() == dialect.PG {
		idType = "BIGSERIAL PRIMARY KEY"
	}

	_, err := s.db.ExecContext(ctx,
		"CREATE TABLE IF NOT EXISTS ? (? "+idType+", ? VARCHAR(255) NOT NULL)",
		bun.Ident(s.mapping.Table),
		bun.Ident(s.mapping.IDColumn),
		bun.Ident(s.mapping.NameColumn),
	)
	if err != nil {
		return member.StoreUnavailable("create schema", err)
	}
	return nil
}

// Ping checks the connection pool.
func (s *BunStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return member.StoreUnavailable("ping", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *BunStore) Close() error {
	return s.db.Close()
}
