// Package store is the system of record for members.
//
// BunStore runs plain CRUD against a single table through bun. The table and
// column names come from a Mapping passed to the constructor, so the same code
// serves the default schema and legacy tables with other names:
//
//	db, err := store.Open(store.DriverSQLite, "file:members.db", false)
//	if err != nil {
//		return err
//	}
//	s := store.NewBunStore(db, store.DefaultMapping())
//	if err := s.CreateSchema(ctx); err != nil {
//		return err
//	}
//	m, err := s.Insert(ctx, &member.Member{Name: "Alice"})
//
// Every driver failure comes back as a member.StoreUnavailable error. Update
// of a missing row is member.NotFound; FindByID of a missing row is (nil, nil)
// and DeleteByID of a missing row succeeds.
package store
