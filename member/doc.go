// Package member defines the Member entity shared by the cache, store,
// repository and service layers.
//
// # Entity
//
// A Member carries a store-generated integer ID and a Name. An ID of zero
// means the record has not been persisted yet; once assigned the ID never
// changes and identifies the same record in the cache and in the store.
//
//	m := &member.Member{Name: "Alice"}
//	if err := member.ValidateNew(m); err != nil {
//		return err
//	}
//
// # Errors
//
// All errors surfaced by the layers above are *goerrors.Error values from
// github.com/goliatone/go-errors. Each carries a category and a stable text
// code so callers can branch without string matching:
//
//   - NotFound: the id does not exist (CategoryNotFound, MEMBER_NOT_FOUND)
//   - StoreUnavailable: the system of record failed (STORE_UNAVAILABLE)
//   - CacheUnavailable: the cache backend failed (CACHE_UNAVAILABLE)
//   - Validation: the input was rejected before any I/O (INVALID_MEMBER)
//
// Use the Is* predicates to test for them:
//
//	if member.IsNotFound(err) {
//		// 404
//	}
//
// CacheUnavailable never reaches service callers; the repository suppresses
// it and falls back to the store.
package member
