// Package repositorycache implements the cache-aside repository for members.
//
// Repository sits between the service layer and two collaborators: a durable
// store.Store (the system of record) and a MemberCache. Application code, not
// the cache, keeps the two in step:
//
//   - Save writes the store first, then puts the persisted record in the
//     cache. A store failure leaves the cache untouched.
//   - FindOne serves cache hits without touching the store. On a miss it
//     reads the store and, when the row exists, populates the cache.
//     Absence is never cached.
//   - Remove deletes from the store and then always invalidates the cache
//     entry, even when the delete failed.
//
// # Basic Usage
//
//	repo := repositorycache.New(bunStore, memberCache,
//		repositorycache.WithTTL(30*time.Minute),
//		repositorycache.WithLogger(logger),
//	)
//
//	saved, err := repo.Save(ctx, &member.Member{Name: "Alice"})
//	found, err := repo.FindOne(ctx, saved.ID)
//
// # Cache Failures
//
// The cache is an optimisation. Cache errors are logged at warn level,
// counted through Metrics and otherwise ignored; reads fall back to the
// store. Store errors are always returned to the caller.
//
// # Consistency
//
// Concurrent writers may leave a stale entry until its TTL runs out. The
// repository takes no locks across the store and cache calls.
package repositorycache
