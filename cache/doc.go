// Package cache provides the cache contract, key serialization and the typed
// member cache used by the repository layer.
//
// # Overview
//
// This package exports:
//
//   - Cache: a byte-level key/value contract with per-entry TTL
//   - KeySerializer: builds stable keys such as "member::42"
//   - MemberCache: JSON snapshots of members keyed by id
//   - NewCache: builds the backend selected by Config.Backend
//
// # Backends
//
// Three backends are available, all implemented in internal/cacheinfra:
//
//   - memory: an in-process sharded sturdyc client
//   - redis: a go-redis client; entries expire through SET ... EX
//   - tiered: memory in front of redis, with Pub/Sub invalidation so peer
//     processes drop their in-process copy when a key changes
//
// # Basic Usage
//
//	backend, err := cache.NewCache(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	members := cache.NewMemberCache(backend, cache.NewDefaultKeySerializer(), "member", 30*time.Minute)
//
//	if err := members.Put(ctx, &member.Member{ID: 1, Name: "Alice"}, 0); err != nil {
//		// the cache is an optimisation: log and carry on
//	}
//	m, err := members.Get(ctx, 1) // nil on a miss
//
// # Null Values
//
// Absence is never stored. MemberCache.Put skips nil members and a miss is
// reported as a nil member with a nil error.
//
// # Error Handling
//
// MemberCache wraps backend failures as member.CacheUnavailable. Callers are
// expected to treat them as misses; the store stays the system of record.
// A snapshot that no longer decodes is dropped and reported as a miss.
package cache
