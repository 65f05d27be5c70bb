package config

import (
	"testing"
	"time"

	"github.com/goliatone/go-member-cache/cache"
	"github.com/goliatone/go-member-cache/store"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("unexpected log defaults %+v", cfg.Log)
	}
	if cfg.Cache.Backend != cache.BackendMemory || cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("unexpected cache defaults %+v", cfg.Cache)
	}
	if cfg.DB.Driver != store.DriverSQLite || !cfg.DB.CreateSchema {
		t.Errorf("unexpected db defaults %+v", cfg.DB)
	}
	if cfg.Mapping() != store.DefaultMapping() {
		t.Errorf("unexpected mapping %+v", cfg.Mapping())
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"MEMBERCACHE_HTTP_ADDR":        ":9090",
		"MEMBERCACHE_CACHE_BACKEND":    "tiered",
		"MEMBERCACHE_CACHE_TTL":        "5m",
		"MEMBERCACHE_L1_TTL":           "2s",
		"MEMBERCACHE_REDIS_HOST":       "cache.internal",
		"MEMBERCACHE_REDIS_PORT":       "6380",
		"MEMBERCACHE_REDIS_KEY_PREFIX": "mc:",
		"MEMBERCACHE_DB_DRIVER":        "postgres",
		"MEMBERCACHE_DB_DSN":           "postgres://localhost/members?sslmode=disable",
		"MEMBERCACHE_DB_TABLE":         "users",
		"MEMBERCACHE_DB_ID_COLUMN":     "user_id",
		"MEMBERCACHE_LOG_FORMAT":       "json",
	})
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	cc := cfg.CacheConfig()
	if cc.Backend != cache.BackendTiered || cc.TTL != 5*time.Minute || cc.L1TTL != 2*time.Second {
		t.Errorf("unexpected cache config %+v", cc)
	}
	if cc.Redis.Host != "cache.internal" || cc.Redis.Port != 6380 || cc.Redis.KeyPrefix != "mc:" {
		t.Errorf("unexpected redis config %+v", cc.Redis)
	}
	if cfg.HTTPAddr != ":9090" || cfg.DB.Driver != store.DriverPostgres {
		t.Errorf("unexpected overrides %+v", cfg)
	}
	m := cfg.Mapping()
	if m.Table != "users" || m.IDColumn != "user_id" || m.NameColumn != "name" {
		t.Errorf("unexpected mapping %+v", m)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{name: "bad backend", vars: map[string]string{"MEMBERCACHE_CACHE_BACKEND": "memcached"}},
		{name: "zero ttl", vars: map[string]string{"MEMBERCACHE_CACHE_TTL": "0s"}},
		{name: "bad duration", vars: map[string]string{"MEMBERCACHE_CACHE_TTL": "soon"}},
		{name: "bad driver", vars: map[string]string{"MEMBERCACHE_DB_DRIVER": "mysql"}},
		{name: "bad log format", vars: map[string]string{"MEMBERCACHE_LOG_FORMAT": "xml"}},
		{name: "same columns", vars: map[string]string{"MEMBERCACHE_DB_NAME_COLUMN": "member_id"}},
		{name: "bad redis port", vars: map[string]string{"MEMBERCACHE_CACHE_BACKEND": "redis", "MEMBERCACHE_REDIS_PORT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFrom(tt.vars); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
