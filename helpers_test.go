package goCred

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

// testConfig keeps Argon2 parameters at the validation floor so tests stay fast.
func testConfig() Config {
	cfg := defaultConfig()
	cfg.Password.Memory = 8192
	cfg.Password.Iterations = 1
	cfg.Password.Parallelism = 1
	cfg.Password.KeyLength = 16
	return cfg
}

func buildTestEngine(t *testing.T, cfg Config, sink AuditSink) (*Engine, func()) {
	t.Helper()

	mr, rdb := newTestRedis(t)
	builder := New().
		WithConfig(cfg).
		WithRedis(rdb)
	if sink != nil {
		builder = builder.WithAuditSink(sink)
	}

	engine, err := builder.Build()
	if err != nil {
		mr.Close()
		t.Fatalf("Build failed: %v", err)
	}

	return engine, func() {
		engine.Close()
		mr.Close()
	}
}

func newTestEngine(t *testing.T) (*Engine, func()) {
	t.Helper()
	return buildTestEngine(t, testConfig(), nil)
}
