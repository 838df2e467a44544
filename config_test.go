package goCred

import "testing"

func TestConfigValidateBounds(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "default config valid",
			mutate:    func(*Config) {},
			wantValid: true,
		},
		{
			name: "memory at floor valid",
			mutate: func(c *Config) {
				c.Password.Memory = 8192
			},
			wantValid: true,
		},
		{
			name: "memory below floor invalid",
			mutate: func(c *Config) {
				c.Password.Memory = 4096
			},
			wantValid: false,
		},
		{
			name: "zero iterations invalid",
			mutate: func(c *Config) {
				c.Password.Iterations = 0
			},
			wantValid: false,
		},
		{
			name: "zero parallelism invalid",
			mutate: func(c *Config) {
				c.Password.Parallelism = 0
			},
			wantValid: false,
		},
		{
			name: "short salt invalid",
			mutate: func(c *Config) {
				c.Password.SaltLength = 8
			},
			wantValid: false,
		},
		{
			name: "short key invalid",
			mutate: func(c *Config) {
				c.Password.KeyLength = 8
			},
			wantValid: false,
		},
		{
			name: "negative max password bytes invalid",
			mutate: func(c *Config) {
				c.Password.MaxPasswordBytes = -1
			},
			wantValid: false,
		},
		{
			name: "accept unpeppered without pepper invalid",
			mutate: func(c *Config) {
				c.Password.AcceptUnpeppered = true
			},
			wantValid: false,
		},
		{
			name: "accept unpeppered with pepper valid",
			mutate: func(c *Config) {
				c.Password.Pepper = []byte("pepper")
				c.Password.AcceptUnpeppered = true
			},
			wantValid: true,
		},
		{
			name: "empty redis prefix invalid",
			mutate: func(c *Config) {
				c.Store.RedisPrefix = ""
			},
			wantValid: false,
		},
		{
			name: "audit enabled zero buffer invalid",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = 0
			},
			wantValid: false,
		},
		{
			name: "audit disabled zero buffer valid",
			mutate: func(c *Config) {
				c.Audit.Enabled = false
				c.Audit.BufferSize = 0
			},
			wantValid: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantValid && err != nil {
				t.Fatalf("expected valid config, got: %v", err)
			}
			if !tc.wantValid && err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestCloneConfigDeepCopies(t *testing.T) {
	cfg := defaultConfig()
	cfg.Password.Pepper = []byte("original")
	cfg.Registration.DefaultRoles = []string{"member"}

	clone := cloneConfig(cfg)
	clone.Password.Pepper[0] = 'X'
	clone.Registration.DefaultRoles[0] = "mutated"

	if string(cfg.Password.Pepper) != "original" {
		t.Fatal("pepper was not deep-copied")
	}
	if cfg.Registration.DefaultRoles[0] != "member" {
		t.Fatal("default roles were not deep-copied")
	}
}

func TestBuilderRequiresStoreOrRedis(t *testing.T) {
	if _, err := New().WithConfig(testConfig()).Build(); err == nil {
		t.Fatal("expected Build to fail without redis or store")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	b := New().WithConfig(testConfig()).WithRedis(rdb)
	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}

func TestSecurityReportReflectsConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Password.Pepper = []byte("report-pepper")
	cfg.Password.AcceptUnpeppered = true
	cfg.Metrics.Enabled = true

	engine, done := buildTestEngine(t, cfg, nil)
	defer done()

	report := engine.SecurityReport()
	if report.HashAlgorithm != "argon2id" {
		t.Fatalf("unexpected hash algorithm: %q", report.HashAlgorithm)
	}
	if report.Argon2.Memory != cfg.Password.Memory {
		t.Fatalf("expected memory %d, got %d", cfg.Password.Memory, report.Argon2.Memory)
	}
	if !report.PepperConfigured || !report.PepperMigrationActive {
		t.Fatal("expected pepper flags to be set")
	}
	if !report.UpgradeOnLogin {
		t.Fatal("expected UpgradeOnLogin to be reported")
	}
	if !report.MetricsEnabled {
		t.Fatal("expected MetricsEnabled to be reported")
	}
}
