package kidgate

import (
	"testing"
	"time"
)

func TestConfigValidateDefaults(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestConfigValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty default identifier", func(c *Config) { c.Gate.DefaultIdentifier = "" }},
		{"zero max attempts", func(c *Config) { c.RateLimit.MaxAttempts = 0 }},
		{"negative window", func(c *Config) { c.RateLimit.Window = -time.Second }},
		{"empty redis prefix", func(c *Config) { c.RateLimit.RedisPrefix = "" }},
		{"pass enabled without key", func(c *Config) {
			c.Pass.Enabled = true
			c.Pass.PrivateKey = nil
		}},
		{"pass bad signing method", func(c *Config) {
			c.Pass.Enabled = true
			c.Pass.PrivateKey = []byte("k")
			c.Pass.SigningMethod = "rs256"
		}},
		{"pass ed25519 without public key", func(c *Config) {
			c.Pass.Enabled = true
			c.Pass.SigningMethod = "ed25519"
			c.Pass.PrivateKey = []byte("k")
			c.Pass.PublicKey = nil
		}},
		{"pass excessive leeway", func(c *Config) {
			c.Pass.Enabled = true
			c.Pass.PrivateKey = []byte("k")
			c.Pass.Leeway = 3 * time.Minute
		}},
		{"pin memory below floor", func(c *Config) {
			c.PIN.Enabled = true
			c.PIN.Memory = 1024
		}},
		{"pin zero time", func(c *Config) {
			c.PIN.Enabled = true
			c.PIN.Time = 0
		}},
		{"pin short salt", func(c *Config) {
			c.PIN.Enabled = true
			c.PIN.SaltLength = 8
		}},
		{"upload zero size cap", func(c *Config) { c.Upload.MaxSizeMB = 0 }},
		{"audit enabled zero buffer", func(c *Config) {
			c.Audit.Enabled = true
			c.Audit.BufferSize = 0
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.RateLimit.MaxAttempts = -1

	if _, err := New().WithConfig(cfg).Build(); err == nil {
		t.Fatal("expected Build to fail on invalid config")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New()
	engine, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build on the same builder to fail")
	}
}

func TestCloneConfigIsolation(t *testing.T) {
	cfg := defaultConfig()
	cfg.Pass.PrivateKey = []byte("secret-key-material")
	cfg.Upload.AllowedTypes = []string{"image/png"}

	engine, err := New().WithConfig(cfg).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	// Mutating the caller's slices after Build must not reach the engine.
	cfg.Pass.PrivateKey[0] = 'X'
	cfg.Upload.AllowedTypes[0] = "application/x-evil"

	res := engine.ValidateUpload(FileMeta{
		Name:      "a.png",
		MIMEType:  "image/png",
		SizeBytes: 10,
	}, nil, 0)
	if !res.Valid {
		t.Fatalf("engine config was aliased to caller slice: %+v", res)
	}
}
