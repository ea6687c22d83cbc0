package kidgate

import (
	"errors"
	"time"
)

// Config defines a public type used by kidgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Gate      GateConfig
	RateLimit RateLimitConfig
	Pass      PassConfig
	Hashing   HashingConfig
	PIN       PINConfig
	Upload    UploadConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
GATE CONFIG
====================================
*/

// GateConfig defines a public type used by kidgate APIs.
//
// GateConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GateConfig struct {
	// DefaultIdentifier names the limiter bucket when callers pass "".
	DefaultIdentifier string
	// ClearOnSuccess re-arms the limiter after a successful pass so a
	// guardian is not penalized for the child's prior failed attempts.
	ClearOnSuccess bool
}

/*
====================================
RATE LIMIT CONFIG
====================================
*/

// RateLimitConfig defines a public type used by kidgate APIs.
//
// RateLimitConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RateLimitConfig struct {
	MaxAttempts int
	Window      time.Duration
	// RedisPrefix namespaces counters when a Redis client is supplied.
	RedisPrefix string
	// MemoryEvictThreshold bounds the in-process store; stale entries are
	// swept once the map grows past it. <= 0 disables sweeping.
	MemoryEvictThreshold int
}

/*
====================================
GATE PASS CONFIG
====================================
*/

// PassConfig defines a public type used by kidgate APIs.
//
// PassConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PassConfig struct {
	Enabled       bool
	TTL           time.Duration
	SigningMethod string // "hs256" (default), "ed25519" optional
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Leeway        time.Duration
}

/*
====================================
HASHING CONFIG
====================================
*/

// HashingConfig defines a public type used by kidgate APIs.
//
// HashingConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HashingConfig struct {
	// ForceFallback pins the reversible-obfuscation path. Constrained builds
	// and tests only; every fallback use is audited and counted.
	ForceFallback bool
}

/*
====================================
GUARDIAN PIN CONFIG
====================================
*/

// PINConfig defines a public type used by kidgate APIs.
//
// PINConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PINConfig struct {
	Enabled     bool
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

/*
====================================
UPLOAD CONFIG
====================================
*/

// UploadConfig defines a public type used by kidgate APIs.
//
// UploadConfig instances supply defaults for [Engine.ValidateUpload] when the
// caller passes a nil allow-list or a non-positive size cap.
type UploadConfig struct {
	AllowedTypes []string
	MaxSizeMB    float64
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by kidgate APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by kidgate APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the baseline configuration: in-process rate limiting
// with a 5-attempt / 5-minute budget, pass issuance, PIN, audit, and metrics
// all disabled. Hosts adjust fields and pass the result to
// [Builder.WithConfig].
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Gate: GateConfig{
			DefaultIdentifier: "parental-gate",
			ClearOnSuccess:    true,
		},
		RateLimit: RateLimitConfig{
			MaxAttempts:          5,
			Window:               5 * time.Minute,
			RedisPrefix:          "pg",
			MemoryEvictThreshold: 1024,
		},
		Pass: PassConfig{
			Enabled:       false,
			TTL:           2 * time.Minute,
			SigningMethod: "hs256",
			Issuer:        "kidgate",
		},
		Hashing: HashingConfig{
			ForceFallback: false,
		},
		PIN: PINConfig{
			Enabled:     false,
			Memory:      65536,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Upload: UploadConfig{
			AllowedTypes: []string{"image/jpeg", "image/png"},
			MaxSizeMB:    5,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Pass.PrivateKey = cloneBytes(cfg.Pass.PrivateKey)
	out.Pass.PublicKey = cloneBytes(cfg.Pass.PublicKey)
	out.Upload.AllowedTypes = cloneStrings(cfg.Upload.AllowedTypes)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Gate
	if c.Gate.DefaultIdentifier == "" {
		return errors.New("Gate DefaultIdentifier must not be empty")
	}

	// Rate limit
	if c.RateLimit.MaxAttempts <= 0 {
		return errors.New("RateLimit MaxAttempts must be > 0")
	}
	if c.RateLimit.Window <= 0 {
		return errors.New("RateLimit Window must be > 0")
	}
	if c.RateLimit.RedisPrefix == "" {
		return errors.New("RateLimit RedisPrefix must not be empty")
	}

	// Gate pass
	if c.Pass.Enabled {
		if c.Pass.TTL <= 0 {
			return errors.New("Pass TTL must be > 0")
		}
		if c.Pass.SigningMethod != "hs256" && c.Pass.SigningMethod != "ed25519" {
			return errors.New("unsupported Pass signing method")
		}
		if c.Pass.SigningMethod == "hs256" && len(c.Pass.PrivateKey) == 0 {
			return errors.New("Pass hs256 requires PrivateKey")
		}
		if c.Pass.SigningMethod == "ed25519" && len(c.Pass.PrivateKey) == 0 {
			return errors.New("Pass ed25519 requires PrivateKey")
		}
		if c.Pass.SigningMethod == "ed25519" && len(c.Pass.PublicKey) == 0 {
			return errors.New("Pass ed25519 requires PublicKey")
		}
		if c.Pass.Leeway < 0 || c.Pass.Leeway > 2*time.Minute {
			return errors.New("Pass Leeway must be between 0 and 2m")
		}
	}

	// Guardian PIN
	if c.PIN.Enabled {
		if c.PIN.Memory < 8*1024 {
			return errors.New("PIN Memory must be >= 8192 KB")
		}
		if c.PIN.Time < 1 {
			return errors.New("PIN Time must be >= 1")
		}
		if c.PIN.Parallelism < 1 {
			return errors.New("PIN Parallelism must be >= 1")
		}
		if c.PIN.SaltLength < 16 {
			return errors.New("PIN SaltLength must be >= 16")
		}
		if c.PIN.KeyLength < 16 {
			return errors.New("PIN KeyLength must be >= 16")
		}
	}

	// Upload defaults
	if c.Upload.MaxSizeMB <= 0 {
		return errors.New("Upload MaxSizeMB must be > 0")
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
