package kidgate

import (
	"errors"
	"time"

	"github.com/lumikids/kidgate/gatetoken"
	"github.com/lumikids/kidgate/hashing"
	"github.com/lumikids/kidgate/internal/rate"
	"github.com/lumikids/kidgate/pin"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by kidgate APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config    Config
	redis     redis.UniversalClient
	auditSink AuditSink
	clock     func() time.Time

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis supplies a Redis client so several application nodes share one
// attempt budget per identifier. Without it the engine uses the in-process
// store, which is the right choice for a single-node app.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithClock overrides the engine clock. Tests only.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.clock = now
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clock := b.clock
	if clock == nil {
		clock = time.Now
	}

	// -------- RATE LIMIT STORE --------
	var store rate.Store
	if b.redis != nil {
		store = rate.NewRedisStore(b.redis, cfg.RateLimit.RedisPrefix)
	} else {
		store = rate.NewMemoryStore(clock, cfg.RateLimit.MemoryEvictThreshold)
	}

	engine := &Engine{
		config: cfg,
		clock:  clock,
	}

	engine.limiter = rate.New(store, rate.Config{
		MaxAttempts: cfg.RateLimit.MaxAttempts,
		Window:      cfg.RateLimit.Window,
	})
	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	// -------- HASHING SERVICE --------
	// Strategy resolved here, once; the OnFallback hook is the non-fatal
	// warning signal for the weak path.
	engine.hasher = hashing.New(hashing.Config{
		ForceFallback: cfg.Hashing.ForceFallback,
		OnFallback: func() {
			engine.metricInc(MetricHashFallback)
			engine.auditEmit(nil, AuditEvent{
				EventType: AuditHashFallback,
				Success:   true,
			})
		},
	})

	// -------- GATE PASS MANAGER --------
	if cfg.Pass.Enabled {
		pm, err := gatetoken.NewManager(gatetoken.Config{
			TTL:           cfg.Pass.TTL,
			SigningMethod: gatetoken.SigningMethod(cfg.Pass.SigningMethod),
			PrivateKey:    cloneBytes(cfg.Pass.PrivateKey),
			PublicKey:     cloneBytes(cfg.Pass.PublicKey),
			Issuer:        cfg.Pass.Issuer,
			Leeway:        cfg.Pass.Leeway,
		})
		if err != nil {
			return nil, err
		}
		engine.passManager = pm
	}

	// -------- GUARDIAN PIN --------
	if cfg.PIN.Enabled {
		ph, err := pin.New(pin.Config{
			Memory:      cfg.PIN.Memory,
			Time:        cfg.PIN.Time,
			Parallelism: cfg.PIN.Parallelism,
			SaltLength:  cfg.PIN.SaltLength,
			KeyLength:   cfg.PIN.KeyLength,
		})
		if err != nil {
			return nil, err
		}
		engine.pinHasher = ph
	}

	b.built = true

	return engine, nil
}
