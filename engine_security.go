package kidgate

import (
	"context"
	"fmt"
	"time"

	"github.com/lumikids/kidgate/internal"
	"github.com/lumikids/kidgate/password"
	"github.com/lumikids/kidgate/sanitize"
)

// SanitizeInput strips unsafe markup from free text: script blocks first, then
// remaining tags, then surrounding whitespace. Total and idempotent.
func (e *Engine) SanitizeInput(text string) string {
	return sanitize.Clean(text)
}

// ValidProfileName reports whether name is acceptable as a child profile
// display name. Allow-list validation; anything not explicitly permitted
// fails closed.
func (e *Engine) ValidProfileName(name string) bool {
	return sanitize.ValidProfileName(name)
}

// AssessPassword scores a guardian password against the five strength
// criteria and returns ordered feedback for the UI.
func (e *Engine) AssessPassword(pw string) PasswordAssessment {
	return password.Assess(pw)
}

// ValidateUpload checks upload metadata against an allow-list of MIME types
// and a size cap. A nil allowedTypes or non-positive maxSizeMB falls back to
// the configured Upload defaults. Checks short-circuit on first failure.
func (e *Engine) ValidateUpload(file FileMeta, allowedTypes []string, maxSizeMB float64) UploadResult {
	if allowedTypes == nil {
		allowedTypes = e.config.Upload.AllowedTypes
	}
	if maxSizeMB <= 0 {
		maxSizeMB = e.config.Upload.MaxSizeMB
	}

	res := sanitize.CheckUpload(file, allowedTypes, maxSizeMB)
	if !res.Valid {
		e.metricInc(MetricUploadRejected)
	}
	return res
}

// Hash digests data through the service resolved at Build: lowercase hex
// SHA-256 on the primary path, reversed base64 on the documented weak
// fallback. Fallback use is absorbed locally and surfaced only through audit,
// metrics, and [Engine.HashFallbackActive].
func (e *Engine) Hash(ctx context.Context, data string) (string, error) {
	start := e.clock()
	out, err := e.hasher.Hash(ctx, data)
	if err != nil {
		return "", err
	}
	if e.metrics.Enabled() {
		e.metrics.Observe(MetricHashLatency, time.Since(start))
	}
	return out, nil
}

// HashFallbackActive reports whether the digest service resolved to the weak
// path. Callers must not treat fallback output as a cryptographic digest.
func (e *Engine) HashFallbackActive() bool {
	return e.hasher.FallbackActive()
}

// GenerateSecureID returns an opaque correlation token: timestamp-prefixed,
// practically unique, not an access-control secret.
func (e *Engine) GenerateSecureID() (string, error) {
	return internal.SecureID()
}

// CheckRateLimit consumes one attempt for identifier against the configured
// budget. Returns (true, nil) when admitted, (false, nil) when denied, and a
// non-nil error only when the backing store is unavailable. Collaborators use
// this for generic throttles (profile creation, content refresh) outside the
// gate flow.
func (e *Engine) CheckRateLimit(ctx context.Context, identifier string) (bool, error) {
	allowed, err := e.limiter.Allow(ctx, identifier)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrGateUnavailable, err)
	}
	if !allowed {
		e.metricInc(MetricRateLimitDenied)
	}
	return allowed, nil
}

// CheckRateLimitN is CheckRateLimit with a per-call budget override for
// operations throttled differently from the gate default.
func (e *Engine) CheckRateLimitN(ctx context.Context, identifier string, maxAttempts int, window time.Duration) (bool, error) {
	allowed, err := e.limiter.AllowN(ctx, identifier, maxAttempts, window)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrGateUnavailable, err)
	}
	if !allowed {
		e.metricInc(MetricRateLimitDenied)
	}
	return allowed, nil
}

// ClearRateLimit removes the entry for identifier outright, re-arming the
// limiter immediately.
func (e *Engine) ClearRateLimit(ctx context.Context, identifier string) error {
	if err := e.limiter.Clear(ctx, identifier); err != nil {
		return fmt.Errorf("%w: %v", ErrGateUnavailable, err)
	}

	e.metricInc(MetricRateLimitCleared)
	e.auditEmit(ctx, AuditEvent{
		EventType:  AuditLimitCleared,
		Identifier: identifier,
		Success:    true,
	})
	return nil
}
