// Package hashing computes lightweight integrity digests of strings. The
// primary path is a SHA-256 hex digest; when the cryptographic primitive is
// not available to the binary, a reversible-obfuscation fallback (base64 of
// the input, character sequence reversed) is used instead.
//
// The fallback is explicitly NOT a cryptographic digest. It exists only so the
// service stays total on constrained platforms, and every use of it is
// signalled through the OnFallback hook so the host can warn. Nothing in the
// kidgate module treats fallback output as equivalent to the primary digest,
// and this package is not a password-storage primitive (no salt, no KDF) —
// guardian secrets go through the pin package.
package hashing

import (
	"context"
	"crypto"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// digester is the strategy interface behind the service: one implementation
// per capability state, resolved once at construction, never re-probed.
type digester interface {
	digest(data string) string
	strong() bool
}

type sha256Digester struct{}

func (sha256Digester) digest(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

func (sha256Digester) strong() bool { return true }

type fallbackDigester struct{}

func (fallbackDigester) digest(data string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(data))
	out := []byte(encoded)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

func (fallbackDigester) strong() bool { return false }

// Config tunes the service.
type Config struct {
	// ForceFallback pins the weak path regardless of primitive availability.
	// For constrained builds and for tests; leave false everywhere else.
	ForceFallback bool

	// OnFallback is invoked once per Hash call that used the weak path.
	// Optional; hosts typically bump a metric and emit an audit event.
	OnFallback func()
}

// Service computes digests with the strategy resolved at construction.
// Safe for concurrent use.
type Service struct {
	digester   digester
	onFallback func()
}

// New probes SHA-256 availability once and picks the strategy. The probe uses
// crypto.SHA256.Available, which reports whether the primitive is linked into
// the binary.
func New(cfg Config) *Service {
	s := &Service{onFallback: cfg.OnFallback}

	if !cfg.ForceFallback && crypto.SHA256.Available() {
		s.digester = sha256Digester{}
	} else {
		s.digester = fallbackDigester{}
	}

	return s
}

// Hash digests data. On the primary path the result is the lowercase hex
// SHA-256 of the input; on the fallback path it is the reversed base64
// encoding. The fallback is absorbed locally — callers never see an error for
// primitive unavailability — but the weaker contract is observable through
// [Service.FallbackActive] and the OnFallback hook.
//
// ctx is honored before computing: a cancelled context returns ctx.Err().
func (s *Service) Hash(ctx context.Context, data string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out := s.digester.digest(data)

	if !s.digester.strong() && s.onFallback != nil {
		s.onFallback()
	}

	return out, nil
}

// FallbackActive reports whether the service resolved to the weak path.
func (s *Service) FallbackActive() bool {
	return !s.digester.strong()
}
