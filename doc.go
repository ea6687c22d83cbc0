// Package kidgate provides the parental-gate and input-security layer for child-facing
// educational applications: arithmetic guardian challenges with lockout, abuse-resistant
// rate limiting, input sanitization and structural validation, and a digest service with
// a documented weak fallback.
//
// The package is designed for concurrent application workloads: Engine methods are safe
// to call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// kidgate is the public surface. It exposes [Engine], [Builder], [Config], and value
// types (Challenge, GatePass, PasswordAssessment, etc.). Rate-limit stores and the
// secure ID generator live under internal/ and are never exported. Leaf concerns
// (challenge, sanitize, password, pin, hashing, gatetoken) are importable on their own
// for callers that do not need the full Engine.
//
// # What this package must NOT do
//
//   - Expose Redis clients or rate-limit store internals in its public API.
//   - Serialize a Challenge answer to any caller-facing payload (Answer is json:"-").
//   - Treat fallback digest output as equivalent to a cryptographic digest anywhere.
//
// # Threat model
//
// The gate deters a child from reaching sensitive actions (content updates, settings
// changes, data export). It is not an adversarial security boundary against an attacker
// with access to the running process.
package kidgate
