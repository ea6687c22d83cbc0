// Package internal holds shared helpers for the kidgate module that must not
// leak into the public API: the secure correlation ID generator and the
// crypto/rand draw helpers behind it. Policy lives in the root package; stores
// live in internal/rate.
package internal
