// Package rate provides the internal sliding-window attempt limiter used by the
// parental gate and by generic per-identifier throttles.
//
// # Window semantics
//
// Sliding window, refreshed on every admitted attempt: the window deadline moves
// forward each time an attempt is allowed, so a burst straddling a fixed window
// boundary cannot double the effective allowance. Denied attempts do not consume
// budget and do not move the deadline. A window that elapses with no traffic
// re-arms the identifier on the next read.
//
// Two stores implement [Store]: an in-process mutex-guarded map for single-node
// deployments and a Redis store (Lua script, atomic check-then-consume) for
// multi-instance deployments. Key prefix for the Redis store is configured by
// the root package (default "pg:").
//
// # What this package must NOT do
//
//   - Implement gate policy (lockout responses, audit, pass issuance).
//   - Be imported outside the kidgate module.
package rate
