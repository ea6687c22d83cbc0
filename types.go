package kidgate

import (
	"time"

	"github.com/lumikids/kidgate/challenge"
	"github.com/lumikids/kidgate/password"
	"github.com/lumikids/kidgate/sanitize"
)

// Challenge defines a public type used by kidgate APIs.
//
// Challenge instances are immutable once created and live only for the
// duration of one gate interaction; the calling UI holds them, nothing is
// persisted. The answer field never serializes (json:"-").
type Challenge = challenge.Challenge

// PasswordAssessment defines a public type used by kidgate APIs.
//
// PasswordAssessment instances are computed fresh on every call and never stored.
type PasswordAssessment = password.Assessment

// FileMeta defines a public type used by kidgate APIs.
//
// FileMeta instances carry caller-declared upload metadata; the engine never
// touches file content.
type FileMeta = sanitize.FileMeta

// UploadResult defines a public type used by kidgate APIs.
//
// UploadResult instances are computed fresh on every call and never stored.
type UploadResult = sanitize.UploadResult

// GatePass defines a public type used by kidgate APIs.
//
// GatePass instances are handed to collaborators as proof that a guardian
// passed the gate for one sensitive action; they expire on their own and are
// verified through [Engine.VerifyGatePass].
type GatePass struct {
	Token     string    `json:"token"`
	Action    string    `json:"action"`
	ExpiresAt time.Time `json:"expires_at"`
}
