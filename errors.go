package kidgate

import "errors"

var (
	// ErrGateRateLimited is an exported sentinel returned by the parental gate engine.
	ErrGateRateLimited = errors.New("gate attempts rate limited")
	// ErrGateAnswerIncorrect is an exported sentinel returned by the parental gate engine.
	ErrGateAnswerIncorrect = errors.New("gate answer incorrect")
	// ErrGateChallengeMissing is an exported sentinel returned by the parental gate engine.
	ErrGateChallengeMissing = errors.New("gate challenge missing")
	// ErrGateUnavailable is an exported sentinel returned by the parental gate engine.
	ErrGateUnavailable = errors.New("gate backend unavailable")
	// ErrGatePassDisabled is an exported sentinel returned by the parental gate engine.
	ErrGatePassDisabled = errors.New("gate pass issuance disabled")
	// ErrPINDisabled is an exported sentinel returned by the parental gate engine.
	ErrPINDisabled = errors.New("guardian pin disabled")
	// ErrPINIncorrect is an exported sentinel returned by the parental gate engine.
	ErrPINIncorrect = errors.New("guardian pin incorrect")
)
