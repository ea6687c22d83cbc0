package kidgate

import (
	"context"
	"fmt"

	"github.com/lumikids/kidgate/challenge"
	"github.com/lumikids/kidgate/gatetoken"
)

// StartGate generates a fresh arithmetic challenge for the guardian.
// identifier names the lockout bucket ("" uses the configured default);
// generation itself never consumes attempt budget, only answers do.
//
// The returned Challenge's Answer never serializes; send only Question and ID
// to the UI.
func (e *Engine) StartGate(ctx context.Context, identifier string) (*Challenge, error) {
	identifier = e.gateIdentifier(identifier)

	ch, err := challenge.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateUnavailable, err)
	}

	e.metricInc(MetricChallengeIssued)
	e.auditEmit(ctx, AuditEvent{
		EventType:   AuditGateChallenge,
		Identifier:  identifier,
		ChallengeID: ch.ID,
		Success:     true,
	})

	return ch, nil
}

// CompleteGate consumes one attempt and checks the guardian's answer.
//
// Lockout comes first: when the attempt budget for identifier is exhausted the
// answer is not even inspected and [ErrGateRateLimited] is returned. A wrong
// or malformed answer costs the attempt and returns [ErrGateAnswerIncorrect].
// A correct answer re-arms the limiter (when ClearOnSuccess is set) and, if
// pass issuance is enabled, returns a [GatePass] scoped to action; with pass
// issuance disabled the returned pass is nil and the nil error alone signals
// success.
func (e *Engine) CompleteGate(ctx context.Context, identifier, action string, ch *Challenge, submitted string) (*GatePass, error) {
	identifier = e.gateIdentifier(identifier)

	if ch == nil {
		return nil, ErrGateChallengeMissing
	}

	allowed, err := e.limiter.Allow(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateUnavailable, err)
	}
	if !allowed {
		e.metricInc(MetricGateRateLimited)
		e.auditEmit(ctx, AuditEvent{
			EventType:   AuditGateRateLimited,
			Identifier:  identifier,
			ChallengeID: ch.ID,
			Action:      action,
			Error:       ErrGateRateLimited.Error(),
		})
		return nil, ErrGateRateLimited
	}

	if !challenge.CheckAnswer(submitted, ch.Answer) {
		e.metricInc(MetricGateFailed)
		e.auditEmit(ctx, AuditEvent{
			EventType:   AuditGateFailed,
			Identifier:  identifier,
			ChallengeID: ch.ID,
			Action:      action,
			Error:       ErrGateAnswerIncorrect.Error(),
		})
		return nil, ErrGateAnswerIncorrect
	}

	return e.finishGate(ctx, identifier, action, ch.ID)
}

// CompleteGateWithPIN is CompleteGate for guardians who registered a PIN
// instead of solving arithmetic. storedHash is the PHC-encoded hash the host
// persisted at enrollment; the engine never stores PINs itself.
func (e *Engine) CompleteGateWithPIN(ctx context.Context, identifier, action, submittedPIN, storedHash string) (*GatePass, error) {
	identifier = e.gateIdentifier(identifier)

	if e.pinHasher == nil {
		return nil, ErrPINDisabled
	}

	allowed, err := e.limiter.Allow(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateUnavailable, err)
	}
	if !allowed {
		e.metricInc(MetricGateRateLimited)
		e.auditEmit(ctx, AuditEvent{
			EventType:  AuditGateRateLimited,
			Identifier: identifier,
			Action:     action,
			Error:      ErrGateRateLimited.Error(),
		})
		return nil, ErrGateRateLimited
	}

	// A structurally invalid stored hash is a host bug, but for the guardian
	// it is indistinguishable from a mismatch: fail closed, spend the attempt.
	ok, err := e.pinHasher.Verify(submittedPIN, storedHash)
	if err != nil || !ok {
		e.metricInc(MetricPINRejected)
		e.auditEmit(ctx, AuditEvent{
			EventType:  AuditGatePINFailed,
			Identifier: identifier,
			Action:     action,
			Error:      ErrPINIncorrect.Error(),
		})
		return nil, ErrPINIncorrect
	}

	e.metricInc(MetricPINAccepted)
	return e.finishGate(ctx, identifier, action, "")
}

// VerifyGatePass checks a pass previously issued by this engine and returns
// its claims. Collaborators call this before executing the gated action.
func (e *Engine) VerifyGatePass(token string) (*gatetoken.Claims, error) {
	if e.passManager == nil {
		return nil, ErrGatePassDisabled
	}
	return e.passManager.Verify(token)
}

// HashGuardianPIN hashes a PIN for enrollment; the host persists the result.
func (e *Engine) HashGuardianPIN(pinText string) (string, error) {
	if e.pinHasher == nil {
		return "", ErrPINDisabled
	}
	return e.pinHasher.Hash(pinText)
}

func (e *Engine) finishGate(ctx context.Context, identifier, action, challengeID string) (*GatePass, error) {
	if e.config.Gate.ClearOnSuccess {
		if err := e.limiter.Clear(ctx, identifier); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGateUnavailable, err)
		}
	}

	e.metricInc(MetricGatePassed)
	e.auditEmit(ctx, AuditEvent{
		EventType:   AuditGatePassed,
		Identifier:  identifier,
		ChallengeID: challengeID,
		Action:      action,
		Success:     true,
	})

	if e.passManager == nil {
		return nil, nil
	}

	token, expiresAt, err := e.passManager.Issue(action, challengeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateUnavailable, err)
	}

	e.metricInc(MetricPassIssued)

	return &GatePass{
		Token:     token,
		Action:    action,
		ExpiresAt: expiresAt,
	}, nil
}

func (e *Engine) gateIdentifier(identifier string) string {
	if identifier == "" {
		return e.config.Gate.DefaultIdentifier
	}
	return identifier
}
