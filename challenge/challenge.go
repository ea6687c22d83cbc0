// Package challenge generates and checks the arithmetic problems behind the
// parental gate. Problems are sized for an adult to answer without effort and
// never yield a negative result, so a child is never shown a negative answer.
package challenge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lumikids/kidgate/internal"
)

// Operator symbols embedded in the question text.
const (
	symbolAdd = "+"
	symbolSub = "-"
	symbolMul = "×"
)

// Challenge is one gate interaction. Immutable once created and never
// persisted; the calling UI holds it for the duration of the interaction.
// Answer must never cross an untrusted boundary, hence json:"-".
type Challenge struct {
	Question string `json:"question"`
	Answer   int    `json:"-"`
	ID       string `json:"id"`
}

// Generate returns a fresh challenge: one of addition, subtraction, or
// multiplication, picked uniformly. Operand ranges per operation:
//
//   - addition: both operands in [1,20], answer in [2,40]
//   - subtraction: minuend in [10,39], subtrahend in [1,minuend], answer >= 0
//   - multiplication: both operands in [1,12], answer in [1,144]
//
// Calls share no state; each challenge is independent apart from randomness.
func Generate() (*Challenge, error) {
	op, err := internal.RandomInt(0, 2)
	if err != nil {
		return nil, err
	}

	var a, b, answer int
	var symbol string

	switch op {
	case 0:
		if a, err = internal.RandomInt(1, 20); err != nil {
			return nil, err
		}
		if b, err = internal.RandomInt(1, 20); err != nil {
			return nil, err
		}
		answer = a + b
		symbol = symbolAdd
	case 1:
		if a, err = internal.RandomInt(10, 39); err != nil {
			return nil, err
		}
		if b, err = internal.RandomInt(1, a); err != nil {
			return nil, err
		}
		answer = a - b
		symbol = symbolSub
	default:
		if a, err = internal.RandomInt(1, 12); err != nil {
			return nil, err
		}
		if b, err = internal.RandomInt(1, 12); err != nil {
			return nil, err
		}
		answer = a * b
		symbol = symbolMul
	}

	id, err := internal.SecureID()
	if err != nil {
		return nil, err
	}

	return &Challenge{
		Question: fmt.Sprintf("What is %d %s %d?", a, symbol, b),
		Answer:   answer,
		ID:       id,
	}, nil
}

// CheckAnswer reports whether submitted matches expected. Total: malformed,
// empty, or non-numeric input is "incorrect", never an error, so the caller's
// UI needs no separate error branch for a bad guess. expected < 0 is the
// no-expected-answer sentinel (generated answers are always >= 0) and always
// fails. Equality is exact integer comparison after parsing; no tolerance.
//
// CheckAnswer is pure and does not rate-limit; callers wanting lockout combine
// it with the attempt limiter, as the root Engine does.
func CheckAnswer(submitted string, expected int) bool {
	if expected < 0 {
		return false
	}

	s := strings.TrimSpace(submitted)
	if s == "" {
		return false
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}

	return n == expected
}
