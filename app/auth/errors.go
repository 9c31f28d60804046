package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrChallengeNotFound is returned when no OTP was issued for the
	// number, or a previous challenge was already consumed.
	ErrChallengeNotFound = errors.New("OTP not found, please request a new one")
	// ErrOTPExpired is returned once a challenge is past its expiry; the
	// challenge is deleted and a new OTP must be requested.
	ErrOTPExpired = errors.New("OTP has expired, please request a new one")
	// ErrTooManyAttempts is returned after the attempt limit is hit; the
	// challenge is deleted and a new OTP must be requested.
	ErrTooManyAttempts = errors.New("too many attempts, please request a new OTP")
)

// InvalidCodeError reports a code mismatch along with how many attempts
// remain before the challenge is withdrawn.
type InvalidCodeError struct {
	Remaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid OTP, %d attempt(s) remaining", e.Remaining)
}
