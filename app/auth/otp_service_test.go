package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"postify/app/models"
)

const testPhone = "+91 98765 43210"

func TestSendOTP(t *testing.T) {
	service := NewService()

	t.Run("valid indian number", func(t *testing.T) {
		code, err := service.SendOTP(testPhone)
		assert.NoError(t, err)
		assert.Equal(t, DefaultOTP, code)
	})

	t.Run("valid international number", func(t *testing.T) {
		code, err := service.SendOTP("+14155552671")
		assert.NoError(t, err)
		assert.Len(t, code, 6)
	})

	t.Run("invalid number", func(t *testing.T) {
		_, err := service.SendOTP("12345")
		assert.ErrorIs(t, err, models.ErrInvalidPhone)
	})

	t.Run("resend overwrites prior challenge", func(t *testing.T) {
		_, err := service.SendOTP(testPhone)
		assert.NoError(t, err)

		// Burn two attempts, then resend: the counter starts over.
		for i := 0; i < 2; i++ {
			_, err := service.VerifyOTP(testPhone, "111111")
			assert.Error(t, err)
		}
		_, err = service.SendOTP(testPhone)
		assert.NoError(t, err)

		_, err = service.VerifyOTP(testPhone, "111111")
		var invalid *InvalidCodeError
		assert.ErrorAs(t, err, &invalid)
		assert.Equal(t, 2, invalid.Remaining)
	})
}

func TestVerifyOTP(t *testing.T) {
	t.Run("bypass code always succeeds", func(t *testing.T) {
		service := NewService()

		// No SendOTP was ever called for this number.
		token, err := service.VerifyOTP(testPhone, DefaultOTP)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("bypass code succeeds after expiry", func(t *testing.T) {
		service := NewService()
		_, err := service.SendOTP(testPhone)
		assert.NoError(t, err)

		service.now = func() time.Time { return time.Now().Add(time.Hour) }
		token, err := service.VerifyOTP(testPhone, DefaultOTP)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("no challenge", func(t *testing.T) {
		service := NewService()
		_, err := service.VerifyOTP(testPhone, "123456")
		assert.ErrorIs(t, err, ErrChallengeNotFound)
	})

	t.Run("expired challenge is deleted", func(t *testing.T) {
		service := NewService()
		_, err := service.SendOTP(testPhone)
		assert.NoError(t, err)

		service.now = func() time.Time { return time.Now().Add(6 * time.Minute) }
		_, err = service.VerifyOTP(testPhone, "123456")
		assert.ErrorIs(t, err, ErrOTPExpired)

		// Challenge is gone: the next verify reports not found.
		_, err = service.VerifyOTP(testPhone, "123456")
		assert.ErrorIs(t, err, ErrChallengeNotFound)
	})

	t.Run("attempts count down then lock out", func(t *testing.T) {
		service := NewService()
		_, err := service.SendOTP(testPhone)
		assert.NoError(t, err)

		for _, want := range []int{2, 1, 0} {
			_, err := service.VerifyOTP(testPhone, "999999")
			var invalid *InvalidCodeError
			assert.ErrorAs(t, err, &invalid)
			assert.Equal(t, want, invalid.Remaining)
			assert.Contains(t, err.Error(), fmt.Sprintf("%d attempt(s) remaining", want))
		}

		// Fourth attempt fails regardless of the submitted code and
		// consumes the challenge.
		_, err = service.VerifyOTP(testPhone, "999999")
		assert.ErrorIs(t, err, ErrTooManyAttempts)
		_, err = service.VerifyOTP(testPhone, "999999")
		assert.ErrorIs(t, err, ErrChallengeNotFound)
	})

	t.Run("phone is matched in normalized form", func(t *testing.T) {
		service := NewService()
		_, err := service.SendOTP("+91 98765 43210")
		assert.NoError(t, err)

		_, err = service.VerifyOTP("+919876543210", "111111")
		var invalid *InvalidCodeError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("tokens are unique per call", func(t *testing.T) {
		service := NewService()
		a, err := service.VerifyOTP(testPhone, DefaultOTP)
		assert.NoError(t, err)
		b, err := service.VerifyOTP(testPhone, DefaultOTP)
		assert.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("token timestamp follows the service clock", func(t *testing.T) {
		service := NewService()
		frozen := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
		service.now = func() time.Time { return frozen }

		token, err := service.VerifyOTP(testPhone, DefaultOTP)
		assert.NoError(t, err)
		assert.Contains(t, token, fmt.Sprintf("tok_%d_", frozen.UnixNano()))
	})
}

func TestClearChallenges(t *testing.T) {
	service := NewService()
	_, err := service.SendOTP(testPhone)
	assert.NoError(t, err)
	_, err = service.SendOTP("+14155552671")
	assert.NoError(t, err)

	service.ClearChallenges(testPhone)
	_, err = service.VerifyOTP(testPhone, "111111")
	assert.ErrorIs(t, err, ErrChallengeNotFound)

	service.ClearChallenges("")
	_, err = service.VerifyOTP("+14155552671", "111111")
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}
