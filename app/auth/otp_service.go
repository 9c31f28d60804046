package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"postify/app/models"
)

const (
	// DefaultOTP is the universal bypass code: it always verifies,
	// regardless of stored challenge state.
	DefaultOTP = "000000"

	challengeTTL = 5 * time.Minute
	maxAttempts  = 3
)

// challenge is the in-process record of an issued OTP. Codes are stored
// hashed; challenges never touch durable storage and are lost on restart.
type challenge struct {
	codeHash  []byte
	expiresAt time.Time
	attempts  int
}

// Service simulates a two-step OTP authentication handshake with no real
// backend. One challenge per normalized phone number is in flight at a
// time; sending again overwrites the previous one.
type Service struct {
	mu         sync.Mutex
	challenges map[string]*challenge
	now        func() time.Time
}

// NewService creates a mock OTP service.
func NewService() *Service {
	return &Service{
		challenges: make(map[string]*challenge),
		now:        time.Now,
	}
}

// SendOTP validates the phone number, issues a challenge with a fresh
// expiry window and returns the code. Returning the code is a mock
// affordance standing in for SMS delivery.
func (s *Service) SendOTP(phone string) (string, error) {
	clean, err := models.ValidatePhone(phone)
	if err != nil {
		return "", err
	}

	code := DefaultOTP
	// MinCost: the code is a short-lived test credential.
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash OTP: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[clean] = &challenge{
		codeHash:  hash,
		expiresAt: s.now().Add(challengeTTL),
		attempts:  0,
	}
	return code, nil
}

// VerifyOTP checks a submitted code against the stored challenge for the
// number. The bypass code always succeeds. On success the challenge is
// consumed and a fresh opaque session token is returned; expired or
// exhausted challenges are deleted as they are reported.
func (s *Service) VerifyOTP(phone, code string) (string, error) {
	clean := models.NormalizePhone(phone)

	s.mu.Lock()
	defer s.mu.Unlock()

	if code == DefaultOTP {
		delete(s.challenges, clean)
		return s.newToken(), nil
	}

	ch, ok := s.challenges[clean]
	if !ok {
		return "", ErrChallengeNotFound
	}

	if s.now().After(ch.expiresAt) {
		delete(s.challenges, clean)
		return "", ErrOTPExpired
	}

	if ch.attempts >= maxAttempts {
		delete(s.challenges, clean)
		return "", ErrTooManyAttempts
	}

	if bcrypt.CompareHashAndPassword(ch.codeHash, []byte(code)) != nil {
		ch.attempts++
		remaining := maxAttempts - ch.attempts
		if remaining < 0 {
			remaining = 0
		}
		return "", &InvalidCodeError{Remaining: remaining}
	}

	delete(s.challenges, clean)
	return s.newToken(), nil
}

// ClearChallenges drops the challenge for phone, or every challenge when
// phone is empty. Useful for tests and cleanup.
func (s *Service) ClearChallenges(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if phone == "" {
		s.challenges = make(map[string]*challenge)
		return
	}
	delete(s.challenges, models.NormalizePhone(phone))
}

// newToken mints an opaque session token, unique per call: a timestamp
// component from the service clock plus a random component.
func (s *Service) newToken() string {
	return fmt.Sprintf("tok_%d_%s", s.now().UnixNano(), uuid.NewString())
}
