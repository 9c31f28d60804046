package session

import (
	"errors"
	"fmt"
	"sync"

	"postify/app/logger"
	"postify/app/models"
)

const (
	tokenKey = "auth_token"
	phoneKey = "phone_number"
)

// Store is the durable at-most-one-session store. A session exists iff
// both the token and phone keys are present in storage; the two are set
// and cleared together.
type Store struct {
	mu      sync.Mutex
	storage Storage
	session models.Session
}

// NewStore creates a Store over the given storage.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Open creates a Store backed by a Badger database at dir. If the
// database cannot be opened the store falls back transparently to
// in-memory storage for the lifetime of the process.
func Open(dir string) *Store {
	storage, err := OpenBadgerStorage(dir)
	if err != nil {
		logger.Warn.Printf("session storage unavailable (%v), falling back to in-memory storage; sessions will not survive restart", err)
		return NewStore(NewMemoryStorage())
	}
	return NewStore(storage)
}

// Load reconstructs the session from storage. It returns an
// authenticated session only when both keys are present; any storage
// failure is treated as logged-out. Load never fails.
func (s *Store) Load() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.storage.Get(tokenKey)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			logger.Warn.Printf("failed to read session state: %v", err)
		}
		s.session = models.Session{}
		return s.session
	}
	phone, err := s.storage.Get(phoneKey)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			logger.Warn.Printf("failed to read session state: %v", err)
		}
		s.session = models.Session{}
		return s.session
	}

	s.session = models.Session{
		IsAuthenticated: true,
		PhoneNumber:     phone,
		Token:           token,
	}
	return s.session
}

// Login persists the session and only then updates in-memory state, so a
// failed write leaves the store logged out. If the second key fails to
// write the first is rolled back to keep the pair consistent.
func (s *Store) Login(phone, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(tokenKey, token); err != nil {
		return fmt.Errorf("failed to save authentication state: %w", err)
	}
	if err := s.storage.Set(phoneKey, phone); err != nil {
		if delErr := s.storage.Delete(tokenKey); delErr != nil {
			logger.Warn.Printf("failed to roll back token after login failure: %v", delErr)
		}
		return fmt.Errorf("failed to save authentication state: %w", err)
	}

	s.session = models.Session{
		IsAuthenticated: true,
		PhoneNumber:     phone,
		Token:           token,
	}
	return nil
}

// Logout deletes both keys and clears in-memory state. Deletion failures
// are reported, but the in-memory session is cleared regardless so the
// user can re-attempt login.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	if err := s.storage.Delete(tokenKey); err != nil {
		firstErr = err
	}
	if err := s.storage.Delete(phoneKey); err != nil && firstErr == nil {
		firstErr = err
	}

	s.session = models.Session{}

	if firstErr != nil {
		return fmt.Errorf("failed to clear authentication state: %w", firstErr)
	}
	return nil
}

// Current returns the in-memory session without touching storage.
func (s *Store) Current() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Close releases the underlying storage.
func (s *Store) Close() error {
	return s.storage.Close()
}
