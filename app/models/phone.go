package models

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// Indian numbers: +91 followed by 10 digits starting with 6-9.
	indianPhonePattern = regexp.MustCompile(`^\+91[6-9]\d{9}$`)
	// International numbers: + followed by country code and digits.
	internationalPhonePattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
)

// ErrInvalidPhone is returned when a phone number matches neither the
// Indian nor the generic international pattern.
var ErrInvalidPhone = errors.New("please enter a valid phone number")

// NormalizePhone strips all whitespace from a phone number. Challenge
// records and persisted sessions are always keyed by the normalized form.
func NormalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

// ValidatePhone normalizes the number and checks it against the accepted
// formats, returning the normalized form on success.
func ValidatePhone(phone string) (string, error) {
	clean := NormalizePhone(phone)
	if !indianPhonePattern.MatchString(clean) && !internationalPhonePattern.MatchString(clean) {
		return "", ErrInvalidPhone
	}
	return clean, nil
}
