package service

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rejection reasons for contact submissions. Handlers map these onto the
// user-facing error strings, so each rule has exactly one sentinel.
var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrMessageTooShort = errors.New("message too short")
)

// minMessageLength is the number of characters a trimmed message must contain.
const minMessageLength = 10

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateSubmission checks a contact payload and returns the first failing
// rule, or nil when the payload is acceptable. The rules run in a fixed
// order: presence of name, email and message, then email shape, then message
// length. The function is pure; it never touches storage or the relay.
func ValidateSubmission(name, email, message string) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingFields
	}
	if strings.TrimSpace(email) == "" {
		return ErrMissingFields
	}
	if strings.TrimSpace(message) == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(strings.TrimSpace(message)) < minMessageLength {
		return ErrMessageTooShort
	}
	return nil
}
