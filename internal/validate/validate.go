package validate

import (
	"errors"
	"regexp"
	"strings"
)

// Screen-local input validation for the create and payment screens.
// Failures here are shown inline next to the offending field and prevent
// any network call.

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minTopicLength = 20

var (
	ErrEmailRequired = errors.New("Email is required to receive your book")
	ErrEmailInvalid  = errors.New("Please enter a valid email address")
	ErrTopicRequired = errors.New("Please describe your book topic in detail")
	ErrTopicTooShort = errors.New("Please provide more context (at least 20 characters)")
)

// Email checks the address has a local part, a domain and a TLD.
func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// Topic requires a non-empty description of at least 20 characters after
// trimming.
func Topic(topic string) error {
	trimmed := strings.TrimSpace(topic)
	if trimmed == "" {
		return ErrTopicRequired
	}
	if len(trimmed) < minTopicLength {
		return ErrTopicTooShort
	}
	return nil
}
