package validate

import (
	"errors"
	"strings"
	"testing"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		email string
		want  error
	}{
		{"a@b.co", nil},
		{"you@example.com", nil},
		{"plainstring", ErrEmailInvalid},
		{"", ErrEmailRequired},
		{"   ", ErrEmailRequired},
		{"a@b", ErrEmailInvalid},
		{"a b@c.co", ErrEmailInvalid},
		{"a@b c.co", ErrEmailInvalid},
	}
	for _, tc := range cases {
		if got := Email(tc.email); !errors.Is(got, tc.want) {
			t.Fatalf("Email(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestTopic(t *testing.T) {
	cases := []struct {
		topic string
		want  error
	}{
		{"A business book about scaling startups", nil},
		{strings.Repeat("x", 20), nil},
		{"too short", ErrTopicTooShort},
		{"", ErrTopicRequired},
		{"   \t  ", ErrTopicRequired},
		{"  " + strings.Repeat("x", 19) + "  ", ErrTopicTooShort},
	}
	for _, tc := range cases {
		if got := Topic(tc.topic); !errors.Is(got, tc.want) {
			t.Fatalf("Topic(%q) = %v, want %v", tc.topic, got, tc.want)
		}
	}
}
