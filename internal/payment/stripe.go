package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// Confirmer exchanges a backend-issued client secret for a confirmed
// payment intent id. Card data never passes through this application.
type Confirmer interface {
	Confirm(ctx context.Context, clientSecret string) (string, error)
}

// StripeConfirmer confirms payment intents with the Stripe API using the
// publishable key and a pre-tokenized payment method.
type StripeConfirmer struct {
	paymentMethod string
}

// NewStripeConfirmer configures the Stripe SDK session. paymentMethod is a
// Stripe payment-method token (e.g. pm_card_visa in test mode).
func NewStripeConfirmer(publishableKey, paymentMethod string) (*StripeConfirmer, error) {
	if strings.TrimSpace(publishableKey) == "" {
		return nil, fmt.Errorf("stripe publishable key is required")
	}
	if strings.TrimSpace(paymentMethod) == "" {
		paymentMethod = "pm_card_visa"
	}
	stripe.Key = publishableKey
	return &StripeConfirmer{paymentMethod: paymentMethod}, nil
}

// Confirm confirms the payment intent behind clientSecret and returns its id.
func (s *StripeConfirmer) Confirm(ctx context.Context, clientSecret string) (string, error) {
	intentID, err := IntentIDFromClientSecret(clientSecret)
	if err != nil {
		return "", err
	}

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(s.paymentMethod),
	}
	params.AddExtra("client_secret", clientSecret)
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	intent, err := paymentintent.Confirm(intentID, params)
	if err != nil {
		return "", fmt.Errorf("confirm payment: %w", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded &&
		intent.Status != stripe.PaymentIntentStatusProcessing {
		return "", fmt.Errorf("payment not completed: status %s", intent.Status)
	}
	return intent.ID, nil
}

// IntentIDFromClientSecret extracts the payment intent id from a client
// secret of the form "<id>_secret_<nonce>".
func IntentIDFromClientSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret")
	}
	return id, nil
}
