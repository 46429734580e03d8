// Package federated verifies Google ID tokens presented by the sign-in button.
package federated

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

// Identity is what a verified provider token tells us about the caller.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// Reason tags why a provider token was rejected. It is logged, never returned
// to the client.
type Reason string

const (
	ReasonMalformed       Reason = "malformed"
	ReasonExpired         Reason = "expired"
	ReasonAudience        Reason = "audience"
	ReasonSignature       Reason = "signature"
	ReasonMissingEmail    Reason = "missing_email"
	ReasonUnverifiedEmail Reason = "unverified_email"
)

// VerifyError matches domain.ErrInvalidCredential under errors.Is.
type VerifyError struct {
	Reason Reason
	Err    error
}

func (e *VerifyError) Error() string {
	if e.Err == nil {
		return "federated token rejected: " + string(e.Reason)
	}
	return fmt.Sprintf("federated token rejected: %s: %v", e.Reason, e.Err)
}

func (e *VerifyError) Unwrap() []error {
	if e.Err == nil {
		return []error{domain.ErrInvalidCredential}
	}
	return []error{domain.ErrInvalidCredential, e.Err}
}

// ReasonOf extracts the rejection reason from err, or "" if err is not a VerifyError.
func ReasonOf(err error) Reason {
	var ve *VerifyError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return ""
}

// tokenValidator is satisfied by *idtoken.Validator.
type tokenValidator interface {
	Validate(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

type GoogleVerifier struct {
	validator tokenValidator
	clientID  string
}

// NewGoogleVerifier builds a verifier bound to clientID. Google's public keys
// are fetched and cached by the idtoken package.
func NewGoogleVerifier(ctx context.Context, clientID string, opts ...option.ClientOption) (*GoogleVerifier, error) {
	if clientID == "" {
		return nil, domain.ErrFederatedDisabled
	}
	v, err := idtoken.NewValidator(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create idtoken validator: %w", err)
	}
	return &GoogleVerifier{validator: v, clientID: clientID}, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	payload, err := g.validator.Validate(ctx, credential, g.clientID)
	if err != nil {
		return nil, &VerifyError{Reason: classify(err), Err: err}
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, &VerifyError{Reason: ReasonMissingEmail}
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, &VerifyError{Reason: ReasonUnverifiedEmail}
	}
	name, _ := payload.Claims["name"].(string)

	return &Identity{
		Subject: payload.Subject,
		Email:   email,
		Name:    name,
	}, nil
}

// classify maps idtoken's error text onto a Reason. idtoken does not export
// typed errors.
func classify(err error) Reason {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "audience"):
		return ReasonAudience
	case strings.Contains(msg, "expired"):
		return ReasonExpired
	case strings.Contains(msg, "signature"),
		strings.Contains(msg, "keyId"),
		strings.Contains(msg, "signed with"):
		return ReasonSignature
	default:
		return ReasonMalformed
	}
}
