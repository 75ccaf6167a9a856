// Package signature authenticates inbound webhook deliveries signed with the
// processor's "t=<unix>,v1=<hex>" header scheme.
package signature

import (
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76/webhook"
)

// HeaderName is the HTTP header carrying the signature.
const HeaderName = "Stripe-Signature"

// DefaultTolerance is the accepted clock skew when Options leave it unset.
const DefaultTolerance = webhook.DefaultTolerance

var (
	ErrVerification     = errors.New("webhook verification failed")
	ErrMalformedHeader  = fmt.Errorf("%w: malformed signature header", ErrVerification)
	ErrInvalidSignature = fmt.Errorf("%w: no matching signature", ErrVerification)
	ErrStaleTimestamp   = fmt.Errorf("%w: timestamp outside tolerance", ErrVerification)

	ErrBypassWithSecret = errors.New("verification bypass cannot be enabled while a secret is configured")
	ErrMissingSecret    = errors.New("webhook secret is required")
)

// VerifiedPayload is raw payload bytes that passed verification. It can
// only be produced by this package.
type VerifiedPayload struct {
	raw      []byte
	bypassed bool
}

// Bytes returns the payload exactly as it was received.
func (p VerifiedPayload) Bytes() []byte {
	return p.raw
}

// Bypassed reports whether the payload was accepted without a signature
// check.
func (p VerifiedPayload) Bypassed() bool {
	return p.bypassed
}

// FromTrustedSource wraps a payload that was verified before it was queued
// internally.
func FromTrustedSource(raw []byte) VerifiedPayload {
	return VerifiedPayload{raw: raw}
}

// Verify checks header against an HMAC-SHA256 of "<t>.<payload>" keyed by
// secret and rejects timestamps older than tolerance.
func Verify(payload []byte, header, secret string, tolerance time.Duration) (VerifiedPayload, error) {
	if err := webhook.ValidatePayloadWithTolerance(payload, header, secret, tolerance); err != nil {
		return VerifiedPayload{}, mapError(err)
	}
	return VerifiedPayload{raw: payload}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, webhook.ErrNotSigned), errors.Is(err, webhook.ErrInvalidHeader):
		return fmt.Errorf("%w (%v)", ErrMalformedHeader, err)
	case errors.Is(err, webhook.ErrTooOld):
		return ErrStaleTimestamp
	case errors.Is(err, webhook.ErrNoValidSignature):
		return ErrInvalidSignature
	default:
		return fmt.Errorf("%w: %v", ErrVerification, err)
	}
}

// Options configures a Verifier.
type Options struct {
	Secret    string
	Tolerance time.Duration
	// SkipVerification accepts every payload. Only valid without a secret.
	SkipVerification bool
}

// Verifier binds Verify to one gateway's settings.
type Verifier struct {
	opts Options
}

// NewVerifier rejects a bypass combined with a secret, and a missing secret
// without a bypass.
func NewVerifier(opts Options) (*Verifier, error) {
	if opts.SkipVerification && opts.Secret != "" {
		return nil, ErrBypassWithSecret
	}
	if !opts.SkipVerification && opts.Secret == "" {
		return nil, ErrMissingSecret
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	return &Verifier{opts: opts}, nil
}

// Verify authenticates one delivery, or passes it through flagged when
// verification is bypassed.
func (v *Verifier) Verify(payload []byte, header string) (VerifiedPayload, error) {
	if v.opts.SkipVerification {
		return VerifiedPayload{raw: payload, bypassed: true}, nil
	}
	return Verify(payload, header, v.opts.Secret, v.opts.Tolerance)
}
