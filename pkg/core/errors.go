package core

import (
	"errors"
	"fmt"
)

// Error taxonomy. Concrete errors wrap one of these with %w.
var (
	// ErrNetworkFailure covers non-2xx responses, timeouts and connectivity errors.
	ErrNetworkFailure = errors.New("network failure")
	// ErrParseFailure covers malformed JSON payloads and scripts.
	ErrParseFailure = errors.New("parse failure")
	// ErrEmptyResult means the payload was well-formed but held no usable entities.
	ErrEmptyResult = errors.New("empty result")
	// ErrConfigMissing means no source or script was provided at all.
	ErrConfigMissing = errors.New("config missing")
)

// TierError records why one tier of a fallback chain did not answer.
type TierError struct {
	Tier string
	Err  error
}

func (e *TierError) Error() string {
	return fmt.Sprintf("tier %s: %v", e.Tier, e.Err)
}

func (e *TierError) Unwrap() error {
	return e.Err
}

// Classify returns the taxonomy sentinel wrapped by err, or nil if none matches.
func Classify(err error) error {
	for _, kind := range []error{ErrNetworkFailure, ErrParseFailure, ErrEmptyResult, ErrConfigMissing} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
