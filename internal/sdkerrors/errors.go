// Package sdkerrors sorts failures from the ledger, wallet and FHE runtime
// into a small closed set of kinds that callers can act on, and recognises
// known third-party noise that should never reach a user.
package sdkerrors

import (
	"context"
	"errors"
	"net"
	"regexp"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindConnectivity  Kind = "connectivity"
	KindBenign        Kind = "benign"
	KindUnknown       Kind = "unknown"
)

var kindsBySentinel = []struct {
	err  error
	kind Kind
}{
	{domain.ErrInvalidSession, KindValidation},
	{domain.ErrIndexOutOfBounds, KindValidation},
	{domain.ErrRecordLimitReached, KindValidation},
	{domain.ErrRecordingInProgress, KindValidation},
	{domain.ErrInvalidProof, KindAuthorization},
	{domain.ErrDecryptionDenied, KindAuthorization},
	{domain.ErrWalletNotConnected, KindAuthorization},
	{domain.ErrNotDeployed, KindConnectivity},
	{domain.ErrEncryptionNotReady, KindConnectivity},
	{context.DeadlineExceeded, KindConnectivity},
}

var (
	errorNoise = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Analytics SDK`),
		regexp.MustCompile(`(?i)Failed to fetch.*coinbase`),
		regexp.MustCompile(`(?i)ERR_BLOCKED_BY_RESPONSE.*NotSameOriginAfterDefaultedToSameOriginByCoep`),
		regexp.MustCompile(`(?i)cca-lite\.coinbase\.com`),
		regexp.MustCompile(`(?i)coinbase.*analytics`),
		regexp.MustCompile(`(?i)AnalyticsSDKApiError`),
		regexp.MustCompile(`(?i)Parse event.*backward order`),
		regexp.MustCompile(`(?i)could not coalesce error`),
	}
	warnNoise = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Analytics SDK`),
	}
)

// Error is a collaborator failure tagged with the operation and its kind.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap tags err with op and its kind. Already wrapped errors keep their kind.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Op: op, Kind: KindOf(err), Err: err}
}

// KindOf returns the kind of a wrapped error, or classifies err.
func KindOf(err error) Kind {
	var sdkErr *Error
	if errors.As(err, &sdkErr) {
		return sdkErr.Kind
	}

	return Classify(err)
}

func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	for _, entry := range kindsBySentinel {
		if errors.Is(err, entry.err) {
			return entry.kind
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindConnectivity
	}

	if IsBenignError(err.Error()) {
		return KindBenign
	}

	return KindUnknown
}

func IsBenign(err error) bool {
	return err != nil && KindOf(err) == KindBenign
}

// IsBenignError reports whether an error message is known noise.
func IsBenignError(message string) bool {
	return matchesAny(errorNoise, message)
}

// IsBenignWarning reports whether a warning message is known noise.
func IsBenignWarning(message string) bool {
	return matchesAny(warnNoise, message)
}

func matchesAny(patterns []*regexp.Regexp, message string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(message) {
			return true
		}
	}

	return false
}
