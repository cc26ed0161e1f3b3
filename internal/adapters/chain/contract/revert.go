package contract

import (
	"errors"
	"fmt"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]
	revertArgs     = mustRevertArgs()
)

// reverts are the ledger's revert reasons in the order they are matched.
var reverts = []error{
	domain.ErrIndexOutOfBounds,
	domain.ErrInvalidProof,
	domain.ErrRecordLimitReached,
}

func mustRevertArgs() abi.Arguments {
	stringType, err := abi.NewType("string", "", nil)
	if err != nil {
		panic(fmt.Sprintf("build revert type: %v", err))
	}

	return abi.Arguments{{Type: stringType}}
}

// RevertError is a failed ledger execution. It unwraps to the matching
// domain error when the reason is one the ledger raises.
type RevertError struct {
	Reason string
	Data   []byte
}

func (e *RevertError) Error() string {
	return "execution reverted: " + e.Reason
}

func (e *RevertError) Unwrap() error {
	return ErrorFromReason(e.Reason)
}

// RevertReason is the reason string recorded for err. Ledger errors keep
// their bare message so clients can match them.
func RevertReason(err error) string {
	for _, known := range reverts {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return err.Error()
}

// ErrorFromReason maps a revert reason back to its domain error, or nil.
func ErrorFromReason(reason string) error {
	for _, known := range reverts {
		if reason == known.Error() {
			return known
		}
	}

	return nil
}

// EncodeRevert returns Error(string) revert data for reason.
func EncodeRevert(reason string) []byte {
	packed, err := revertArgs.Pack(reason)
	if err != nil {
		return append([]byte(nil), revertSelector...)
	}

	return append(append([]byte(nil), revertSelector...), packed...)
}

// NewRevertError builds the error a caller sees for a failed execution.
func NewRevertError(err error) *RevertError {
	reason := RevertReason(err)
	return &RevertError{Reason: reason, Data: EncodeRevert(reason)}
}
