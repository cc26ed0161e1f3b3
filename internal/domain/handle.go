package domain

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// HandleLength is the width of a ciphertext handle in bytes.
const HandleLength = 32

// Handle is an opaque reference to a ciphertext held by the FHE runtime.
// The ledger stores and returns handles but never interprets them.
type Handle [HandleLength]byte

func BytesToHandle(b []byte) Handle {
	var h Handle
	if len(b) > HandleLength {
		b = b[len(b)-HandleLength:]
	}
	copy(h[HandleLength-len(b):], b)
	return h
}

func ParseHandle(raw string) (Handle, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	if len(trimmed) != HandleLength*2 {
		return Handle{}, fmt.Errorf("invalid handle length %d", len(trimmed))
	}

	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return Handle{}, fmt.Errorf("decode handle: %w", err)
	}

	return BytesToHandle(decoded), nil
}

func (h Handle) IsZero() bool {
	return h == Handle{}
}

func (h Handle) Bytes() []byte {
	return h[:]
}

func (h Handle) Hex() string {
	return common.Hash(h).Hex()
}

func (h Handle) String() string {
	return h.Hex()
}

func (h Handle) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

func (h *Handle) UnmarshalText(text []byte) error {
	parsed, err := ParseHandle(string(text))
	if err != nil {
		return err
	}

	*h = parsed
	return nil
}
