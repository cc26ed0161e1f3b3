package ports

import "github.com/ethereum/go-ethereum/common"

type Signer interface {
	Address() common.Address
	ChainID() uint64
	// SignHash returns a 65-byte [R || S || V] secp256k1 signature over a 32-byte digest.
	SignHash(hash []byte) ([]byte, error)
}
