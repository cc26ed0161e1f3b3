package domain

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

const (
	ChainIDHardhat uint64 = 31337
	ChainIDSepolia uint64 = 11155111
)

type Chain struct {
	ID   uint64
	Name string
}

var knownChains = map[uint64]string{
	ChainIDHardhat: "hardhat",
	ChainIDSepolia: "sepolia",
}

func ChainName(id uint64) string {
	if name, ok := knownChains[id]; ok {
		return name
	}

	return fmt.Sprintf("chain-%d", id)
}

type Deployment struct {
	Chain      Chain
	Address    common.Address
	ProtocolID uint64
	DeployedAt time.Time
}

// Deployed reports whether the address book holds a usable address. A zero
// address is the placeholder written for chains without a deployment.
func (d Deployment) Deployed() bool {
	return d.Address != (common.Address{})
}

type Transaction struct {
	ChainID uint64
	Nonce   uint64
	To      common.Address
	Data    []byte
}

// SigningHash is the digest a sender signs: keccak256(rlp(chainId, nonce, to, data)).
func (tx Transaction) SigningHash() common.Hash {
	return rlpHash([]interface{}{tx.ChainID, tx.Nonce, tx.To, tx.Data})
}

type SignedTransaction struct {
	Transaction
	Signature []byte
}

func (tx SignedTransaction) Hash() common.Hash {
	return rlpHash([]interface{}{tx.ChainID, tx.Nonce, tx.To, tx.Data, tx.Signature})
}

// Sender recovers the address that signed tx.
func (tx SignedTransaction) Sender() (common.Address, error) {
	if len(tx.Signature) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature is %d bytes", len(tx.Signature))
	}

	pub, err := crypto.SigToPub(tx.SigningHash().Bytes(), tx.Signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("recover sender: %w", err)
	}

	return crypto.PubkeyToAddress(*pub), nil
}

func rlpHash(v interface{}) common.Hash {
	encoded, err := rlp.EncodeToBytes(v)
	if err != nil {
		// Only integers, addresses and byte slices are encoded here.
		panic(fmt.Sprintf("rlp encode transaction: %v", err))
	}

	return crypto.Keccak256Hash(encoded)
}

const (
	ReceiptStatusFailed     uint64 = 0
	ReceiptStatusSuccessful uint64 = 1
)

type Receipt struct {
	TxHash       common.Hash
	From         common.Address
	To           common.Address
	BlockNumber  uint64
	Timestamp    uint64
	Status       uint64
	RevertReason string
}

func (r Receipt) Succeeded() bool {
	return r.Status == ReceiptStatusSuccessful
}
