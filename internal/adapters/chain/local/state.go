package local

import (
	"encoding/binary"
	"fmt"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

var (
	codeKeyPrefix    = []byte("host/code/")
	nonceKeyPrefix   = []byte("host/nonce/")
	receiptKeyPrefix = []byte("host/receipt/")
	headKey          = []byte("host/head")
)

type Block struct {
	Number    uint64
	Timestamp uint64
}

// storedReceipt is the RLP form of a receipt; the hash is the key.
type storedReceipt struct {
	From         common.Address
	To           common.Address
	BlockNumber  uint64
	Timestamp    uint64
	Status       uint64
	RevertReason string
}

func prefixed(prefix []byte, suffix []byte) []byte {
	key := make([]byte, 0, len(prefix)+len(suffix))
	key = append(key, prefix...)
	return append(key, suffix...)
}

func readUint64(r ports.StateReader, key []byte) (uint64, error) {
	raw, err := r.Get(key)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, fmt.Errorf("corrupt value at %q: %d bytes", key, len(raw))
	}

	return binary.BigEndian.Uint64(raw), nil
}

func readNonce(r ports.StateReader, account common.Address) (uint64, error) {
	nonce, err := readUint64(r, prefixed(nonceKeyPrefix, account.Bytes()))
	if err != nil {
		return 0, fmt.Errorf("read nonce: %w", err)
	}

	return nonce, nil
}

func writeNonce(tx ports.StateTx, account common.Address, nonce uint64) error {
	return tx.Set(prefixed(nonceKeyPrefix, account.Bytes()), binary.BigEndian.AppendUint64(nil, nonce))
}

func hasCode(r ports.StateReader, account common.Address) (bool, error) {
	raw, err := r.Get(prefixed(codeKeyPrefix, account.Bytes()))
	if err != nil {
		return false, fmt.Errorf("read code: %w", err)
	}

	return raw != nil, nil
}

func writeCode(tx ports.StateTx, account common.Address, protocolID uint64) error {
	return tx.Set(prefixed(codeKeyPrefix, account.Bytes()), binary.BigEndian.AppendUint64(nil, protocolID))
}

func readHead(r ports.StateReader) (Block, error) {
	raw, err := r.Get(headKey)
	if err != nil {
		return Block{}, fmt.Errorf("read head: %w", err)
	}
	if raw == nil {
		return Block{}, nil
	}
	if len(raw) != 16 {
		return Block{}, fmt.Errorf("corrupt head: %d bytes", len(raw))
	}

	return Block{
		Number:    binary.BigEndian.Uint64(raw[:8]),
		Timestamp: binary.BigEndian.Uint64(raw[8:]),
	}, nil
}

func writeHead(tx ports.StateTx, head Block) error {
	raw := binary.BigEndian.AppendUint64(nil, head.Number)
	raw = binary.BigEndian.AppendUint64(raw, head.Timestamp)
	return tx.Set(headKey, raw)
}

func readReceipt(r ports.StateReader, hash common.Hash) (domain.Receipt, bool, error) {
	raw, err := r.Get(prefixed(receiptKeyPrefix, hash.Bytes()))
	if err != nil {
		return domain.Receipt{}, false, fmt.Errorf("read receipt: %w", err)
	}
	if raw == nil {
		return domain.Receipt{}, false, nil
	}

	var stored storedReceipt
	if err := rlp.DecodeBytes(raw, &stored); err != nil {
		return domain.Receipt{}, false, fmt.Errorf("decode receipt: %w", err)
	}

	return domain.Receipt{
		TxHash:       hash,
		From:         stored.From,
		To:           stored.To,
		BlockNumber:  stored.BlockNumber,
		Timestamp:    stored.Timestamp,
		Status:       stored.Status,
		RevertReason: stored.RevertReason,
	}, true, nil
}

func writeReceipt(tx ports.StateTx, receipt domain.Receipt) error {
	raw, err := rlp.EncodeToBytes(storedReceipt{
		From:         receipt.From,
		To:           receipt.To,
		BlockNumber:  receipt.BlockNumber,
		Timestamp:    receipt.Timestamp,
		Status:       receipt.Status,
		RevertReason: receipt.RevertReason,
	})
	if err != nil {
		return fmt.Errorf("encode receipt: %w", err)
	}

	return tx.Set(prefixed(receiptKeyPrefix, receipt.TxHash.Bytes()), raw)
}
