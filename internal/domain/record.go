package domain

import "github.com/ethereum/go-ethereum/common"

// ProtocolID identifies the ledger's logic version to the FHE tooling.
const ProtocolID uint64 = 10001

type Record struct {
	Owner     common.Address
	Weight    Handle
	Sets      Handle
	Reps      Handle
	Timestamp uint64
}

// RecordColumns holds an owner's records as four parallel sequences in insertion order.
type RecordColumns struct {
	Weights    []Handle
	Sets       []Handle
	Reps       []Handle
	Timestamps []uint64
}

func NewRecordColumns(capacity int) RecordColumns {
	return RecordColumns{
		Weights:    make([]Handle, 0, capacity),
		Sets:       make([]Handle, 0, capacity),
		Reps:       make([]Handle, 0, capacity),
		Timestamps: make([]uint64, 0, capacity),
	}
}

func (c *RecordColumns) Append(r Record) {
	c.Weights = append(c.Weights, r.Weight)
	c.Sets = append(c.Sets, r.Sets)
	c.Reps = append(c.Reps, r.Reps)
	c.Timestamps = append(c.Timestamps, r.Timestamp)
}

func (c RecordColumns) Len() int {
	return len(c.Timestamps)
}

// At rebuilds the i-th record. It panics when i is out of range.
func (c RecordColumns) At(owner common.Address, i int) Record {
	return Record{
		Owner:     owner,
		Weight:    c.Weights[i],
		Sets:      c.Sets[i],
		Reps:      c.Reps[i],
		Timestamp: c.Timestamps[i],
	}
}

// EncryptedField is one ciphertext handle with the proof binding it to a contract and caller.
type EncryptedField struct {
	Handle Handle
	Proof  []byte
}

type EncryptedInput struct {
	Weight EncryptedField
	Sets   EncryptedField
	Reps   EncryptedField
}

func (in EncryptedInput) Fields() []EncryptedField {
	return []EncryptedField{in.Weight, in.Sets, in.Reps}
}
