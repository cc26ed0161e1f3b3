package contract

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/ethereum/go-ethereum/common"
)

var ErrUnknownMethod = errors.New("unknown ledger method")

// Call is decoded ledger calldata. Only the fields the method takes are set.
type Call struct {
	Method string
	Owner  common.Address
	// Index saturates at MaxUint64 for larger uint256 values, which no
	// owner's record count can reach.
	Index uint64
	Input domain.EncryptedInput
}

func PackRecordTraining(in domain.EncryptedInput) ([]byte, error) {
	data, err := ledgerABI.Pack(MethodRecordTraining,
		[32]byte(in.Weight.Handle),
		[32]byte(in.Sets.Handle),
		[32]byte(in.Reps.Handle),
		in.Weight.Proof,
		in.Sets.Proof,
		in.Reps.Proof,
	)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", MethodRecordTraining, err)
	}

	return data, nil
}

func PackGetRecord(owner common.Address, index uint64) ([]byte, error) {
	data, err := ledgerABI.Pack(MethodGetRecord, owner, new(big.Int).SetUint64(index))
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", MethodGetRecord, err)
	}

	return data, nil
}

func PackGetAllRecords(owner common.Address) ([]byte, error) {
	data, err := ledgerABI.Pack(MethodGetAllRecords, owner)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", MethodGetAllRecords, err)
	}

	return data, nil
}

func PackGetRecordCount(owner common.Address) ([]byte, error) {
	data, err := ledgerABI.Pack(MethodGetRecordCount, owner)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", MethodGetRecordCount, err)
	}

	return data, nil
}

func PackProtocolID() ([]byte, error) {
	data, err := ledgerABI.Pack(MethodProtocolID)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", MethodProtocolID, err)
	}

	return data, nil
}

// ParseCall decodes calldata by its 4-byte selector.
func ParseCall(data []byte) (Call, error) {
	if len(data) < 4 {
		return Call{}, fmt.Errorf("%w: calldata is %d bytes", ErrUnknownMethod, len(data))
	}

	method, err := ledgerABI.MethodById(data[:4])
	if err != nil {
		return Call{}, fmt.Errorf("%w: %v", ErrUnknownMethod, err)
	}

	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return Call{}, fmt.Errorf("unpack %s arguments: %w", method.Name, err)
	}

	call := Call{Method: method.Name}
	switch method.Name {
	case MethodRecordTraining:
		handles := make([]domain.Handle, 3)
		for i := range handles {
			raw, ok := args[i].([32]byte)
			if !ok {
				return Call{}, fmt.Errorf("unpack %s argument %d: unexpected %T", method.Name, i, args[i])
			}
			handles[i] = domain.Handle(raw)
		}
		proofs := make([][]byte, 3)
		for i := range proofs {
			raw, ok := args[3+i].([]byte)
			if !ok {
				return Call{}, fmt.Errorf("unpack %s argument %d: unexpected %T", method.Name, 3+i, args[3+i])
			}
			proofs[i] = raw
		}
		call.Input = domain.EncryptedInput{
			Weight: domain.EncryptedField{Handle: handles[0], Proof: proofs[0]},
			Sets:   domain.EncryptedField{Handle: handles[1], Proof: proofs[1]},
			Reps:   domain.EncryptedField{Handle: handles[2], Proof: proofs[2]},
		}
	case MethodGetRecord:
		owner, err := addressArg(method.Name, args, 0)
		if err != nil {
			return Call{}, err
		}
		index, ok := args[1].(*big.Int)
		if !ok {
			return Call{}, fmt.Errorf("unpack %s argument 1: unexpected %T", method.Name, args[1])
		}
		call.Owner = owner
		call.Index = saturateUint64(index)
	case MethodGetAllRecords, MethodGetRecordCount:
		owner, err := addressArg(method.Name, args, 0)
		if err != nil {
			return Call{}, err
		}
		call.Owner = owner
	case MethodProtocolID:
	default:
		return Call{}, fmt.Errorf("%w: %s", ErrUnknownMethod, method.Name)
	}

	return call, nil
}

func EncodeRecord(record domain.Record) ([]byte, error) {
	return packOutputs(MethodGetRecord,
		[32]byte(record.Weight),
		[32]byte(record.Sets),
		[32]byte(record.Reps),
		new(big.Int).SetUint64(record.Timestamp),
	)
}

func EncodeColumns(columns domain.RecordColumns) ([]byte, error) {
	timestamps := make([]*big.Int, len(columns.Timestamps))
	for i, ts := range columns.Timestamps {
		timestamps[i] = new(big.Int).SetUint64(ts)
	}

	return packOutputs(MethodGetAllRecords,
		handleWords(columns.Weights),
		handleWords(columns.Sets),
		handleWords(columns.Reps),
		timestamps,
	)
}

// EncodeUint encodes the single uint256 result of getRecordCount or protocolId.
func EncodeUint(method string, value uint64) ([]byte, error) {
	return packOutputs(method, new(big.Int).SetUint64(value))
}

func DecodeRecord(owner common.Address, out []byte) (domain.Record, error) {
	values, err := ledgerABI.Unpack(MethodGetRecord, out)
	if err != nil {
		return domain.Record{}, fmt.Errorf("unpack %s: %w", MethodGetRecord, err)
	}
	if len(values) != 4 {
		return domain.Record{}, fmt.Errorf("unpack %s: got %d values", MethodGetRecord, len(values))
	}

	handles := make([]domain.Handle, 3)
	for i := range handles {
		raw, ok := values[i].([32]byte)
		if !ok {
			return domain.Record{}, fmt.Errorf("unpack %s value %d: unexpected %T", MethodGetRecord, i, values[i])
		}
		handles[i] = domain.Handle(raw)
	}
	ts, ok := values[3].(*big.Int)
	if !ok {
		return domain.Record{}, fmt.Errorf("unpack %s timestamp: unexpected %T", MethodGetRecord, values[3])
	}

	return domain.Record{
		Owner:     owner,
		Weight:    handles[0],
		Sets:      handles[1],
		Reps:      handles[2],
		Timestamp: ts.Uint64(),
	}, nil
}

func DecodeColumns(out []byte) (domain.RecordColumns, error) {
	values, err := ledgerABI.Unpack(MethodGetAllRecords, out)
	if err != nil {
		return domain.RecordColumns{}, fmt.Errorf("unpack %s: %w", MethodGetAllRecords, err)
	}
	if len(values) != 4 {
		return domain.RecordColumns{}, fmt.Errorf("unpack %s: got %d values", MethodGetAllRecords, len(values))
	}

	columns := make([][]domain.Handle, 3)
	for i := range columns {
		words, ok := values[i].([][32]byte)
		if !ok {
			return domain.RecordColumns{}, fmt.Errorf("unpack %s value %d: unexpected %T", MethodGetAllRecords, i, values[i])
		}
		columns[i] = make([]domain.Handle, len(words))
		for j, word := range words {
			columns[i][j] = domain.Handle(word)
		}
	}
	rawTimestamps, ok := values[3].([]*big.Int)
	if !ok {
		return domain.RecordColumns{}, fmt.Errorf("unpack %s timestamps: unexpected %T", MethodGetAllRecords, values[3])
	}
	timestamps := make([]uint64, len(rawTimestamps))
	for i, ts := range rawTimestamps {
		timestamps[i] = ts.Uint64()
	}

	n := len(timestamps)
	if len(columns[0]) != n || len(columns[1]) != n || len(columns[2]) != n {
		return domain.RecordColumns{}, fmt.Errorf("unpack %s: column lengths differ", MethodGetAllRecords)
	}

	return domain.RecordColumns{
		Weights:    columns[0],
		Sets:       columns[1],
		Reps:       columns[2],
		Timestamps: timestamps,
	}, nil
}

func DecodeUint(method string, out []byte) (uint64, error) {
	values, err := ledgerABI.Unpack(method, out)
	if err != nil {
		return 0, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) != 1 {
		return 0, fmt.Errorf("unpack %s: got %d values", method, len(values))
	}

	value, ok := values[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("unpack %s: unexpected %T", method, values[0])
	}
	if !value.IsUint64() {
		return 0, fmt.Errorf("unpack %s: %s overflows uint64", method, value)
	}

	return value.Uint64(), nil
}

func packOutputs(method string, values ...interface{}) ([]byte, error) {
	m, ok := ledgerABI.Methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}

	out, err := m.Outputs.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("pack %s result: %w", method, err)
	}

	return out, nil
}

func addressArg(method string, args []interface{}, i int) (common.Address, error) {
	owner, ok := args[i].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unpack %s argument %d: unexpected %T", method, i, args[i])
	}

	return owner, nil
}

func handleWords(handles []domain.Handle) [][32]byte {
	words := make([][32]byte, len(handles))
	for i, h := range handles {
		words[i] = [32]byte(h)
	}

	return words
}

func saturateUint64(v *big.Int) uint64 {
	if v.Sign() < 0 {
		return 0
	}
	if !v.IsUint64() {
		return math.MaxUint64
	}

	return v.Uint64()
}
