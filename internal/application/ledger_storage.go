package application

import (
	"encoding/binary"
	"fmt"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/ethereum/go-ethereum/common"
)

const recordEncodedLength = 3*domain.HandleLength + 8

var (
	ledgerKeyPrefix = []byte("ledger/")
	countSegment    = []byte("/count/")
	recordSegment   = []byte("/rec/")
)

func countKey(contract, owner common.Address) []byte {
	key := make([]byte, 0, len(ledgerKeyPrefix)+common.AddressLength*2+len(countSegment))
	key = append(key, ledgerKeyPrefix...)
	key = append(key, contract.Bytes()...)
	key = append(key, countSegment...)
	key = append(key, owner.Bytes()...)
	return key
}

// recordPrefix covers every record of owner; indexes are big-endian so the
// keys sort in append order.
func recordPrefix(contract, owner common.Address) []byte {
	key := make([]byte, 0, len(ledgerKeyPrefix)+common.AddressLength*2+len(recordSegment)+8)
	key = append(key, ledgerKeyPrefix...)
	key = append(key, contract.Bytes()...)
	key = append(key, recordSegment...)
	return append(key, owner.Bytes()...)
}

func recordKey(contract, owner common.Address, index uint64) []byte {
	return binary.BigEndian.AppendUint64(recordPrefix(contract, owner), index)
}

func readCount(r ports.StateReader, contract, owner common.Address) (uint64, error) {
	raw, err := r.Get(countKey(contract, owner))
	if err != nil {
		return 0, fmt.Errorf("read record count: %w", err)
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, fmt.Errorf("corrupt record count for %s: %d bytes", owner.Hex(), len(raw))
	}

	return binary.BigEndian.Uint64(raw), nil
}

func writeCount(tx ports.StateTx, contract, owner common.Address, count uint64) error {
	if err := tx.Set(countKey(contract, owner), binary.BigEndian.AppendUint64(nil, count)); err != nil {
		return fmt.Errorf("write record count: %w", err)
	}

	return nil
}

func readRecord(r ports.StateReader, contract, owner common.Address, index uint64) (domain.Record, error) {
	raw, err := r.Get(recordKey(contract, owner, index))
	if err != nil {
		return domain.Record{}, fmt.Errorf("read record %d: %w", index, err)
	}
	if raw == nil {
		return domain.Record{}, fmt.Errorf("record %d of %s missing below count", index, owner.Hex())
	}

	return decodeRecord(owner, raw)
}

// scanRecords reads owner's records in index order with one prefix scan.
func scanRecords(r ports.StateReader, contract, owner common.Address, count uint64) (domain.RecordColumns, error) {
	columns := domain.NewRecordColumns(int(count))
	prefix := recordPrefix(contract, owner)

	var next uint64
	err := r.Iterate(prefix, func(key, value []byte) error {
		if len(key) != len(prefix)+8 {
			return fmt.Errorf("corrupt record key %x", key)
		}
		index := binary.BigEndian.Uint64(key[len(prefix):])
		if index != next || index >= count {
			return fmt.Errorf("record %d of %s missing below count", next, owner.Hex())
		}

		record, err := decodeRecord(owner, value)
		if err != nil {
			return fmt.Errorf("read record %d: %w", index, err)
		}
		columns.Append(record)
		next++
		return nil
	})
	if err != nil {
		return domain.RecordColumns{}, err
	}
	if next != count {
		return domain.RecordColumns{}, fmt.Errorf("record %d of %s missing below count", next, owner.Hex())
	}

	return columns, nil
}

func writeRecord(tx ports.StateTx, contract common.Address, index uint64, record domain.Record) error {
	if err := tx.Set(recordKey(contract, record.Owner, index), encodeRecord(record)); err != nil {
		return fmt.Errorf("write record %d: %w", index, err)
	}

	return nil
}

func encodeRecord(record domain.Record) []byte {
	buf := make([]byte, 0, recordEncodedLength)
	buf = append(buf, record.Weight.Bytes()...)
	buf = append(buf, record.Sets.Bytes()...)
	buf = append(buf, record.Reps.Bytes()...)
	return binary.BigEndian.AppendUint64(buf, record.Timestamp)
}

func decodeRecord(owner common.Address, raw []byte) (domain.Record, error) {
	if len(raw) != recordEncodedLength {
		return domain.Record{}, fmt.Errorf("corrupt record: %d bytes", len(raw))
	}

	const n = domain.HandleLength
	return domain.Record{
		Owner:     owner,
		Weight:    domain.BytesToHandle(raw[0:n]),
		Sets:      domain.BytesToHandle(raw[n : 2*n]),
		Reps:      domain.BytesToHandle(raw[2*n : 3*n]),
		Timestamp: binary.BigEndian.Uint64(raw[3*n:]),
	}, nil
}
