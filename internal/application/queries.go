package application

import (
	"time"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/ethereum/go-ethereum/common"
)

type TrackerStatus struct {
	Connected  bool
	Account    common.Address
	ChainID    uint64
	ChainName  string
	Deployment *domain.Deployment
	Recording  bool
	CanRecord  bool
	// Reason names the first blocker when CanRecord is false.
	Reason string
}

type HistoryQuery struct {
	// Owner defaults to the connected wallet when zero.
	Owner   common.Address
	Decrypt bool
}

type RecordView struct {
	Index     uint64
	Timestamp uint64
	Record    domain.Record
}

func (v RecordView) RecordedAt() time.Time {
	return domain.TimestampToTime(v.Timestamp)
}

type HistoryEntry struct {
	RecordView
	// Session is set only when the history was decrypted.
	Session *domain.TrainingSession
}
