package domain

import (
	"fmt"
	"time"
)

// TrainingSession is the plaintext a user enters before encryption.
type TrainingSession struct {
	Weight uint32
	Sets   uint32
	Reps   uint32
}

func (s TrainingSession) Validate() error {
	if s.Weight == 0 || s.Sets == 0 || s.Reps == 0 {
		return fmt.Errorf("%w: all values must be greater than 0", ErrInvalidSession)
	}

	return nil
}

type DecryptedRecord struct {
	Index     uint64
	Timestamp uint64
	Session   TrainingSession
}

func (r DecryptedRecord) RecordedAt() time.Time {
	return TimestampToTime(r.Timestamp)
}

func TimestampToTime(ts uint64) time.Time {
	return time.Unix(int64(ts), 0).UTC()
}
