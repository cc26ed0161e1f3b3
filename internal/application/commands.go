package application

import "github.com/bnema/fhe-strength-tracker/internal/domain"

type RecordTrainingCommand struct {
	Weight uint32
	Sets   uint32
	Reps   uint32

	// Progress, when set, is called as RecordTraining enters each phase.
	Progress func(RecordPhase)
}

type RecordPhase int

const (
	RecordPhaseEncrypting RecordPhase = iota + 1
	RecordPhaseSubmitting
)

func (p RecordPhase) String() string {
	switch p {
	case RecordPhaseEncrypting:
		return "encrypting"
	case RecordPhaseSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

func (c RecordTrainingCommand) report(phase RecordPhase) {
	if c.Progress != nil {
		c.Progress(phase)
	}
}

func (c RecordTrainingCommand) Session() domain.TrainingSession {
	return domain.TrainingSession{Weight: c.Weight, Sets: c.Sets, Reps: c.Reps}
}

type RecordTrainingResult struct {
	Session  domain.TrainingSession
	Contract domain.Deployment
	Receipt  domain.Receipt
}
