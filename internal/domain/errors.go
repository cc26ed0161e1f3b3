package domain

import "errors"

// Reverts raised by the ledger carry these messages verbatim as revert reasons.
var (
	ErrIndexOutOfBounds   = errors.New("Record index out of bounds")
	ErrInvalidProof       = errors.New("Invalid input proof")
	ErrRecordLimitReached = errors.New("Record limit reached")
)

var (
	ErrNotDeployed         = errors.New("contract not deployed on this network")
	ErrWalletNotConnected  = errors.New("wallet not connected")
	ErrEncryptionNotReady  = errors.New("encryption runtime not initialized")
	ErrRecordingInProgress = errors.New("recording already in progress")
	ErrInvalidSession      = errors.New("invalid training session")
	ErrDecryptionDenied    = errors.New("decryption not permitted")
	ErrDeploymentNotFound  = errors.New("deployment not found")
	ErrSecretNotFound      = errors.New("secret not found")
)
