package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Module error codes scoped by ModuleName.
// NOTE: Error code 1 is reserved by cosmos-sdk as internal error / unknown failure

var (
	ErrPayloadTooLarge         = errorsmod.Register(ModuleName, 2, "message payload too large")
	ErrInvalidChainId          = errorsmod.Register(ModuleName, 3, "invalid chain id")
	ErrInvalidProof            = errorsmod.Register(ModuleName, 4, "invalid proof")
	ErrKeyTooLarge             = errorsmod.Register(ModuleName, 5, "verification key too large")
	ErrInvalidKey              = errorsmod.Register(ModuleName, 6, "invalid verification key")
	ErrMessageNotFound         = errorsmod.Register(ModuleName, 7, "message not found")
	ErrProgramNotFound         = errorsmod.Register(ModuleName, 8, "program not found")
	ErrAlreadyVerified         = errorsmod.Register(ModuleName, 9, "message already verified")
	ErrInvalidStatusTransition = errorsmod.Register(ModuleName, 10, "invalid message status transition")
	ErrVerificationFailed      = errorsmod.Register(ModuleName, 11, "proof verification failed")
	ErrDuplicateMessage        = errorsmod.Register(ModuleName, 12, "message already submitted")
	ErrNonceMismatch           = errorsmod.Register(ModuleName, 13, "nonce mismatch")
	ErrProgramTooLarge         = errorsmod.Register(ModuleName, 14, "program too large")
	ErrProgramMismatch         = errorsmod.Register(ModuleName, 15, "program bytes do not match program id")
	ErrInsufficientDeposit     = errorsmod.Register(ModuleName, 16, "insufficient funds for message deposit")
	ErrInvalidParams           = errorsmod.Register(ModuleName, 17, "invalid params")
	ErrInvalidGenesis          = errorsmod.Register(ModuleName, 18, "invalid genesis state")
)
