package keeper

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

// EmitMessageSubmittedEvent emits an event to signal a new message entered the ledger.
func EmitMessageSubmittedEvent(ctx sdk.Context, hash []byte, msg types.Message) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeMessageSubmitted,
		sdk.NewAttribute(types.AttributeKeyHash, types.EncodeHex(hash)),
		sdk.NewAttribute(types.AttributeKeySourceChain, msg.SourceChain.String()),
		sdk.NewAttribute(types.AttributeKeyDestinationChain, msg.DestinationChain.String()),
		sdk.NewAttribute(types.AttributeKeySubmitter, msg.Submitter),
		sdk.NewAttribute(types.AttributeKeyNonce, strconv.FormatUint(msg.Nonce, 10)),
	))
}

// EmitMessageVerifiedEvent emits an event to signal a message proof was accepted.
func EmitMessageVerifiedEvent(ctx sdk.Context, hash []byte, msg types.Message, programID []byte) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeMessageVerified,
		sdk.NewAttribute(types.AttributeKeyHash, types.EncodeHex(hash)),
		sdk.NewAttribute(types.AttributeKeySourceChain, msg.SourceChain.String()),
		sdk.NewAttribute(types.AttributeKeyDestinationChain, msg.DestinationChain.String()),
		sdk.NewAttribute(types.AttributeKeyProgramID, types.EncodeHex(programID)),
		sdk.NewAttribute(types.AttributeKeyHeight, strconv.FormatUint(msg.FinalizedHeight, 10)),
	))
}

// EmitMessageVerificationFailedEvent emits an event to signal a message proof was rejected.
func EmitMessageVerificationFailedEvent(ctx sdk.Context, hash []byte, msg types.Message, programID []byte) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeMessageVerificationFailed,
		sdk.NewAttribute(types.AttributeKeyHash, types.EncodeHex(hash)),
		sdk.NewAttribute(types.AttributeKeySourceChain, msg.SourceChain.String()),
		sdk.NewAttribute(types.AttributeKeyDestinationChain, msg.DestinationChain.String()),
		sdk.NewAttribute(types.AttributeKeyProgramID, types.EncodeHex(programID)),
		sdk.NewAttribute(types.AttributeKeyHeight, strconv.FormatUint(msg.FinalizedHeight, 10)),
		sdk.NewAttribute(types.AttributeKeyError, msg.FailureReason),
	))
}

// EmitVerificationKeyAddedEvent emits an event to signal a verification key was registered.
func EmitVerificationKeyAddedEvent(ctx sdk.Context, vk types.VerificationKey) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeVerificationKeyAdded,
		sdk.NewAttribute(types.AttributeKeyProgramID, types.EncodeHex(vk.ProgramID)),
		sdk.NewAttribute(types.AttributeKeyProofSystem, vk.System().String()),
		sdk.NewAttribute(types.AttributeKeyHeight, strconv.FormatUint(vk.RegisteredHeight, 10)),
	))
}

// EmitProgramCachedEvent emits an event to signal a program was cached.
func EmitProgramCachedEvent(ctx sdk.Context, entry types.CachedProgram) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeProgramCached,
		sdk.NewAttribute(types.AttributeKeyProgramID, types.EncodeHex(entry.ProgramID)),
		sdk.NewAttribute(types.AttributeKeyHeight, strconv.FormatUint(entry.CachedHeight, 10)),
	))
}
