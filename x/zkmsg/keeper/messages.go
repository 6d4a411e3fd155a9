package keeper

import (
	"bytes"
	"context"
	"time"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	metrics "github.com/hashicorp/go-metrics"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

// Submit records a new message, advancing the submitter's nonce for the source chain
// and reserving the message deposit. If the submission carries a proof the message is
// verified in the same call.
//
// A proof that the oracle rejects still commits the submission, now in the failed
// state, and ErrVerificationFailed is returned. Any other error leaves the store
// untouched.
func (k *Keeper) Submit(goCtx context.Context, sub types.Submission) (types.Message, error) {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), "submit")

	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := sub.ValidateBasic(k.params); err != nil {
		return types.Message{}, err
	}

	var envelope *types.ProofEnvelope
	if len(sub.Proof) > 0 {
		env, err := types.ParseProofEnvelope(sub.Proof)
		if err != nil {
			return types.Message{}, errorsmod.Wrap(types.ErrInvalidProof, err.Error())
		}
		envelope = &env
	}

	hash := sub.Hash()
	exists, err := k.messages.Has(ctx, hash)
	if err != nil {
		return types.Message{}, err
	}
	if exists {
		return types.Message{}, errorsmod.Wrapf(types.ErrDuplicateMessage, "message %s", types.EncodeHex(hash))
	}

	cacheCtx, write := ctx.CacheContext()

	if _, err := k.nonces.CheckAndAdvance(cacheCtx, sub.SourceChain, sub.Submitter, sub.Nonce); err != nil {
		return types.Message{}, err
	}

	deposit := k.params.MessageDeposit
	if err := k.reserveDeposit(cacheCtx, sub.Submitter, deposit); err != nil {
		return types.Message{}, err
	}

	msg := types.Message{
		SourceChain:      sub.SourceChain,
		DestinationChain: sub.DestinationChain,
		Payload:          sub.Payload,
		Submitter:        sub.Submitter.String(),
		Nonce:            sub.Nonce,
		Status:           types.StatusSubmitted,
		Proof:            sub.Proof,
		SubmittedHeight:  blockHeight(ctx),
		Deposit:          deposit.String(),
	}

	if err := k.messages.Set(cacheCtx, hash, msg); err != nil {
		return types.Message{}, err
	}

	EmitMessageSubmittedEvent(cacheCtx, hash, msg)

	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "messages_submitted"},
		1,
		[]metrics.Label{telemetry.NewLabel("source_chain", msg.SourceChain.String())},
	)

	if envelope == nil {
		write()
		k.Logger(ctx).Info("message submitted", "hash", types.EncodeHex(hash), "source_chain", msg.SourceChain, "nonce", msg.Nonce)
		return msg, nil
	}

	msg, err = k.verify(cacheCtx, hash, msg, *envelope)
	if err != nil && !errorsmod.IsOf(err, types.ErrVerificationFailed) {
		return types.Message{}, err
	}

	write()
	k.Logger(ctx).Info("message submitted", "hash", types.EncodeHex(hash), "source_chain", msg.SourceChain, "nonce", msg.Nonce, "status", msg.Status)

	return msg, err
}

// Verify checks a proof for a submitted message and moves it to a terminal state.
// If proof is empty the proof attached at submission is used. Any origin may trigger
// verification of the attached proof, but only the submitter may supply a different
// one. A message already in a terminal state is rejected without consulting the
// proof oracle.
//
// As with Submit, a rejected proof commits the failed state and returns
// ErrVerificationFailed.
func (k *Keeper) Verify(goCtx context.Context, origin sdk.AccAddress, hash, proof []byte) (types.Message, error) {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), "verify")

	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := sdk.VerifyAddressFormat(origin); err != nil {
		return types.Message{}, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "origin: %v", err)
	}

	msg, err := k.GetMessage(ctx, hash)
	if err != nil {
		return types.Message{}, err
	}

	switch msg.Status {
	case types.StatusSubmitted:
	case types.StatusVerified:
		return types.Message{}, errorsmod.Wrapf(types.ErrAlreadyVerified, "message %s", types.EncodeHex(hash))
	default:
		return types.Message{}, errorsmod.Wrapf(types.ErrInvalidStatusTransition, "message %s is %s", types.EncodeHex(hash), msg.Status)
	}

	if len(proof) == 0 {
		proof = msg.Proof
	} else if !bytes.Equal(proof, msg.Proof) && origin.String() != msg.Submitter {
		return types.Message{}, errorsmod.Wrapf(sdkerrors.ErrUnauthorized, "%s may not supply a proof for message %s", origin, types.EncodeHex(hash))
	}
	if len(proof) == 0 {
		return types.Message{}, errorsmod.Wrapf(types.ErrInvalidProof, "no proof supplied or attached for message %s", types.EncodeHex(hash))
	}

	envelope, err := types.ParseProofEnvelope(proof)
	if err != nil {
		return types.Message{}, errorsmod.Wrap(types.ErrInvalidProof, err.Error())
	}
	msg.Proof = proof

	cacheCtx, write := ctx.CacheContext()

	msg, err = k.verify(cacheCtx, hash, msg, envelope)
	if err != nil && !errorsmod.IsOf(err, types.ErrVerificationFailed) {
		return types.Message{}, err
	}

	write()
	k.Logger(ctx).Info("message verified", "hash", types.EncodeHex(hash), "status", msg.Status)

	return msg, err
}

// verify resolves the key and program for the envelope, consults the oracle and
// records the terminal state. Lookup failures return before any write.
func (k *Keeper) verify(ctx sdk.Context, hash []byte, msg types.Message, envelope types.ProofEnvelope) (types.Message, error) {
	vk, err := k.keys.Get(ctx, envelope.ProgramID)
	if err != nil {
		return msg, err
	}

	if vk.System() != envelope.System {
		return msg, errorsmod.Wrapf(types.ErrInvalidProof, "proof system %s does not match key system %s", envelope.System, vk.System())
	}

	oracle, ok := k.oracles.Get(vk.System())
	if !ok {
		return msg, errorsmod.Wrapf(types.ErrInvalidKey, "no oracle registered for %s", vk.System())
	}

	height := blockHeight(ctx)
	program, err := k.programs.Get(ctx, envelope.ProgramID, height)
	if err != nil {
		return msg, err
	}

	accepted, verifyErr := oracle.Verify(vk.Key(), program.Bytes, msg.PublicInputs(), envelope.Proof)

	if err := k.programs.MarkUsed(ctx, program); err != nil {
		return msg, err
	}

	msg.FinalizedHeight = height
	if accepted && verifyErr == nil {
		msg.Status = types.StatusVerified
	} else {
		msg.Status = types.StatusFailed
		msg.FailureReason = "proof rejected"
		if verifyErr != nil {
			msg.FailureReason = verifyErr.Error()
		}
	}

	if err := k.settleDeposit(ctx, msg); err != nil {
		return msg, err
	}

	if err := k.messages.Set(ctx, hash, msg); err != nil {
		return msg, err
	}

	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "messages_finalized"},
		1,
		[]metrics.Label{
			telemetry.NewLabel("source_chain", msg.SourceChain.String()),
			telemetry.NewLabel("status", msg.Status.String()),
		},
	)

	if msg.Status == types.StatusVerified {
		EmitMessageVerifiedEvent(ctx, hash, msg, envelope.ProgramID)
		return msg, nil
	}

	EmitMessageVerificationFailedEvent(ctx, hash, msg, envelope.ProgramID)
	return msg, errorsmod.Wrapf(types.ErrVerificationFailed, "message %s: %s", types.EncodeHex(hash), msg.FailureReason)
}

// GetMessage returns the message stored under hash.
func (k *Keeper) GetMessage(ctx context.Context, hash []byte) (types.Message, error) {
	msg, err := k.messages.Get(ctx, hash)
	if errorsmod.IsOf(err, collections.ErrNotFound) {
		return types.Message{}, errorsmod.Wrapf(types.ErrMessageNotFound, "message %s", types.EncodeHex(hash))
	}
	return msg, err
}
