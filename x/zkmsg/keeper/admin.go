package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

// AddVerificationKey registers keyBytes as the verification key for programID on
// behalf of authority, replacing any existing key.
func (k *Keeper) AddVerificationKey(goCtx context.Context, authority string, programID, keyBytes, metadata []byte) (types.VerificationKey, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if !k.authorizer.IsAuthorized(ctx, authority) {
		return types.VerificationKey{}, errorsmod.Wrapf(sdkerrors.ErrUnauthorized, "%s may not add verification keys", authority)
	}

	vk, err := k.keys.Add(ctx, programID, keyBytes, metadata)
	if err != nil {
		return types.VerificationKey{}, err
	}

	EmitVerificationKeyAddedEvent(ctx, vk)
	k.Logger(ctx).Info("verification key added", "program_id", types.EncodeHex(programID), "proof_system", vk.System())

	return vk, nil
}

// CacheProgram stores program under programID on behalf of authority. programID
// must be the SHA-256 hash of program.
func (k *Keeper) CacheProgram(goCtx context.Context, authority string, programID, program []byte) (types.CachedProgram, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if !k.authorizer.IsAuthorized(ctx, authority) {
		return types.CachedProgram{}, errorsmod.Wrapf(sdkerrors.ErrUnauthorized, "%s may not cache programs", authority)
	}

	entry, err := k.programs.Cache(ctx, programID, program)
	if err != nil {
		return types.CachedProgram{}, err
	}

	EmitProgramCachedEvent(ctx, entry)
	k.Logger(ctx).Info("program cached", "program_id", types.EncodeHex(programID), "size", len(program))

	return entry, nil
}
