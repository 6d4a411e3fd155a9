package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

// MessagesByStatus returns every message currently in the given status.
func (k *Keeper) MessagesByStatus(ctx context.Context, status types.Status) ([]types.Message, error) {
	var messages []types.Message
	err := k.messages.Walk(ctx, nil, func(_ []byte, msg types.Message) (bool, error) {
		if msg.Status == status {
			messages = append(messages, msg)
		}
		return false, nil
	})
	return messages, err
}

// GetNonce returns the next nonce the account must use for the chain.
func (k *Keeper) GetNonce(ctx context.Context, chain types.ChainID, account sdk.AccAddress) (uint64, error) {
	return k.nonces.Get(ctx, chain, account)
}

// GetVerificationKey returns the verification key registered for programID.
func (k *Keeper) GetVerificationKey(ctx context.Context, programID []byte) (types.VerificationKey, error) {
	return k.keys.Get(ctx, programID)
}

// GetProgram returns the program cached under programID if it is not stale at the
// current height.
func (k *Keeper) GetProgram(ctx context.Context, programID []byte) (types.CachedProgram, error) {
	return k.programs.Get(ctx, programID, blockHeight(ctx))
}
