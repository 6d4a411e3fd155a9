package keeper

import (
	"context"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

// SetMessage is a test func used for setting a message in the store collection.
func (k *Keeper) SetMessage(ctx context.Context, msg types.Message) error {
	return k.messages.Set(ctx, msg.Hash(), msg)
}

// SetProgram is a test func used for setting a cached program in the store collection.
func (k *Keeper) SetProgram(ctx context.Context, entry types.CachedProgram) error {
	return k.programs.set(ctx, entry)
}
