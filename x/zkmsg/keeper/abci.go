package keeper

import (
	"context"
	"time"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

// EndBlocker contains the implementation of the appmodule.HasEndBlocker interface.
// When stale program pruning is enabled, programs that have outlived MaxProgramAge
// are deleted. Stale entries are already unusable so pruning only reclaims storage.
func (k *Keeper) EndBlocker(goCtx context.Context) error {
	if !k.params.PruneStalePrograms {
		return nil
	}

	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), telemetry.MetricKeyEndBlocker)

	ctx := sdk.UnwrapSDKContext(goCtx)

	pruned, err := k.programs.PruneStale(ctx, blockHeight(ctx))
	if err != nil {
		return err
	}

	if pruned > 0 {
		telemetry.IncrCounter(float32(pruned), types.ModuleName, "programs_pruned")
		k.Logger(ctx).Debug("pruned stale programs", "count", pruned, "height", ctx.BlockHeight())
	}

	return nil
}
