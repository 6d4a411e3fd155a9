package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

// reserveDeposit moves the message deposit from the submitter into the module account.
func (k *Keeper) reserveDeposit(ctx context.Context, submitter sdk.AccAddress, deposit sdk.Coin) error {
	if deposit.IsZero() {
		return nil
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, submitter, types.ModuleName, sdk.NewCoins(deposit)); err != nil {
		return errorsmod.Wrapf(types.ErrInsufficientDeposit, "reserving %s from %s: %v", deposit, submitter, err)
	}

	return nil
}

// settleDeposit releases the deposit held for a message that has just reached a
// terminal state. Verified messages are refunded; failed messages are refunded or
// burned according to the failed deposit policy.
func (k *Keeper) settleDeposit(ctx context.Context, msg types.Message) error {
	deposit, err := msg.DepositCoin()
	if err != nil {
		return err
	}

	if deposit.IsZero() {
		return nil
	}

	if msg.Status == types.StatusFailed && k.params.FailedDepositPolicy == types.FailedDepositSlash {
		return k.bankKeeper.BurnCoins(ctx, types.ModuleName, sdk.NewCoins(deposit))
	}

	submitter, err := msg.SubmitterAddress()
	if err != nil {
		return err
	}

	return k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, submitter, sdk.NewCoins(deposit))
}
