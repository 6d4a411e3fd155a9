package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

// InitGenesis initialises the module genesis state.
func (k *Keeper) InitGenesis(ctx context.Context, gs *types.GenesisState) error {
	if err := gs.Validate(k.params); err != nil {
		return err
	}

	for _, msg := range gs.Messages {
		if err := k.messages.Set(ctx, msg.Hash(), msg); err != nil {
			return err
		}
	}

	for _, entry := range gs.Nonces {
		account, err := sdk.AccAddressFromBech32(entry.Account)
		if err != nil {
			return err
		}

		if err := k.nonces.set(ctx, entry.Chain, account, entry.Nonce); err != nil {
			return err
		}
	}

	for _, vk := range gs.VerificationKeys {
		if err := k.keys.set(ctx, vk); err != nil {
			return err
		}
	}

	for _, program := range gs.Programs {
		if err := k.programs.set(ctx, program); err != nil {
			return err
		}
	}

	return nil
}

// ExportGenesis outputs the modules state for genesis exports.
func (k *Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	gs := types.DefaultGenesis()

	if err := k.messages.Walk(ctx, nil, func(_ []byte, msg types.Message) (bool, error) {
		gs.Messages = append(gs.Messages, msg)
		return false, nil
	}); err != nil {
		return nil, err
	}

	if err := k.nonces.walk(ctx, func(chain types.ChainID, account sdk.AccAddress, nonce uint64) error {
		gs.Nonces = append(gs.Nonces, types.NonceEntry{Chain: chain, Account: account.String(), Nonce: nonce})
		return nil
	}); err != nil {
		return nil, err
	}

	if err := k.keys.walk(ctx, func(vk types.VerificationKey) error {
		gs.VerificationKeys = append(gs.VerificationKeys, vk)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := k.programs.walk(ctx, func(entry types.CachedProgram) error {
		gs.Programs = append(gs.Programs, entry)
		return nil
	}); err != nil {
		return nil, err
	}

	return gs, nil
}
