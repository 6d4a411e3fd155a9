package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// NonceEntry is the tracked nonce of one (chain, account) pair.
type NonceEntry struct {
	Chain   ChainID `json:"chain"`
	Account string  `json:"account"`
	Nonce   uint64  `json:"nonce"`
}

// GenesisState is the exported state of all four module tables.
type GenesisState struct {
	Messages         []Message         `json:"messages"`
	Nonces           []NonceEntry      `json:"nonces"`
	VerificationKeys []VerificationKey `json:"verification_keys"`
	Programs         []CachedProgram   `json:"programs"`
}

// DefaultGenesis returns the default module genesis.
func DefaultGenesis() *GenesisState {
	return &GenesisState{}
}

// Validate performs basic genesis state validation against the given params.
func (gs GenesisState) Validate(params Params) error {
	messages := make(map[string]struct{}, len(gs.Messages))
	for i, msg := range gs.Messages {
		if !msg.SourceChain.IsKnown() || !msg.DestinationChain.IsKnown() {
			return errorsmod.Wrapf(ErrInvalidChainId, "message %d: %s -> %s", i, msg.SourceChain, msg.DestinationChain)
		}

		if len(msg.Payload) > int(params.MaxPayloadSize) {
			return errorsmod.Wrapf(ErrPayloadTooLarge, "message %d: %d > %d", i, len(msg.Payload), params.MaxPayloadSize)
		}

		if _, err := msg.SubmitterAddress(); err != nil {
			return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "message %d submitter: %v", i, err)
		}

		if _, err := msg.DepositCoin(); err != nil {
			return errorsmod.Wrapf(ErrInvalidGenesis, "message %d deposit: %v", i, err)
		}

		if msg.Status > StatusFailed {
			return errorsmod.Wrapf(ErrInvalidGenesis, "message %d has unknown status %d", i, msg.Status)
		}

		hash := string(msg.Hash())
		if _, exists := messages[hash]; exists {
			return errorsmod.Wrapf(ErrDuplicateMessage, "message %d hash %x", i, msg.Hash())
		}
		messages[hash] = struct{}{}
	}

	nonces := make(map[string]struct{}, len(gs.Nonces))
	for i, entry := range gs.Nonces {
		if !entry.Chain.IsKnown() {
			return errorsmod.Wrapf(ErrInvalidChainId, "nonce %d: %s", i, entry.Chain)
		}

		if _, err := sdk.AccAddressFromBech32(entry.Account); err != nil {
			return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "nonce %d account: %v", i, err)
		}

		key := fmt.Sprintf("%d/%s", entry.Chain, entry.Account)
		if _, exists := nonces[key]; exists {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate nonce entry for %s on %s", entry.Account, entry.Chain)
		}
		nonces[key] = struct{}{}
	}

	keys := make(map[string]struct{}, len(gs.VerificationKeys))
	for i, vk := range gs.VerificationKeys {
		if len(vk.KeyBytes) > int(params.MaxKeySize) {
			return errorsmod.Wrapf(ErrKeyTooLarge, "verification key %d: %d > %d", i, len(vk.KeyBytes), params.MaxKeySize)
		}

		if err := vk.ValidateBasic(); err != nil {
			return errorsmod.Wrapf(err, "verification key %d", i)
		}

		if _, exists := keys[string(vk.ProgramID)]; exists {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate verification key for program %x", vk.ProgramID)
		}
		keys[string(vk.ProgramID)] = struct{}{}
	}

	programs := make(map[string]struct{}, len(gs.Programs))
	for i, program := range gs.Programs {
		if len(program.Bytes) > int(params.MaxProgramSize) {
			return errorsmod.Wrapf(ErrProgramTooLarge, "program %d: %d > %d", i, len(program.Bytes), params.MaxProgramSize)
		}

		if err := program.ValidateBasic(); err != nil {
			return errorsmod.Wrapf(err, "program %d", i)
		}

		if _, exists := programs[string(program.ProgramID)]; exists {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate program %x", program.ProgramID)
		}
		programs[string(program.ProgramID)] = struct{}{}
	}

	return nil
}
