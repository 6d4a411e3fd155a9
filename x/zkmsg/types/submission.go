package types

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Submission carries the fields of a message submission.
type Submission struct {
	SourceChain      ChainID
	DestinationChain ChainID
	Payload          []byte
	Submitter        sdk.AccAddress
	Nonce            uint64
	// Proof is an optional proof envelope. When set the message is verified
	// in the same call.
	Proof []byte
}

// Hash returns the hash the submitted message will be stored under.
func (s Submission) Hash() []byte {
	return MessageHash(s.SourceChain, s.DestinationChain, s.Payload, s.Nonce)
}

// ValidateBasic performs stateless checks against the given params.
func (s Submission) ValidateBasic(params Params) error {
	if !s.SourceChain.IsKnown() {
		return errorsmod.Wrapf(ErrInvalidChainId, "source chain %s", s.SourceChain)
	}

	if !s.DestinationChain.IsKnown() {
		return errorsmod.Wrapf(ErrInvalidChainId, "destination chain %s", s.DestinationChain)
	}

	if len(s.Payload) > int(params.MaxPayloadSize) {
		return errorsmod.Wrapf(ErrPayloadTooLarge, "%d > %d", len(s.Payload), params.MaxPayloadSize)
	}

	if err := sdk.VerifyAddressFormat(s.Submitter); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "submitter: %v", err)
	}

	return nil
}
