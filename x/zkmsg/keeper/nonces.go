package keeper

import (
	"context"
	"math"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

// NonceTracker holds the next expected nonce of every (chain, account) pair.
// Unset pairs start at zero.
type NonceTracker struct {
	nonces collections.Map[collections.Pair[uint32, sdk.AccAddress], uint64]
}

// NewNonceTracker registers the nonce table on the schema builder.
func NewNonceTracker(sb *collections.SchemaBuilder) NonceTracker {
	return NonceTracker{
		nonces: collections.NewMap(
			sb,
			types.NoncesKeyPrefix,
			"nonces",
			collections.PairKeyCodec(collections.Uint32Key, sdk.AccAddressKey),
			collections.Uint64Value,
		),
	}
}

// Get returns the tracked nonce for the pair.
func (t NonceTracker) Get(ctx context.Context, chain types.ChainID, account sdk.AccAddress) (uint64, error) {
	nonce, err := t.nonces.Get(ctx, collections.Join(uint32(chain), account))
	if errorsmod.IsOf(err, collections.ErrNotFound) {
		return 0, nil
	}
	return nonce, err
}

// CheckAndAdvance accepts nonce only if it equals the tracked value, in which case
// the tracked value is incremented and the previous one returned. A mismatch leaves
// the store untouched. A pair whose tracked nonce reached math.MaxUint64 accepts no
// further nonces.
func (t NonceTracker) CheckAndAdvance(ctx context.Context, chain types.ChainID, account sdk.AccAddress, nonce uint64) (uint64, error) {
	current, err := t.Get(ctx, chain, account)
	if err != nil {
		return 0, err
	}

	if nonce != current {
		return 0, errorsmod.Wrapf(types.ErrNonceMismatch, "expected %d, got %d for %s on %s", current, nonce, account, chain)
	}

	if current == math.MaxUint64 {
		return 0, errorsmod.Wrapf(types.ErrNonceMismatch, "nonces exhausted for %s on %s", account, chain)
	}

	if err := t.nonces.Set(ctx, collections.Join(uint32(chain), account), current+1); err != nil {
		return 0, err
	}

	return current, nil
}

func (t NonceTracker) set(ctx context.Context, chain types.ChainID, account sdk.AccAddress, nonce uint64) error {
	return t.nonces.Set(ctx, collections.Join(uint32(chain), account), nonce)
}

func (t NonceTracker) walk(ctx context.Context, fn func(chain types.ChainID, account sdk.AccAddress, nonce uint64) error) error {
	return t.nonces.Walk(ctx, nil, func(key collections.Pair[uint32, sdk.AccAddress], nonce uint64) (bool, error) {
		return false, fn(types.ChainID(key.K1()), key.K2(), nonce)
	})
}
