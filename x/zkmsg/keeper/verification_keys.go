package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

// VerificationKeyStore holds at most one verification key per program id.
type VerificationKeyStore struct {
	keys       collections.Map[[]byte, types.VerificationKey]
	oracles    *OracleRouter
	maxKeySize uint32
}

// NewVerificationKeyStore registers the verification key table on the schema builder.
func NewVerificationKeyStore(sb *collections.SchemaBuilder, oracles *OracleRouter, maxKeySize uint32) VerificationKeyStore {
	return VerificationKeyStore{
		keys:       collections.NewMap(sb, types.VerificationKeysKeyPrefix, "verification_keys", collections.BytesKey, types.VerificationKeyValue),
		oracles:    oracles,
		maxKeySize: maxKeySize,
	}
}

// Add validates and stores keyBytes for programID, replacing any existing key.
func (s VerificationKeyStore) Add(ctx context.Context, programID, keyBytes, metadata []byte) (types.VerificationKey, error) {
	if len(keyBytes) > int(s.maxKeySize) {
		return types.VerificationKey{}, errorsmod.Wrapf(types.ErrKeyTooLarge, "%d > %d", len(keyBytes), s.maxKeySize)
	}

	vk := types.VerificationKey{
		ProgramID:        programID,
		KeyBytes:         keyBytes,
		Metadata:         metadata,
		RegisteredHeight: blockHeight(ctx),
	}

	if err := vk.ValidateBasic(); err != nil {
		return types.VerificationKey{}, err
	}

	oracle, ok := s.oracles.Get(vk.System())
	if !ok {
		return types.VerificationKey{}, errorsmod.Wrapf(types.ErrInvalidKey, "unrecognised proof system %s", vk.System())
	}

	if err := oracle.ValidateKey(vk.Key()); err != nil {
		return types.VerificationKey{}, errorsmod.Wrapf(types.ErrInvalidKey, "%s key: %v", vk.System(), err)
	}

	if err := s.keys.Set(ctx, programID, vk); err != nil {
		return types.VerificationKey{}, err
	}

	return vk, nil
}

// Get returns the key registered for programID.
func (s VerificationKeyStore) Get(ctx context.Context, programID []byte) (types.VerificationKey, error) {
	vk, err := s.keys.Get(ctx, programID)
	if errorsmod.IsOf(err, collections.ErrNotFound) {
		return types.VerificationKey{}, errorsmod.Wrapf(types.ErrInvalidKey, "no verification key for program %x", programID)
	}
	return vk, err
}

func (s VerificationKeyStore) set(ctx context.Context, vk types.VerificationKey) error {
	return s.keys.Set(ctx, vk.ProgramID, vk)
}

func (s VerificationKeyStore) walk(ctx context.Context, fn func(vk types.VerificationKey) error) error {
	return s.keys.Walk(ctx, nil, func(_ []byte, vk types.VerificationKey) (bool, error) {
		return false, fn(vk)
	})
}
