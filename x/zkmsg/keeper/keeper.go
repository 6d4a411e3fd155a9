package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

// Keeper owns the message ledger and drives the verification state machine.
// The nonce tracker, verification key store and program cache it consults are
// independent stores under the same module store key.
type Keeper struct {
	messages collections.Map[[]byte, types.Message]
	nonces   NonceTracker
	keys     VerificationKeyStore
	programs ProgramCache
	schema   collections.Schema

	oracles    *OracleRouter
	bankKeeper types.BankKeeper
	authorizer types.Authorizer
	params     types.Params
}

// NewKeeper creates and returns a new zkmsg module Keeper. The groth16 oracle is
// registered by default; see RegisterOracle for other proof systems.
func NewKeeper(
	storeService corestore.KVStoreService,
	bankKeeper types.BankKeeper,
	authorizer types.Authorizer,
	params types.Params,
) *Keeper {
	if bankKeeper == nil {
		panic("bankKeeper cannot be nil")
	}
	if authorizer == nil {
		panic("authorizer cannot be nil")
	}
	if err := params.Validate(); err != nil {
		panic(fmt.Sprintf("invalid %s params: %v", types.ModuleName, err))
	}

	sb := collections.NewSchemaBuilder(storeService)
	oracles := NewOracleRouter()
	oracles.Register(types.ProofSystemGroth16BN254, types.Groth16Oracle{})

	messages := collections.NewMap(sb, types.MessagesKeyPrefix, "messages", collections.BytesKey, types.MessageValue)
	nonces := NewNonceTracker(sb)
	keys := NewVerificationKeyStore(sb, oracles, params.MaxKeySize)
	programs := NewProgramCache(sb, params.MaxProgramSize, params.MaxProgramAge)

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}

	return &Keeper{
		messages:   messages,
		nonces:     nonces,
		keys:       keys,
		programs:   programs,
		schema:     schema,
		oracles:    oracles,
		bankKeeper: bankKeeper,
		authorizer: authorizer,
		params:     params,
	}
}

// Logger returns the module logger extracted using the sdk context.
func (k *Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// RegisterOracle sets the oracle used for keys and proofs of the given system,
// replacing any previous registration.
func (k *Keeper) RegisterOracle(system types.ProofSystem, oracle types.ProofOracle) {
	k.oracles.Register(system, oracle)
}

// Params returns the params the keeper was constructed with.
func (k *Keeper) Params() types.Params {
	return k.params
}

// Nonces returns the nonce tracker.
func (k *Keeper) Nonces() NonceTracker {
	return k.nonces
}

// VerificationKeys returns the verification key store.
func (k *Keeper) VerificationKeys() VerificationKeyStore {
	return k.keys
}

// Programs returns the program cache.
func (k *Keeper) Programs() ProgramCache {
	return k.programs
}

func blockHeight(ctx context.Context) uint64 {
	height := sdk.UnwrapSDKContext(ctx).BlockHeight()
	if height < 0 {
		return 0
	}
	return uint64(height)
}
