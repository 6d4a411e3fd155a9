package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper defines the expected bank keeper used to hold message deposits.
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
}

// ProofOracle checks proofs for one proof system. Implementations must be
// deterministic and free of I/O.
type ProofOracle interface {
	// ValidateKey checks that key (without its marker byte) is well formed.
	ValidateKey(key []byte) error
	// Verify returns true if the proof is accepted, false if it is rejected,
	// and an error if any of the inputs cannot be interpreted.
	Verify(key, program, publicInputs, proof []byte) (bool, error)
}

// Authorizer decides whether a signer may perform administrative operations.
type Authorizer interface {
	IsAuthorized(ctx context.Context, signer string) bool
}

// AuthorizerFunc adapts a plain function to the Authorizer interface.
type AuthorizerFunc func(ctx context.Context, signer string) bool

// IsAuthorized implements Authorizer.
func (f AuthorizerFunc) IsAuthorized(ctx context.Context, signer string) bool {
	return f(ctx, signer)
}

// NewAuthorityAuthorizer authorizes a single address, typically the governance
// module account.
func NewAuthorityAuthorizer(authority string) Authorizer {
	return AuthorizerFunc(func(_ context.Context, signer string) bool {
		return signer != "" && signer == authority
	})
}
