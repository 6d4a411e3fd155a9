package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// FailedDepositPolicy decides what happens to a message deposit when
// verification of the message fails.
type FailedDepositPolicy uint8

const (
	// FailedDepositSlash burns the deposit of a message that failed verification.
	FailedDepositSlash FailedDepositPolicy = iota
	// FailedDepositRelease returns the deposit to the submitter regardless of outcome.
	FailedDepositRelease
)

func (p FailedDepositPolicy) String() string {
	switch p {
	case FailedDepositSlash:
		return "slash"
	case FailedDepositRelease:
		return "release"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// ParseFailedDepositPolicy parses the string form of a FailedDepositPolicy.
func ParseFailedDepositPolicy(s string) (FailedDepositPolicy, error) {
	switch s {
	case "slash":
		return FailedDepositSlash, nil
	case "release":
		return FailedDepositRelease, nil
	default:
		return 0, ErrInvalidParams.Wrapf("unknown failed deposit policy %q", s)
	}
}

const (
	// DefaultMaxPayloadSize is 64 KiB.
	DefaultMaxPayloadSize uint32 = 64 * 1024
	// DefaultMaxKeySize is 4 KiB, enough for a BN254 groth16 verifying key.
	DefaultMaxKeySize uint32 = 4 * 1024
	// DefaultMaxProgramSize is 4 MiB.
	DefaultMaxProgramSize uint32 = 4 * 1024 * 1024
	// DefaultMaxProgramAge is in blocks.
	DefaultMaxProgramAge uint64 = 100_000
)

// DefaultMessageDeposit is the deposit reserved from a submitter for every message.
var DefaultMessageDeposit = sdk.NewCoin(sdk.DefaultBondDenom, math.NewInt(1_000_000))

// Params are fixed when the keeper is constructed and cannot change at runtime.
type Params struct {
	MaxPayloadSize      uint32              `json:"max_payload_size"`
	MessageDeposit      sdk.Coin            `json:"message_deposit"`
	MaxKeySize          uint32              `json:"max_key_size"`
	MaxProgramSize      uint32              `json:"max_program_size"`
	MaxProgramAge       uint64              `json:"max_program_age"`
	FailedDepositPolicy FailedDepositPolicy `json:"failed_deposit_policy"`
	PruneStalePrograms  bool                `json:"prune_stale_programs"`
}

// NewParams creates a new Params instance.
func NewParams(
	maxPayloadSize uint32,
	messageDeposit sdk.Coin,
	maxKeySize uint32,
	maxProgramSize uint32,
	maxProgramAge uint64,
	failedDepositPolicy FailedDepositPolicy,
	pruneStalePrograms bool,
) Params {
	return Params{
		MaxPayloadSize:      maxPayloadSize,
		MessageDeposit:      messageDeposit,
		MaxKeySize:          maxKeySize,
		MaxProgramSize:      maxProgramSize,
		MaxProgramAge:       maxProgramAge,
		FailedDepositPolicy: failedDepositPolicy,
		PruneStalePrograms:  pruneStalePrograms,
	}
}

// DefaultParams returns a default set of parameters.
func DefaultParams() Params {
	return NewParams(
		DefaultMaxPayloadSize,
		DefaultMessageDeposit,
		DefaultMaxKeySize,
		DefaultMaxProgramSize,
		DefaultMaxProgramAge,
		FailedDepositSlash,
		false,
	)
}

// Validate performs basic validation of the params.
func (p Params) Validate() error {
	if p.MaxPayloadSize == 0 {
		return ErrInvalidParams.Wrap("max payload size must be positive")
	}

	if !p.MessageDeposit.IsValid() {
		return ErrInvalidParams.Wrapf("invalid message deposit %s", p.MessageDeposit)
	}

	// one byte is taken by the proof system marker
	if p.MaxKeySize < 2 {
		return ErrInvalidParams.Wrap("max key size must be at least 2 bytes")
	}

	if p.MaxProgramSize == 0 {
		return ErrInvalidParams.Wrap("max program size must be positive")
	}

	if p.FailedDepositPolicy != FailedDepositSlash && p.FailedDepositPolicy != FailedDepositRelease {
		return ErrInvalidParams.Wrapf("unknown failed deposit policy %d", p.FailedDepositPolicy)
	}

	return nil
}
