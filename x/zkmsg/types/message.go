package types

import (
	"encoding/binary"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"golang.org/x/crypto/blake2b"
)

// Status is the verification state of a message.
type Status uint8

const (
	StatusSubmitted Status = iota
	StatusVerified
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSubmitted:
		return "submitted"
	case StatusVerified:
		return "verified"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// IsTerminal reports whether no further transition may leave the status.
func (s Status) IsTerminal() bool {
	return s == StatusVerified || s == StatusFailed
}

// Message is a cross-chain message submitted for proof verification.
// Messages are retained after reaching a terminal status.
type Message struct {
	SourceChain      ChainID `json:"source_chain"`
	DestinationChain ChainID `json:"destination_chain"`
	Payload          []byte  `json:"payload"`
	Submitter        string  `json:"submitter"`
	Nonce            uint64  `json:"nonce"`
	Status           Status  `json:"status"`
	// Proof is the proof envelope, if one has been attached.
	Proof           []byte `json:"proof,omitempty"`
	SubmittedHeight uint64 `json:"submitted_height"`
	FinalizedHeight uint64 `json:"finalized_height,omitempty"`
	// Deposit is the coin reserved at submission, in sdk.Coin string form.
	Deposit       string `json:"deposit"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// Hash returns the content hash identifying the message.
func (m Message) Hash() []byte {
	return MessageHash(m.SourceChain, m.DestinationChain, m.Payload, m.Nonce)
}

// PublicInputs returns the public inputs a proof for this message must commit to.
func (m Message) PublicInputs() []byte {
	return PublicInputs(m.SourceChain, m.DestinationChain, m.Payload, m.Nonce)
}

// SubmitterAddress parses the bech32 submitter.
func (m Message) SubmitterAddress() (sdk.AccAddress, error) {
	return sdk.AccAddressFromBech32(m.Submitter)
}

// DepositCoin parses the reserved deposit.
func (m Message) DepositCoin() (sdk.Coin, error) {
	return sdk.ParseCoinNormalized(m.Deposit)
}

// PublicInputs encodes the message fields a proof attests to:
// u64be(source) | u64be(destination) | u64be(len(payload)) | payload | u64be(nonce)
func PublicInputs(source, destination ChainID, payload []byte, nonce uint64) []byte {
	bz := make([]byte, 0, 32+len(payload))
	bz = binary.BigEndian.AppendUint64(bz, uint64(source))
	bz = binary.BigEndian.AppendUint64(bz, uint64(destination))
	bz = binary.BigEndian.AppendUint64(bz, uint64(len(payload)))
	bz = append(bz, payload...)
	bz = binary.BigEndian.AppendUint64(bz, nonce)
	return bz
}

// MessageHash is the BLAKE2b-256 digest of the message public inputs.
func MessageHash(source, destination ChainID, payload []byte, nonce uint64) []byte {
	hash := blake2b.Sum256(PublicInputs(source, destination, payload, nonce))
	return hash[:]
}
