package types

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/celestiaorg/zkmsg/x/zkmsg/internal/groth16"
)

const (
	// PrefixLen is the number of bytes taken from the SHA-256 hash
	// of the verifying key to prefix Groth16 proofs.
	PrefixLen = 4

	// ProofSize is the expected size in bytes of the Groth16 proof itself,
	// excluding the prefix.
	ProofSize = 256
)

var _ ProofOracle = Groth16Oracle{}

// Groth16Oracle verifies SP1-style Groth16 proofs over BN254.
//
// The circuit is expected to expose two public inputs: a commitment to the
// program bytes and a commitment to the message public inputs, each being the
// SHA-256 hash with its top three bits cleared (see groth16.HashBN254).
// Proofs are prefixed with the first PrefixLen bytes of SHA-256(key).
type Groth16Oracle struct{}

// ValidateKey implements ProofOracle.
func (Groth16Oracle) ValidateKey(key []byte) error {
	_, err := groth16.NewVerifyingKey(key)
	return err
}

// KeyPrefix returns the proof prefix expected for the given verifying key.
func KeyPrefix(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:PrefixLen]
}

// Verify implements ProofOracle.
func (Groth16Oracle) Verify(key, program, publicInputs, proofBz []byte) (bool, error) {
	vk, err := groth16.NewVerifyingKey(key)
	if err != nil {
		return false, fmt.Errorf("new verifying key: %w", err)
	}

	if len(proofBz) != (PrefixLen + ProofSize) {
		return false, fmt.Errorf("invalid proof length: expected %d, got %d", PrefixLen+ProofSize, len(proofBz))
	}

	if prefix := KeyPrefix(key); !bytes.Equal(prefix, proofBz[:PrefixLen]) {
		return false, fmt.Errorf("invalid proof prefix expected %x, got %x", prefix, proofBz[:PrefixLen])
	}

	proof, err := groth16.UnmarshalProof(proofBz[PrefixLen:])
	if err != nil {
		return false, fmt.Errorf("unmarshal proof: %w", err)
	}

	programElement := groth16.Commitment(program)
	inputsElement := groth16.Commitment(publicInputs)

	pubWitness, err := groth16.NewPublicWitness(programElement, inputsElement)
	if err != nil {
		return false, err
	}

	// a well-formed proof that does not satisfy the pairing check is a rejection
	if err := groth16.VerifyProof(proof, vk, pubWitness); err != nil {
		return false, nil
	}

	return true, nil
}
