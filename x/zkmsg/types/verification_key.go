package types

import (
	"bytes"
	"crypto/sha256"
)

// VerificationKey holds the public parameters needed to check proofs for a program.
//
// KeyBytes starts with the ProofSystem marker; the remainder is interpreted by
// the ProofOracle registered for that system.
type VerificationKey struct {
	ProgramID        []byte `json:"program_id"`
	KeyBytes         []byte `json:"key_bytes"`
	Metadata         []byte `json:"metadata,omitempty"`
	RegisteredHeight uint64 `json:"registered_height"`
}

// System returns the proof system marker of the key.
func (vk VerificationKey) System() ProofSystem {
	if len(vk.KeyBytes) == 0 {
		return ProofSystemUnspecified
	}
	return ProofSystem(vk.KeyBytes[0])
}

// Key returns the key bytes without the proof system marker.
func (vk VerificationKey) Key() []byte {
	if len(vk.KeyBytes) == 0 {
		return nil
	}
	return vk.KeyBytes[1:]
}

// ValidateBasic checks the key shape without consulting a proof oracle.
func (vk VerificationKey) ValidateBasic() error {
	if err := ValidateProgramID(vk.ProgramID); err != nil {
		return err
	}

	if len(vk.KeyBytes) < 2 {
		return ErrInvalidKey.Wrap("key bytes must contain a proof system marker and a key")
	}

	if vk.System() == ProofSystemUnspecified {
		return ErrInvalidKey.Wrap("proof system must be specified")
	}

	return nil
}

// NewKeyBytes prefixes a system-specific key with its proof system marker.
func NewKeyBytes(system ProofSystem, key []byte) []byte {
	return append([]byte{byte(system)}, key...)
}

// ValidateProgramID checks that the program id is a non-zero 32 byte hash.
func ValidateProgramID(programID []byte) error {
	if len(programID) != HashLen {
		return ErrInvalidKey.Wrapf("program id must be %d bytes, got %d", HashLen, len(programID))
	}

	if bytes.Equal(programID, make([]byte, HashLen)) {
		return ErrInvalidKey.Wrap("program id must be non-zero")
	}

	return nil
}

// ProgramID returns the content address of the program bytes.
func ProgramID(program []byte) []byte {
	hash := sha256.Sum256(program)
	return hash[:]
}
