package types

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ProofSystem is the marker byte identifying the proof system of a verification
// key or proof envelope.
type ProofSystem uint8

const (
	ProofSystemUnspecified ProofSystem = iota
	ProofSystemGroth16BN254
)

func (p ProofSystem) String() string {
	switch p {
	case ProofSystemGroth16BN254:
		return "groth16"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// ParseProofSystem parses the string form of a ProofSystem.
func ParseProofSystem(s string) (ProofSystem, error) {
	if s == ProofSystemGroth16BN254.String() {
		return ProofSystemGroth16BN254, nil
	}
	return ProofSystemUnspecified, fmt.Errorf("unknown proof system %q", s)
}

// envelopeHeaderLen covers the marker, the program id and the proof size.
const envelopeHeaderLen = 1 + HashLen + 4

// ProofEnvelope is the structured form of a proof attached to a message.
type ProofEnvelope struct {
	System    ProofSystem
	ProgramID []byte
	Proof     []byte
}

// ParseProofEnvelope parses a raw proof envelope.
// The envelope follows the format:
// [0]			- Proof system marker
// [1:33]		- Program id the proof attests to
// [33:37]		- Size of the proof, N
// [37:37+N]	- The proof
func ParseProofEnvelope(bz []byte) (ProofEnvelope, error) {
	if len(bz) < envelopeHeaderLen {
		return ProofEnvelope{}, errors.New("proof envelope too short to contain header")
	}

	offset := 0

	system := ProofSystem(bz[offset])
	if system == ProofSystemUnspecified {
		return ProofEnvelope{}, errors.New("proof system must be specified")
	}
	offset++

	programID := bz[offset : offset+HashLen]
	offset += HashLen

	proofSize := binary.BigEndian.Uint32(bz[offset : offset+4])
	offset += 4

	if proofSize == 0 {
		return ProofEnvelope{}, errors.New("proof must not be empty")
	}

	if uint64(len(bz[offset:])) != uint64(proofSize) {
		return ProofEnvelope{}, fmt.Errorf("proof envelope length mismatch: expected %d proof bytes, got %d", proofSize, len(bz[offset:]))
	}

	return ProofEnvelope{
		System:    system,
		ProgramID: programID,
		Proof:     bz[offset:],
	}, nil
}

// Bytes encodes the envelope in the format read by ParseProofEnvelope.
func (e ProofEnvelope) Bytes() []byte {
	bz := make([]byte, 0, envelopeHeaderLen+len(e.Proof))
	bz = append(bz, byte(e.System))
	bz = append(bz, e.ProgramID...)
	bz = binary.BigEndian.AppendUint32(bz, uint32(len(e.Proof)))
	return append(bz, e.Proof...)
}
