// Package testutil provides a real Groth16 circuit for exercising the proof
// verification path in tests.
package testutil

import (
	"bytes"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	gnarkgroth16 "github.com/consensys/gnark/backend/groth16"
	bn254 "github.com/consensys/gnark/backend/groth16/bn254" //nolint:revive,stylecheck
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/zkmsg/x/zkmsg/internal/groth16"
)

// MessageCircuit exposes the two public inputs checked by the Groth16 oracle.
// Knowledge of their sum is all it proves.
type MessageCircuit struct {
	ProgramCommitment frontend.Variable `gnark:",public"`
	InputsCommitment  frontend.Variable `gnark:",public"`
	Sum               frontend.Variable
}

// Define implements frontend.Circuit.
func (c *MessageCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.Sum, api.Add(c.ProgramCommitment, c.InputsCommitment))
	return nil
}

// Groth16Fixture holds a compiled MessageCircuit and its keys.
type Groth16Fixture struct {
	ccs constraint.ConstraintSystem
	pk  gnarkgroth16.ProvingKey

	// VerifyingKey is the serialized verifying key, without a proof system marker.
	VerifyingKey []byte
}

// NewGroth16Fixture compiles MessageCircuit and runs a (non-ceremony) setup.
func NewGroth16Fixture(t testing.TB) *Groth16Fixture {
	t.Helper()

	var circuit MessageCircuit
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	require.NoError(t, err)

	pk, vk, err := gnarkgroth16.Setup(ccs)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = vk.WriteTo(&buf)
	require.NoError(t, err)

	return &Groth16Fixture{
		ccs:          ccs,
		pk:           pk,
		VerifyingKey: buf.Bytes(),
	}
}

// Prove returns a prefixed proof binding program to publicInputs.
func (f *Groth16Fixture) Prove(t testing.TB, program, publicInputs []byte) []byte {
	t.Helper()

	programCommitment := groth16.HashBN254(program)
	inputsCommitment := groth16.HashBN254(publicInputs)

	assignment := MessageCircuit{
		ProgramCommitment: programCommitment,
		InputsCommitment:  inputsCommitment,
		Sum:               new(big.Int).Add(programCommitment, inputsCommitment),
	}

	w, err := frontend.NewWitness(&assignment, ecc.BN254.ScalarField())
	require.NoError(t, err)

	proof, err := gnarkgroth16.Prove(f.ccs, f.pk, w)
	require.NoError(t, err)

	proofBz, err := groth16.MarshalProof(proof.(*bn254.Proof))
	require.NoError(t, err)

	vkHash := sha256.Sum256(f.VerifyingKey)
	return append(vkHash[:4], proofBz...)
}
