package groth16

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/groth16"
	bn254 "github.com/consensys/gnark/backend/groth16/bn254" //nolint:revive,stylecheck
	"github.com/consensys/gnark/backend/witness"
)

// VerifyingKey aliases the curve-agnostic gnark verifying key.
type VerifyingKey = groth16.VerifyingKey

// NewVerifyingKey decodes a serialized BN254 verifying key. Every byte of keyBz
// must belong to the key.
func NewVerifyingKey(keyBz []byte) (groth16.VerifyingKey, error) {
	if len(keyBz) == 0 {
		return nil, errors.New("empty verifier key")
	}

	vk := groth16.NewVerifyingKey(ecc.BN254)
	read, err := vk.ReadFrom(bytes.NewReader(keyBz))
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling verifier key: %w", err)
	}

	if int(read) != len(keyBz) {
		return nil, fmt.Errorf("invalid key length: expected %d, got %d", len(keyBz), read)
	}

	return vk, nil
}

// VerifyProof returns nil when proof is valid for vk and publicWitness.
func VerifyProof(proof groth16.Proof, vk groth16.VerifyingKey, publicWitness witness.Witness, opts ...backend.VerifierOption) error {
	return groth16.Verify(proof, vk, publicWitness, opts...)
}

// UnmarshalProof reads the three proof points (A, B, C) from proofBz. Both
// compressed and uncompressed points are accepted.
func UnmarshalProof(proofBz []byte) (*bn254.Proof, error) {
	proof := &bn254.Proof{}
	dec := curve.NewDecoder(bytes.NewReader(proofBz))

	for _, p := range []any{&proof.Ar, &proof.Bs, &proof.Krs} {
		if err := dec.Decode(p); err != nil {
			return nil, fmt.Errorf("error unmarshaling proof: %w", err)
		}
	}

	return proof, nil
}

// MarshalProof writes the proof points uncompressed, which yields the fixed
// 256 byte layout read by UnmarshalProof.
func MarshalProof(proof *bn254.Proof) ([]byte, error) {
	var buf bytes.Buffer
	enc := curve.NewEncoder(&buf, curve.RawEncoding())

	for _, p := range []any{&proof.Ar, &proof.Bs, &proof.Krs} {
		if err := enc.Encode(p); err != nil {
			return nil, fmt.Errorf("error marshaling proof: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// HashBN254 returns SHA-256(data) truncated to 253 bits so the result is always
// below the BN254 scalar modulus.
func HashBN254(data []byte) *big.Int {
	digest := sha256.Sum256(data)
	digest[0] &= 0x1f

	return new(big.Int).SetBytes(digest[:])
}

// NewBN254FrElement converts v into a scalar field element, reducing it if needed.
func NewBN254FrElement(v *big.Int) *bn254fr.Element {
	var elem bn254fr.Element
	return elem.SetBigInt(v)
}

// Commitment returns the field element a circuit exposes for data.
func Commitment(data []byte) *bn254fr.Element {
	return NewBN254FrElement(HashBN254(data))
}

// NewPublicWitness builds a public-only witness holding inputs in order.
func NewPublicWitness(inputs ...any) (witness.Witness, error) {
	full, err := witness.New(ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("error creating witness: %w", err)
	}

	values := make(chan any, len(inputs))
	for _, v := range inputs {
		values <- v
	}
	close(values)

	if err := full.Fill(len(inputs), 0, values); err != nil {
		return nil, fmt.Errorf("error filling witness: %w", err)
	}

	public, err := full.Public()
	if err != nil {
		return nil, fmt.Errorf("error getting public witness: %w", err)
	}

	return public, nil
}
