package types

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
	"github.com/fxamacker/cbor/v2"
)

// encMode produces canonical CBOR so that identical values always yield identical
// store bytes across nodes.
var encMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

var (
	MessageValue         collcodec.ValueCodec[Message]         = cborValue[Message]{name: "zkmsg.Message"}
	VerificationKeyValue collcodec.ValueCodec[VerificationKey] = cborValue[VerificationKey]{name: "zkmsg.VerificationKey"}
	CachedProgramValue   collcodec.ValueCodec[CachedProgram]   = cborValue[CachedProgram]{name: "zkmsg.CachedProgram"}
)

// cborValue is a collections value codec for plain Go structs.
type cborValue[T any] struct {
	name string
}

func (c cborValue[T]) Encode(value T) ([]byte, error) {
	return encMode.Marshal(value)
}

func (c cborValue[T]) Decode(b []byte) (T, error) {
	var value T
	if err := cbor.Unmarshal(b, &value); err != nil {
		return value, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return value, nil
}

func (c cborValue[T]) EncodeJSON(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (c cborValue[T]) DecodeJSON(b []byte) (T, error) {
	var value T
	err := json.Unmarshal(b, &value)
	return value, err
}

func (c cborValue[T]) Stringify(value T) string {
	return fmt.Sprintf("%+v", value)
}

func (c cborValue[T]) ValueType() string {
	return c.name
}
