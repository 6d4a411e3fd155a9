package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"cosmossdk.io/collections"
)

const (
	// ModuleName defines the module name
	ModuleName = "zkmsg"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// HashLen is the length in bytes of message hashes and program identifiers.
	HashLen = 32
)

var (
	MessagesKeyPrefix         = collections.NewPrefix(0)
	NoncesKeyPrefix           = collections.NewPrefix(1)
	VerificationKeysKeyPrefix = collections.NewPrefix(2)
	ProgramCacheKeyPrefix     = collections.NewPrefix(3)
)

// EncodeHex is a convenience function to encode byte slices as 0x prefixed hexadecimal strings.
func EncodeHex(bz []byte) string {
	return fmt.Sprintf("0x%s", hex.EncodeToString(bz))
}

// DecodeHex is a convenience function to decode 0x prefixed hexadecimal strings as byte slices.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}

	return b, nil
}
