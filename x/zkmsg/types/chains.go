package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ChainID identifies a chain taking part in cross-chain messaging.
type ChainID uint32

const (
	ChainEthereum ChainID = 0
	ChainPolkadot ChainID = 1
	ChainSolana   ChainID = 2
	ChainUnknown  ChainID = 255
)

var chainNames = map[ChainID]string{
	ChainEthereum: "ethereum",
	ChainPolkadot: "polkadot",
	ChainSolana:   "solana",
}

// IsKnown reports whether the chain id is one that messages may be sent from or to.
func (c ChainID) IsKnown() bool {
	_, ok := chainNames[c]
	return ok
}

func (c ChainID) String() string {
	if name, ok := chainNames[c]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint32(c))
}

// ParseChainID accepts either a chain name (case-insensitive) or its numeric id.
// Unrecognised chains are rejected with ErrInvalidChainId.
func ParseChainID(s string) (ChainID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for id, name := range chainNames {
		if name == s {
			return id, nil
		}
	}

	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return ChainUnknown, ErrInvalidChainId.Wrapf("%q", s)
	}

	id := ChainID(n)
	if !id.IsKnown() {
		return ChainUnknown, ErrInvalidChainId.Wrapf("%d", n)
	}

	return id, nil
}
