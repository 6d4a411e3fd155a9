package keeper

import (
	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

// OracleRouter maps proof system markers to the oracle that checks them.
type OracleRouter struct {
	oracles map[types.ProofSystem]types.ProofOracle
}

// NewOracleRouter returns an empty router.
func NewOracleRouter() *OracleRouter {
	return &OracleRouter{oracles: make(map[types.ProofSystem]types.ProofOracle)}
}

// Register sets the oracle for system.
func (r *OracleRouter) Register(system types.ProofSystem, oracle types.ProofOracle) {
	if system == types.ProofSystemUnspecified {
		panic("cannot register an oracle for an unspecified proof system")
	}
	if oracle == nil {
		panic("oracle cannot be nil")
	}
	r.oracles[system] = oracle
}

// Get returns the oracle for system.
func (r *OracleRouter) Get(system types.ProofSystem) (types.ProofOracle, bool) {
	oracle, ok := r.oracles[system]
	return oracle, ok
}
