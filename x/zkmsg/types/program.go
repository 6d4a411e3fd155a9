package types

import "bytes"

// CachedProgram is a content-addressed program held for proof verification.
type CachedProgram struct {
	ProgramID    []byte `json:"program_id"`
	Bytes        []byte `json:"bytes"`
	CachedHeight uint64 `json:"cached_height"`
	UseCount     uint64 `json:"use_count"`
}

// IsStale reports whether the program has outlived maxAge at the given height.
func (p CachedProgram) IsStale(height, maxAge uint64) bool {
	if height < p.CachedHeight {
		return false
	}
	return height-p.CachedHeight > maxAge
}

// ValidateBasic checks the content-addressing invariant. Empty programs are never valid.
func (p CachedProgram) ValidateBasic() error {
	if len(p.Bytes) == 0 {
		return ErrProgramMismatch.Wrap("program must not be empty")
	}

	if len(p.ProgramID) != HashLen {
		return ErrProgramMismatch.Wrapf("program id must be %d bytes, got %d", HashLen, len(p.ProgramID))
	}

	if !bytes.Equal(ProgramID(p.Bytes), p.ProgramID) {
		return ErrProgramMismatch.Wrapf("expected %x, got %x", p.ProgramID, ProgramID(p.Bytes))
	}

	return nil
}
