package keeper

import (
	"bytes"
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

// ProgramCache holds content-addressed programs. Entries older than maxAge blocks
// are treated as absent until they are cached again.
type ProgramCache struct {
	programs collections.Map[[]byte, types.CachedProgram]
	maxSize  uint32
	maxAge   uint64
}

// NewProgramCache registers the program table on the schema builder.
func NewProgramCache(sb *collections.SchemaBuilder, maxSize uint32, maxAge uint64) ProgramCache {
	return ProgramCache{
		programs: collections.NewMap(sb, types.ProgramCacheKeyPrefix, "program_cache", collections.BytesKey, types.CachedProgramValue),
		maxSize:  maxSize,
		maxAge:   maxAge,
	}
}

// Cache stores program under programID at the current height. programID must be
// the SHA-256 hash of program. An existing entry is replaced and its age reset.
func (c ProgramCache) Cache(ctx context.Context, programID, program []byte) (types.CachedProgram, error) {
	if len(program) > int(c.maxSize) {
		return types.CachedProgram{}, errorsmod.Wrapf(types.ErrProgramTooLarge, "%d > %d", len(program), c.maxSize)
	}

	if len(program) == 0 {
		return types.CachedProgram{}, errorsmod.Wrap(types.ErrProgramMismatch, "program must not be empty")
	}

	if computed := types.ProgramID(program); !bytes.Equal(computed, programID) {
		return types.CachedProgram{}, errorsmod.Wrapf(types.ErrProgramMismatch, "expected %x, got %x", programID, computed)
	}

	entry := types.CachedProgram{
		ProgramID:    programID,
		Bytes:        program,
		CachedHeight: blockHeight(ctx),
	}

	if err := c.programs.Set(ctx, programID, entry); err != nil {
		return types.CachedProgram{}, err
	}

	return entry, nil
}

// Get returns the program cached under programID unless it is missing or stale at height.
func (c ProgramCache) Get(ctx context.Context, programID []byte, height uint64) (types.CachedProgram, error) {
	entry, err := c.programs.Get(ctx, programID)
	if errorsmod.IsOf(err, collections.ErrNotFound) {
		return types.CachedProgram{}, errorsmod.Wrapf(types.ErrProgramNotFound, "program %x", programID)
	}
	if err != nil {
		return types.CachedProgram{}, err
	}

	if entry.IsStale(height, c.maxAge) {
		return types.CachedProgram{}, errorsmod.Wrapf(types.ErrProgramNotFound, "program %x cached at %d is stale at %d", programID, entry.CachedHeight, height)
	}

	return entry, nil
}

// MarkUsed increments the use count of a cached program.
func (c ProgramCache) MarkUsed(ctx context.Context, entry types.CachedProgram) error {
	entry.UseCount++
	return c.programs.Set(ctx, entry.ProgramID, entry)
}

// PruneStale deletes every entry that is stale at height and returns how many were removed.
func (c ProgramCache) PruneStale(ctx context.Context, height uint64) (int, error) {
	var stale [][]byte
	err := c.programs.Walk(ctx, nil, func(programID []byte, entry types.CachedProgram) (bool, error) {
		if entry.IsStale(height, c.maxAge) {
			stale = append(stale, programID)
		}
		return false, nil
	})
	if err != nil {
		return 0, err
	}

	for _, programID := range stale {
		if err := c.programs.Remove(ctx, programID); err != nil {
			return 0, err
		}
	}

	return len(stale), nil
}

func (c ProgramCache) set(ctx context.Context, entry types.CachedProgram) error {
	return c.programs.Set(ctx, entry.ProgramID, entry)
}

func (c ProgramCache) walk(ctx context.Context, fn func(entry types.CachedProgram) error) error {
	return c.programs.Walk(ctx, nil, func(_ []byte, entry types.CachedProgram) (bool, error) {
		return false, fn(entry)
	})
}
