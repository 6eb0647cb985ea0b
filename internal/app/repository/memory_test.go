package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKeepsDuplicatesAndEarliestWins(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	ok, err := repo.Insert(ctx, mustCargo(t, "dup", "first", 10, false))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Insert(ctx, mustCargo(t, "dup", "second", 20, true))
	require.NoError(t, err)
	assert.True(t, ok, "the repository does not check for duplicates")

	ships, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, ships, 2)

	got, found, err := repo.FindByRegistrationID(ctx, "dup")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "first", got.Nationality())
}

func TestMemoryListIsACopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	_, err := repo.Insert(ctx, mustCargo(t, "A", "x", 1, false))
	require.NoError(t, err)

	ships, err := repo.ListAll(ctx)
	require.NoError(t, err)
	ships[0] = nil

	again, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, again[0])
}
