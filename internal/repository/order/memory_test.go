package order

import (
	"context"
	"testing"

	"storeledger/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestMemoryInsertGetRemove(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil)

	o := &domain.Order{ID: "O1", Status: domain.OrderStatusPlaced}
	require.NoError(t, repo.Insert(ctx, o))

	got, err := repo.GetByID(ctx, "O1")
	require.NoError(t, err)
	require.Same(t, o, got)

	require.NoError(t, repo.Remove(ctx, "O1"))
	_, err = repo.GetByID(ctx, "O1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, repo.Remove(ctx, "O1"), domain.ErrNotFound)
}

func TestMemoryInsertDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil)

	require.NoError(t, repo.Insert(ctx, &domain.Order{ID: "O1"}))
	require.ErrorIs(t, repo.Insert(ctx, &domain.Order{ID: "O1"}), domain.ErrDuplicateKey)
}

func TestMemoryRemoveKeepsListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil)

	for _, id := range []string{"O1", "O2", "O3"} {
		require.NoError(t, repo.Insert(ctx, &domain.Order{ID: id}))
	}
	require.NoError(t, repo.Remove(ctx, "O2"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "O1", list[0].ID)
	require.Equal(t, "O3", list[1].ID)
}
