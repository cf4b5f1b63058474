package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRemembersSelectionPerParent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	selected, err := store.SelectedStudent(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, selected)

	require.NoError(t, store.SetSelectedStudent(ctx, 1, "student-a"))
	require.NoError(t, store.SetSelectedStudent(ctx, 2, "student-b"))

	selected, err = store.SelectedStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "student-a", selected)

	require.NoError(t, store.ClearSelectedStudent(ctx, 1))
	selected, err = store.SelectedStudent(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, selected)

	selected, err = store.SelectedStudent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "student-b", selected)
}
