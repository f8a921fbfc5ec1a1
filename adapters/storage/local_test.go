package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proposal-cost/internal/errors"
)

func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	fileStore, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
	}
}

func TestStoreSaveAssignsID(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			record := &Record{Name: "Office", ProjectData: json.RawMessage(`{}`)}
			require.NoError(t, store.Save(context.Background(), record))

			assert.NotEmpty(t, record.ID)
			assert.False(t, record.CreatedAt.IsZero())
			assert.False(t, record.UpdatedAt.IsZero())

			got, err := store.Get(context.Background(), record.ID)
			require.NoError(t, err)
			assert.Equal(t, "Office", got.Name)
		})
	}
}

func TestStoreSaveKeepsExistingID(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			record := &Record{Name: "Office"}
			require.NoError(t, store.Save(context.Background(), record))
			id := record.ID
			created := record.CreatedAt

			record.Name = "Office v2"
			require.NoError(t, store.Save(context.Background(), record))

			assert.Equal(t, id, record.ID)
			assert.Equal(t, created, record.CreatedAt, "creation time survives re-save")

			got, err := store.Get(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, "Office v2", got.Name)
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "missing")
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeNotFound))
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			record := &Record{Name: "Office"}
			require.NoError(t, store.Save(context.Background(), record))
			require.NoError(t, store.Delete(context.Background(), record.ID))

			_, err := store.Get(context.Background(), record.ID)
			assert.True(t, errors.IsType(err, errors.TypeNotFound))

			err = store.Delete(context.Background(), record.ID)
			assert.True(t, errors.IsType(err, errors.TypeNotFound))
		})
	}
}

func TestStoreListFilters(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, r := range []*Record{
				{Name: "A", ClientID: "c-1"},
				{Name: "B", ClientID: "c-2"},
				{Name: "C", ClientID: "c-1"},
			} {
				require.NoError(t, store.Save(ctx, r))
			}

			all, err := store.List(ctx, nil)
			require.NoError(t, err)
			assert.Len(t, all, 3)

			mine, err := store.List(ctx, &ListFilter{ClientID: "c-1"})
			require.NoError(t, err)
			assert.Len(t, mine, 2)
			for _, r := range mine {
				assert.Equal(t, "c-1", r.ClientID)
			}

			page, err := store.List(ctx, &ListFilter{Limit: 2, Offset: 2})
			require.NoError(t, err)
			assert.Len(t, page, 1)

			empty, err := store.List(ctx, &ListFilter{Offset: 99})
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestStoreListTimeWindow(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	record := &Record{Name: "A"}
	require.NoError(t, store.Save(ctx, record))

	future := time.Now().UTC().Add(time.Hour)
	none, err := store.List(ctx, &ListFilter{Since: future})
	require.NoError(t, err)
	assert.Empty(t, none)

	some, err := store.List(ctx, &ListFilter{Until: future})
	require.NoError(t, err)
	assert.Len(t, some, 1)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	record := &Record{Name: "Office"}
	require.NoError(t, store.Save(ctx, record))

	got, err := store.Get(ctx, record.ID)
	require.NoError(t, err)
	got.Name = "Tampered"

	again, err := store.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office", again.Name)
}

func TestNewStoreFactory(t *testing.T) {
	memory, err := NewStore(Config{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, memory)

	file, err := NewStore(Config{Backend: BackendFile, Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, file)

	remote, err := NewStore(Config{Backend: BackendRemote, BaseURL: "http://localhost:9"})
	require.NoError(t, err)
	assert.IsType(t, &RemoteStore{}, remote)

	fallback, err := NewStore(Config{})
	require.NoError(t, err)
	assert.IsType(t, &RemoteStore{}, fallback)
}
