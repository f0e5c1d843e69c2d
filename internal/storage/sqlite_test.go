package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "readlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_SaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Load(KeyBooks)
	require.NoError(t, err)
	assert.False(t, ok, "missing key should not be found")

	require.NoError(t, store.Save(KeyBooks, []byte(`[{"id":1}]`)))

	data, ok, err := store.Load(KeyBooks)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, string(data))

	// Saving again replaces the previous value
	require.NoError(t, store.Save(KeyBooks, []byte(`[]`)))
	data, _, err = store.Load(KeyBooks)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestSQLiteStore_Remove(t *testing.T) {
	store := openTestStore(t)

	for _, key := range AllKeys {
		require.NoError(t, store.Save(key, []byte(`{}`)))
	}
	require.NoError(t, store.Save("unrelated", []byte(`1`)))

	require.NoError(t, store.Remove(AllKeys...))

	for _, key := range AllKeys {
		_, ok, err := store.Load(key)
		require.NoError(t, err)
		assert.False(t, ok, "key %s should be removed", key)
	}

	_, ok, err := store.Load("unrelated")
	require.NoError(t, err)
	assert.True(t, ok, "keys outside the removal list must survive")

	assert.NoError(t, store.Remove(), "removing nothing is a no-op")
	assert.NoError(t, store.Remove("never-saved"))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "readlog.db")

	store, err := OpenSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Save(KeyUser, []byte(`{"name":"Ada"}`)))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLiteStore(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	data, ok, err := reopened.Load(KeyUser)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"Ada"}`, string(data))
	assert.Equal(t, dbPath, reopened.Path())
}

func TestSQLiteStore_ClosedStoreFails(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "readlog.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.Error(t, store.Save(KeyBooks, []byte(`[]`)))
	_, _, err = store.Load(KeyBooks)
	assert.Error(t, err)
}
