package pool

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPool(t *testing.T) {
	ctx := context.Background()

	t.Run("empty pool", func(t *testing.T) {
		p := NewMemoryPool()

		n, err := p.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		_, err = p.PickRandom(ctx)
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("single target", func(t *testing.T) {
		p := NewMemoryPool("123")

		for i := 0; i < 5; i++ {
			target, err := p.PickRandom(ctx)
			require.NoError(t, err)
			assert.Equal(t, "123", target)
		}
	})

	t.Run("draws come from the pool", func(t *testing.T) {
		p := NewMemoryPool("1", "2", "3")

		n, err := p.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		for i := 0; i < 20; i++ {
			target, err := p.PickRandom(ctx)
			require.NoError(t, err)
			assert.Contains(t, []string{"1", "2", "3"}, target)
		}
	})
}

func TestOpenSQLite(t *testing.T) {
	t.Run("creates database file and schema", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "numbers.db")

		store, err := OpenSQLite(path)
		require.NoError(t, err)
		defer store.Close()

		n, err := store.Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("empty path rejected", func(t *testing.T) {
		_, err := OpenSQLite("   ")
		assert.Error(t, err)
	})

	t.Run("reopens existing database", func(t *testing.T) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "numbers.db")

		store, err := OpenSQLite(path)
		require.NoError(t, err)
		require.NoError(t, store.Add(ctx, "123"))
		require.NoError(t, store.Close())

		store, err = OpenSQLite(path)
		require.NoError(t, err)
		defer store.Close()

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	newStore := func(t *testing.T) *SQLiteStore {
		t.Helper()
		store, err := OpenSQLite(filepath.Join(t.TempDir(), "numbers.db"))
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		return store
	}

	t.Run("pick from empty pool", func(t *testing.T) {
		store := newStore(t)

		_, err := store.PickRandom(ctx)
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("add and pick", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Add(ctx, "123"))
		require.NoError(t, store.Add(ctx, "456"))

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		for i := 0; i < 10; i++ {
			target, err := store.PickRandom(ctx)
			require.NoError(t, err)
			assert.Contains(t, []string{"123", "456"}, target)
		}
	})

	t.Run("duplicates ignored", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Add(ctx, "123"))
		require.NoError(t, store.Add(ctx, "123"))
		require.NoError(t, store.Add(ctx, " 123 "))

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("empty number rejected", func(t *testing.T) {
		store := newStore(t)

		assert.Error(t, store.Add(ctx, ""))
		assert.Error(t, store.Add(ctx, "   "))
	})
}
