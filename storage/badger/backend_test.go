package badger

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/leitmotif/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "db")
	backend, err := OpenBackend(dir, false, WithLogger(slog.Default()))
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_PathIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	backend, err := OpenBackend(path, false)
	require.Error(t, err)
	assert.Nil(t, backend)
}

func TestWithLogger_Nil(t *testing.T) {
	backend, err := OpenBackend("", true, WithLogger(nil))
	require.NoError(t, err)
	defer backend.Close()

	assert.NotNil(t, backend.logger)
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	assert.False(t, backend.IsClosed())
	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())

	err = backend.WithTx(context.Background(), func(tx *badger.Txn) error { return nil }, false)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestWithTransaction(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		called := false
		err := backend.WithTransaction(ctx, func(ctx context.Context) error {
			called = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		err := backend.WithTransaction(ctx, func(ctx context.Context) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("context carries the transaction", func(t *testing.T) {
		err := backend.WithTransaction(ctx, func(txCtx context.Context) error {
			outer, ok := txFromContext(txCtx)
			require.True(t, ok)
			return backend.WithTransaction(txCtx, func(inner context.Context) error {
				tx, ok := txFromContext(inner)
				require.True(t, ok)
				assert.Same(t, outer, tx)
				return nil
			})
		})
		require.NoError(t, err)

		_, ok := txFromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("writes commit only on success", func(t *testing.T) {
		key := []byte("test:key")
		boom := errors.New("boom")
		err := backend.WithTransaction(ctx, func(ctx context.Context) error {
			return backend.WithTx(ctx, func(tx *badger.Txn) error {
				require.NoError(t, tx.Set(key, []byte("v")))
				return nil
			}, true)
		})
		require.NoError(t, err)

		err = backend.WithTransaction(ctx, func(ctx context.Context) error {
			if err := backend.WithTx(ctx, func(tx *badger.Txn) error {
				return tx.Delete(key)
			}, true); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		err = backend.WithTx(ctx, func(tx *badger.Txn) error {
			_, err := tx.Get(key)
			return err
		}, false)
		assert.NoError(t, err)
	})
}

func TestTitleKeys(t *testing.T) {
	partial := makePartialScoreTitleKey("  Art of the Fugue ")
	assert.Equal(t, []byte("scotitl:art of the fugue\x00"), partial)

	key := makeScoreTitleKey("ART OF THE FUGUE", 1)
	require.Len(t, key, len(partial)+8)
	assert.Equal(t, partial, key[:len(partial)])
	assert.Equal(t, byte(1), key[len(key)-1])

	// Big-endian IDs keep lexicographic order equal to numeric order.
	assert.Less(t, string(makeScoreTitleKey("x", 255)), string(makeScoreTitleKey("x", 256)))

	assert.Equal(t, []byte("scorec:42"), makeScoreKey(42))
}
