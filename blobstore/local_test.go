package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/arffconv/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutOpenList(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "dataset", "ARFF")
	store := NewLocalStore(root)
	assert.Equal(t, root, store.Root())

	// missing root lists as empty
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)

	data := []byte("@RELATION enron1_train\n")
	require.NoError(t, store.Put(ctx, "enron1_train.arff", data))
	require.NoError(t, store.Put(ctx, "nested/hw2_test.arff", []byte("x")))

	onDisk, err := os.ReadFile(filepath.Join(root, "enron1_train.arff"))
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)

	blob, err := store.Open(ctx, "enron1_train.arff")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 9)
	n, err := blob.ReadAt(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, "RELATION ", string(buf))
	require.NoError(t, blob.Close())

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"enron1_train.arff", "nested/hw2_test.arff"}, names)

	names, err = store.List(ctx, "nested/")
	require.NoError(t, err)
	assert.Equal(t, []string{"nested/hw2_test.arff"}, names)
}

func TestLocalStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewLocalStore(root)

	require.NoError(t, store.Put(ctx, "hw2_train.arff", []byte("first version")))
	require.NoError(t, store.Put(ctx, "hw2_train.arff", []byte("second")))

	blob, err := store.Open(ctx, "hw2_train.arff")
	require.NoError(t, err)
	defer blob.Close()

	got, err := io.ReadAll(io.NewSectionReader(blob, 0, blob.Size()))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	// no temp files left behind
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStore_OpenMissing(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	_, err := store.Open(context.Background(), "enron4_train.zip")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_PutFailures(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("locked", fs.Fault{FailOnMkdir: true})
	ffs.AddRule("broken.arff", fs.Fault{FailOnWrite: true})
	ffs.AddRule("final.arff", fs.Fault{FailOnRename: true})

	store := NewLocalStore(root, func(o *LocalOptions) {
		o.FileSystem = ffs
	})

	assert.ErrorIs(t, store.Put(ctx, "locked/enron1_train.arff", []byte("x")), fs.ErrInjected)
	assert.ErrorIs(t, store.Put(ctx, "broken.arff", []byte("x")), fs.ErrInjected)
	assert.ErrorIs(t, store.Put(ctx, "final.arff", []byte("x")), fs.ErrInjected)

	// failed writes leave nothing behind
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("ham")
	require.NoError(t, store.Put(ctx, "b/enron1_train.arff", data))
	require.NoError(t, store.Put(ctx, "a/enron1_test.arff", []byte("spam")))
	data[0] = 'X'

	got, ok := store.Get("b/enron1_train.arff")
	require.True(t, ok)
	assert.Equal(t, "ham", string(got))

	_, ok = store.Get("missing")
	assert.False(t, ok)

	blob, err := store.Open(ctx, "a/enron1_test.arff")
	require.NoError(t, err)
	assert.Equal(t, int64(4), blob.Size())
	buf := make([]byte, 4)
	_, err = blob.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "spam", string(buf))
	require.NoError(t, blob.Close())

	_, err = store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/enron1_test.arff", "b/enron1_train.arff"}, names)
}
