package minio

import (
	"context"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arffconv/blobstore"
)

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/plain; charset=utf-8", contentType("enron1_train.arff"))
	assert.Equal(t, "application/json", contentType("enron1_train.vocab.json"))
	assert.Equal(t, "application/zstd", contentType("hw2_test.arff.zst"))
	assert.Equal(t, "application/x-lz4", contentType("hw2_test.arff.lz4"))
	assert.Equal(t, "application/octet-stream", contentType("enron1_train.zip"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client, err := minio.New("localhost:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	bucket := "test-arffconv"
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("@RELATION hw2_test\n")
	require.NoError(t, store.Put(ctx, "hw2_test.arff", data))

	blob, err := store.Open(ctx, "hw2_test.arff")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, data, buf)

	part := make([]byte, 4)
	n, err = blob.ReadAt(part, 10)
	require.NoError(t, err)
	assert.Equal(t, "hw2_", string(part[:n]))

	_, err = blob.ReadAt(part, int64(len(data)))
	assert.Equal(t, io.EOF, err)
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "hw2_test.arff")

	_, err = store.Open(ctx, "missing.zip")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, client.RemoveObject(ctx, bucket, "test-prefix/hw2_test.arff", minio.RemoveObjectOptions{}))
}
