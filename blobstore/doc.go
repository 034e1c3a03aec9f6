// Package blobstore abstracts where dataset archives are read from and where
// ARFF outputs are written to.
//
// # Built-in Implementations
//
//   - LocalStore: local directory; archives are memory-mapped, outputs are
//     written through a temp file and renamed into place
//   - MemoryStore: in-memory store for tests
//   - CachingStore: block cache in front of a remote store
//   - s3.Store: Amazon S3 (ranged reads, managed uploads)
//   - minio.Store: MinIO and other S3-compatible endpoints
//
// A Blob is an io.ReaderAt with a known size, which is exactly what the zip
// central-directory reader needs:
//
//	blob, err := store.Open(ctx, "enron1_train.zip")
//	if err != nil { ... }
//	defer blob.Close()
//
//	a, err := archive.Open(blob, "enron1_train.zip")
package blobstore
