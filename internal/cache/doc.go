// Package cache provides the block cache behind blobstore.CachingStore.
//
// Remote archives are opened once for the vocabulary and once per label of
// each split; caching their blocks avoids fetching the same byte ranges from
// S3 or MinIO over and over.
package cache
