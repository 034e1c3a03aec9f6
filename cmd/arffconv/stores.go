package main

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/arffconv/blobstore"
	minioblob "github.com/hupe1980/arffconv/blobstore/minio"
	s3blob "github.com/hupe1980/arffconv/blobstore/s3"
	"github.com/hupe1980/arffconv/internal/config"
	"github.com/hupe1980/arffconv/resource"
)

func openInput(ctx context.Context, sc config.StoreConfig, rc *resource.Controller) (blobstore.BlobStore, error) {
	store, err := openStore(ctx, sc)
	if err != nil {
		return nil, err
	}
	if sc.CacheBytes > 0 {
		return blobstore.NewLRUCachingStore(store, sc.CacheBytes, rc), nil
	}
	return store, nil
}

func openOutput(ctx context.Context, sc config.StoreConfig) (blobstore.WritableStore, error) {
	return openStore(ctx, sc)
}

func openStore(ctx context.Context, sc config.StoreConfig) (blobstore.Store, error) {
	switch sc.Type {
	case "", config.StoreLocal:
		return blobstore.NewLocalStore(sc.Path), nil

	case config.StoreS3:
		var optFns []func(*awsconfig.LoadOptions) error
		if sc.Region != "" {
			optFns = append(optFns, awsconfig.WithRegion(sc.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return s3blob.NewStore(awss3.NewFromConfig(awsCfg), sc.Bucket, sc.Prefix), nil

	case config.StoreMinio:
		client, err := minio.New(sc.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(sc.AccessKey, sc.SecretKey, ""),
			Secure: sc.Secure,
			Region: sc.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return minioblob.NewStore(client, sc.Bucket, sc.Prefix), nil

	default:
		return nil, fmt.Errorf("unknown store type %q", sc.Type)
	}
}

// location names a store the way the completion message shows it.
func location(sc config.StoreConfig) string {
	switch sc.Type {
	case config.StoreS3:
		return "s3://" + strings.TrimSuffix(sc.Bucket+"/"+sc.Prefix, "/")
	case config.StoreMinio:
		return "minio://" + strings.TrimSuffix(sc.Endpoint+"/"+sc.Bucket+"/"+sc.Prefix, "/")
	default:
		return sc.Path
	}
}
