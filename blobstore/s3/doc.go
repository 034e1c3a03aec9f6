// Package s3 implements blobstore.Store on Amazon S3.
//
// Archives are read with ranged GetObject calls, so the zip reader only
// fetches the central directory and the entries it actually opens. Wrap the
// store in a blobstore.CachingStore when the same archive is read several
// times. Outputs are written with the managed uploader.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "datasets", "spam/ZipFiles/")
package s3
