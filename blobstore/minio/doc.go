// Package minio implements blobstore.Store on MinIO and other S3-compatible
// object stores (Ceph, Garage, SeaweedFS) using the MinIO client.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	in := minioblob.NewStore(client, "datasets", "ZipFiles/")
//	out := minioblob.NewStore(client, "datasets", "ARFF/")
//	conv, err := arffconv.New(in, out)
package minio
