// Package minio implements blobstore.BlobStore against MinIO and other
// S3-compatible object storage via the minio-go client, for deployments
// that run their own object store rather than AWS S3.
//
// Like blobstore/s3, Store.Open fetches an object in full so the
// resulting blob satisfies blobstore.Mappable, matching how a
// dictionary archive is used regardless of where it's stored.
package minio
