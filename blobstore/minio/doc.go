// Package minio provides a BlobStore implementation using the MinIO client,
// compatible with MinIO and other S3-compatible storage systems.
package minio
