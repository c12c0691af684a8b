// Package s3 provides a BlobStore implementation backed by Amazon S3 using
// the AWS SDK for Go v2.
package s3
