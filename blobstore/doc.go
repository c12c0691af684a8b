// Package blobstore abstracts where named reference resources (baseline
// profile tables, lexicons) live. Backends exist for local directories and
// in-memory stores, with S3 and MinIO implementations in subpackages.
package blobstore
