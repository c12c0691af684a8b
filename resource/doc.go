// Package resource fetches named reference resources (baseline-profile
// tables, term lexicons) from a blobstore backend, verifies them against an
// expected checksum with bounded retries, and caches verified copies
// locally. Fetching is blocking; referenced resources must be fetched (or
// fail) before engine dispatch can use them.
package resource
