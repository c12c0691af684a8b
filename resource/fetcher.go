package resource

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/lingmatch/blobstore"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// ErrChecksumMismatch is wrapped into fetch errors when every attempt
// produced bytes that failed verification.
type ErrChecksumMismatch struct {
	Name     string
	Expected string
	Actual   string
}

func (e *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s", e.Name, e.Expected, e.Actual)
}

// Fetcher retrieves named resources from a blobstore, verifies their sha256
// checksum with bounded retries, and caches verified copies in a local
// directory. Concurrent fetches of the same resource are deduplicated.
type Fetcher struct {
	store      blobstore.BlobStore
	cacheDir   string
	manifest   *Manifest
	limiter    *rate.Limiter
	maxRetries int
	logger     *slog.Logger
	sf         singleflight.Group
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCacheDir sets the local cache directory. If unset, fetched resources
// are not cached.
func WithCacheDir(dir string) Option {
	return func(f *Fetcher) { f.cacheDir = dir }
}

// WithManifest attaches a manifest recording verified resources.
func WithManifest(m *Manifest) Option {
	return func(f *Fetcher) { f.manifest = m }
}

// WithRateLimit caps download throughput in bytes per second.
func WithRateLimit(bytesPerSec int) Option {
	return func(f *Fetcher) {
		if bytesPerSec > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec)
		}
	}
}

// WithMaxRetries sets how many times a checksum mismatch is retried.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) {
		if n >= 0 {
			f.maxRetries = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a Fetcher reading from the given store.
func NewFetcher(store blobstore.BlobStore, optFns ...Option) *Fetcher {
	f := &Fetcher{
		store:      store,
		maxRetries: 2,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(f)
		}
	}
	return f
}

// Fetch returns the decoded bytes of a named resource, verifying the raw
// bytes against the expected hex sha256 checksum. An empty checksum skips
// verification. The call blocks until the resource is verified or all
// retries are exhausted.
func (f *Fetcher) Fetch(ctx context.Context, name, checksum string) ([]byte, error) {
	v, err, _ := f.sf.Do(name, func() (any, error) {
		return f.fetch(ctx, name, checksum)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (f *Fetcher) fetch(ctx context.Context, name, checksum string) ([]byte, error) {
	if data, ok := f.fromCache(name, checksum); ok {
		f.logger.DebugContext(ctx, "resource cache hit", "name", name)
		return decode(name, data)
	}

	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		start := time.Now()
		raw, err := f.download(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", name, err)
		}
		if checksum != "" {
			sum := sha256.Sum256(raw)
			actual := hex.EncodeToString(sum[:])
			if !strings.EqualFold(actual, checksum) {
				lastErr = &ErrChecksumMismatch{Name: name, Expected: checksum, Actual: actual}
				f.logger.WarnContext(ctx, "resource checksum mismatch, retrying",
					"name", name, "attempt", attempt+1)
				continue
			}
		}
		f.logger.InfoContext(ctx, "resource fetched",
			"name", name, "bytes", len(raw), "duration", time.Since(start))
		f.toCache(ctx, name, checksum, raw)
		return decode(name, raw)
	}
	return nil, fmt.Errorf("fetch %s: retries exhausted: %w", name, lastErr)
}

func (f *Fetcher) download(ctx context.Context, name string) ([]byte, error) {
	rc, err := f.store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if f.limiter != nil {
		r = &rateLimitedReader{r: rc, limiter: f.limiter, ctx: ctx}
	}
	return io.ReadAll(r)
}

// rateLimitedReader throttles reads against a shared limiter.
type rateLimitedReader struct {
	r       io.Reader
	limiter *rate.Limiter
	ctx     context.Context
}

func (r *rateLimitedReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		if werr := r.limiter.WaitN(r.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}

func (f *Fetcher) cachePath(name string) string {
	return filepath.Join(f.cacheDir, filepath.Base(name))
}

func (f *Fetcher) fromCache(name, checksum string) ([]byte, bool) {
	if f.cacheDir == "" {
		return nil, false
	}
	data, err := os.ReadFile(f.cachePath(name))
	if err != nil {
		return nil, false
	}
	if checksum != "" {
		sum := sha256.Sum256(data)
		if !strings.EqualFold(hex.EncodeToString(sum[:]), checksum) {
			return nil, false
		}
	}
	return data, true
}

// toCache writes the raw bytes via a uniquely named temp file and an atomic
// rename. Cache failures are logged, never fatal.
func (f *Fetcher) toCache(ctx context.Context, name, checksum string, data []byte) {
	if f.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(f.cacheDir, 0o755); err != nil {
		f.logger.WarnContext(ctx, "resource cache unavailable", "error", err)
		return
	}
	tmp := filepath.Join(f.cacheDir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		f.logger.WarnContext(ctx, "resource cache write failed", "name", name, "error", err)
		return
	}
	if err := os.Rename(tmp, f.cachePath(name)); err != nil {
		os.Remove(tmp)
		f.logger.WarnContext(ctx, "resource cache rename failed", "name", name, "error", err)
		return
	}
	if f.manifest != nil {
		err := f.manifest.Record(Entry{
			Name:      name,
			Checksum:  checksum,
			Size:      int64(len(data)),
			FetchedAt: time.Now().UTC(),
		})
		if err != nil {
			f.logger.WarnContext(ctx, "resource manifest record failed", "name", name, "error", err)
		}
	}
}
