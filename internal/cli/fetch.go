package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"

	"github.com/hupe1980/lingmatch/blobstore"
	minioblob "github.com/hupe1980/lingmatch/blobstore/minio"
	s3blob "github.com/hupe1980/lingmatch/blobstore/s3"
	"github.com/hupe1980/lingmatch/resource"
)

func newFetchCmd() *cobra.Command {
	var (
		checksum  string
		outPath   string
		rateLimit int
		store     StoreConfig
	)

	cmd := &cobra.Command{
		Use:   "fetch NAME",
		Short: "Fetch a shared resource (dictionary, profile table) into the local cache",
		Long: `Fetch downloads a named resource from the configured store, verifies its
checksum, decompresses it (.gz and .lz4 are recognized), and caches it under
the cache directory. The store backend, bucket, and credentials come from the
config file or LINGMATCH_* environment variables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0], checksum, outPath, rateLimit, mergeStoreConfig(cfg.Store, store))
		},
	}

	cmd.Flags().StringVar(&checksum, "checksum", "", "expected SHA-256 of the stored object")
	cmd.Flags().StringVarP(&outPath, "out", "O", "", "write the resource to this file instead of stdout")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 0, "download rate limit in bytes per second (0 = unlimited)")
	cmd.Flags().StringVar(&store.Backend, "backend", "", "store backend: local, s3, or minio (overrides config)")
	cmd.Flags().StringVar(&store.Root, "root", "", "root directory for the local backend")
	cmd.Flags().StringVar(&store.Bucket, "bucket", "", "bucket for the s3/minio backends")
	cmd.Flags().StringVar(&store.Prefix, "prefix", "", "key prefix inside the bucket")
	cmd.Flags().StringVar(&store.Endpoint, "endpoint", "", "endpoint for the minio backend")

	return cmd
}

// mergeStoreConfig overlays flag values onto the config-file store settings.
func mergeStoreConfig(base, flags StoreConfig) StoreConfig {
	if flags.Backend != "" {
		base.Backend = flags.Backend
	}
	if flags.Root != "" {
		base.Root = flags.Root
	}
	if flags.Bucket != "" {
		base.Bucket = flags.Bucket
	}
	if flags.Prefix != "" {
		base.Prefix = flags.Prefix
	}
	if flags.Endpoint != "" {
		base.Endpoint = flags.Endpoint
	}
	return base
}

func runFetch(cmd *cobra.Command, name, checksum, outPath string, rateLimit int, sc StoreConfig) error {
	ctx := cmd.Context()

	store, err := openStore(cmd, sc)
	if err != nil {
		return err
	}

	opts := []resource.Option{
		resource.WithCacheDir(cfg.CacheDir),
	}
	if verbose {
		opts = append(opts, resource.WithLogger(newSlogger()))
	}
	if rateLimit > 0 {
		opts = append(opts, resource.WithRateLimit(rateLimit))
	} else if cfg.RateLimit > 0 {
		opts = append(opts, resource.WithRateLimit(int(cfg.RateLimit)))
	}
	if cfg.ManifestPath != "" {
		manifest, err := resource.OpenManifest(cfg.ManifestPath)
		if err != nil {
			return fmt.Errorf("open manifest: %w", err)
		}
		defer manifest.Close()
		opts = append(opts, resource.WithManifest(manifest))
	}

	fetcher := resource.NewFetcher(store, opts...)

	data, err := fetcher.Fetch(ctx, name, checksum)
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}

func openStore(cmd *cobra.Command, sc StoreConfig) (blobstore.BlobStore, error) {
	switch sc.Backend {
	case "", "local":
		root := sc.Root
		if root == "" {
			root = "."
		}
		return blobstore.NewLocalStore(root), nil
	case "s3":
		if sc.Bucket == "" {
			return nil, fmt.Errorf("store.bucket is required for the s3 backend")
		}
		return s3blob.NewStoreFromConfig(cmd.Context(), sc.Bucket, sc.Prefix)
	case "minio":
		if sc.Endpoint == "" || sc.Bucket == "" {
			return nil, fmt.Errorf("store.endpoint and store.bucket are required for the minio backend")
		}
		client, err := minio.New(sc.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(sc.AccessKey, sc.SecretKey, ""),
			Secure: sc.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return minioblob.NewStore(client, sc.Bucket, sc.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (want local, s3, or minio)", sc.Backend)
	}
}

func init() {
	rootCmd.AddCommand(newFetchCmd())
}
