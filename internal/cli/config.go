package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the long-lived command settings that rarely change between
// runs: cache placement for fetched resources and the remote store layout.
type Config struct {
	CacheDir     string  `mapstructure:"cache_dir"`
	ManifestPath string  `mapstructure:"manifest"`
	RateLimit    float64 `mapstructure:"rate_limit"`

	Store StoreConfig `mapstructure:"store"`
}

// StoreConfig describes where `lingmatch fetch` looks for remote resources.
type StoreConfig struct {
	Backend   string `mapstructure:"backend"` // local, s3 or minio
	Root      string `mapstructure:"root"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		CacheDir: filepath.Join(home, ".lingmatch", "cache"),
		Store: StoreConfig{
			Backend: "local",
		},
	}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		v.AddConfigPath(filepath.Join(home, ".lingmatch"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LINGMATCH")
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("cache_dir", def.CacheDir)
	v.SetDefault("store.backend", def.Store.Backend)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
