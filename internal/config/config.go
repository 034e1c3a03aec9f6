// Package config loads the optional YAML manifest of the arffconv command.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultInputDir  = "dataset/ZipFiles"
	DefaultOutputDir = "dataset/ARFF"
)

// Store kinds.
const (
	StoreLocal = "local"
	StoreS3    = "s3"
	StoreMinio = "minio"
)

// Config is the whole manifest.
type Config struct {
	Input       StoreConfig     `yaml:"input"`
	Output      StoreConfig     `yaml:"output"`
	Families    []string        `yaml:"families"`
	Discover    bool            `yaml:"discover"`
	ErrorPolicy string          `yaml:"error_policy"`
	Parallelism int             `yaml:"parallelism"`
	Compression string          `yaml:"compression"`
	Sidecar     bool            `yaml:"sidecar"`
	Codec       string          `yaml:"codec"`
	Comment     string          `yaml:"comment"`
	LogLevel    string          `yaml:"log_level"`
	Resources   ResourcesConfig `yaml:"resources"`
}

// StoreConfig locates archives or outputs.
type StoreConfig struct {
	Type string `yaml:"type"`
	// Path is the directory of a local store.
	Path   string `yaml:"path"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
	// Endpoint, AccessKey, SecretKey and Secure configure MinIO.
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
	// CacheBytes enables an LRU block cache in front of remote reads.
	CacheBytes int64 `yaml:"cache_bytes"`
}

// ResourcesConfig mirrors resource.Config.
type ResourcesConfig struct {
	MemoryLimitBytes   int64 `yaml:"memory_limit_bytes"`
	MaxWorkers         int64 `yaml:"max_workers"`
	IOLimitBytesPerSec int64 `yaml:"io_limit_bytes_per_sec"`
}

// Default returns the configuration used without a manifest: the three
// families read from dataset/ZipFiles and written to dataset/ARFF.
func Default() *Config {
	return &Config{
		Input:       StoreConfig{Type: StoreLocal, Path: DefaultInputDir},
		Output:      StoreConfig{Type: StoreLocal, Path: DefaultOutputDir},
		Families:    []string{"enron1", "enron4", "hw2"},
		ErrorPolicy: "continue",
		Parallelism: 1,
		Compression: "none",
		Codec:       "go-json",
		LogLevel:    "warn",
	}
}

// Load reads the manifest at path on top of Default. ${VAR} references are
// expanded from the environment before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a manifest on top of Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the store sections and numeric limits.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Input.validate("input"); err != nil {
		errs = append(errs, err)
	}
	if err := c.Output.validate("output"); err != nil {
		errs = append(errs, err)
	}
	if c.Parallelism < 0 {
		errs = append(errs, fmt.Errorf("config: parallelism must not be negative, got %d", c.Parallelism))
	}
	if len(c.Families) == 0 && !c.Discover {
		errs = append(errs, errors.New("config: no families and discover is off"))
	}
	return errors.Join(errs...)
}

func (s *StoreConfig) validate(section string) error {
	switch s.Type {
	case "", StoreLocal:
		if s.Path == "" {
			return fmt.Errorf("config: %s: local store needs a path", section)
		}
	case StoreS3:
		if s.Bucket == "" {
			return fmt.Errorf("config: %s: s3 store needs a bucket", section)
		}
	case StoreMinio:
		if s.Bucket == "" || s.Endpoint == "" {
			return fmt.Errorf("config: %s: minio store needs an endpoint and a bucket", section)
		}
	default:
		return fmt.Errorf("config: %s: unknown store type %q", section, s.Type)
	}
	return nil
}
