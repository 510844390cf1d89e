package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

const (
	// EnvStorageBucket overrides the storage bucket name.
	EnvStorageBucket = "STORAGE_BUCKET"

	// EnvStorageRegion overrides the storage region.
	EnvStorageRegion = "STORAGE_REGION"

	// EnvStorageEndpoint overrides the storage endpoint URL.
	EnvStorageEndpoint = "STORAGE_ENDPOINT"

	// EnvStorageAccessKey overrides the storage access key.
	EnvStorageAccessKey = "STORAGE_ACCESS_KEY"

	// EnvStorageSecretKey overrides the storage secret key.
	EnvStorageSecretKey = "STORAGE_SECRET_KEY"

	// EnvStorageKeyPrefix overrides the object key prefix.
	EnvStorageKeyPrefix = "STORAGE_KEY_PREFIX"

	// EnvStorageMaxUploadSize overrides the maximum upload size.
	EnvStorageMaxUploadSize = "STORAGE_MAX_UPLOAD_SIZE"
)

// StorageConfig contains object storage configuration for an
// S3-compatible bucket.
type StorageConfig struct {
	Bucket           string `toml:"bucket"`
	Region           string `toml:"region"`
	Endpoint         string `toml:"endpoint"`
	AccessKey        string `toml:"access_key"`
	SecretKey        string `toml:"secret_key"`
	KeyPrefix        string `toml:"key_prefix"`
	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64
}

// MaxUploadSizeBytes returns the parsed maximum upload size in bytes.
func (c *StorageConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates
// the storage configuration.
func (c *StorageConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero
// values.
func (c *StorageConfig) Merge(overlay *StorageConfig) {
	if overlay.Bucket != "" {
		c.Bucket = overlay.Bucket
	}
	if overlay.Region != "" {
		c.Region = overlay.Region
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.AccessKey != "" {
		c.AccessKey = overlay.AccessKey
	}
	if overlay.SecretKey != "" {
		c.SecretKey = overlay.SecretKey
	}
	if overlay.KeyPrefix != "" {
		c.KeyPrefix = overlay.KeyPrefix
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
}

func (c *StorageConfig) loadDefaults() {
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "objects"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "5MB"
	}
}

func (c *StorageConfig) loadEnv() {
	if v := os.Getenv(EnvStorageBucket); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv(EnvStorageRegion); v != "" {
		c.Region = v
	}
	if v := os.Getenv(EnvStorageEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvStorageAccessKey); v != "" {
		c.AccessKey = v
	}
	if v := os.Getenv(EnvStorageSecretKey); v != "" {
		c.SecretKey = v
	}
	if v := os.Getenv(EnvStorageKeyPrefix); v != "" {
		c.KeyPrefix = v
	}
	if v := os.Getenv(EnvStorageMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *StorageConfig) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("bucket required")
	}
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint required")
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}
