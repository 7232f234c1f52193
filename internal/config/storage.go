package config

import "fmt"

// Supported storage backends.
const (
	StorageTypeFS  = "fs"
	StorageTypeGCS = "gcs"
)

// StorageConfig holds uploaded-image storage configuration.
// Images are opaque blobs keyed by generated filename; the backend is
// selected at startup and never mixed.
type StorageConfig struct {
	Type      string `env:"TASKPAD_STORAGE_TYPE" default:"fs"` // fs, gcs
	UploadDir string `env:"TASKPAD_UPLOAD_DIR" default:"./uploads"`
	GCSBucket string `env:"TASKPAD_GCS_BUCKET"`
}

// Validate checks that the selected backend has what it needs.
func (c *StorageConfig) Validate() error {
	switch c.Type {
	case StorageTypeFS:
		if c.UploadDir == "" {
			return fmt.Errorf("TASKPAD_UPLOAD_DIR is required when TASKPAD_STORAGE_TYPE is 'fs'")
		}
	case StorageTypeGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("TASKPAD_GCS_BUCKET is required when TASKPAD_STORAGE_TYPE is 'gcs'")
		}
	default:
		return fmt.Errorf("unknown TASKPAD_STORAGE_TYPE: %s", c.Type)
	}
	return nil
}
