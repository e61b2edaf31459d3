package blob

import (
	"context"
	"fmt"

	"propertybook/internal/config"
	"propertybook/internal/infra/blob/fs"
	"propertybook/internal/infra/blob/memory"
	"propertybook/internal/infra/blob/s3"
)

// Open selects a Store from cfg.Driver: fs (default), s3 or memory.
func Open(ctx context.Context, cfg config.BackupConfig) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return fs.New(cfg.FSRoot)
	case DriverS3:
		return s3.New(ctx, s3.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	case DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
