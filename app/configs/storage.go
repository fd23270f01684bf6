package configs

import (
	"context"
	"fmt"
	"log"

	"github.com/gsk-limited/storefront/app/storage"
)

// OpenObjectStore picks the image store named by STORAGE_DRIVER.
func OpenObjectStore(ctx context.Context, env ENV) (storage.ObjectStore, error) {
	switch env.StorageDriver {
	case "", "disk":
		store, err := storage.NewDiskStore(env.StorageDir, env.StoragePublicURL)
		if err != nil {
			return nil, err
		}
		log.Printf("✅ Disk storage ready at %s", env.StorageDir)
		return store, nil
	case "s3":
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    env.S3Bucket,
			Region:    env.S3Region,
			Endpoint:  env.S3Endpoint,
			AccessKey: env.S3AccessKey,
			SecretKey: env.S3SecretKey,
			PublicURL: env.StoragePublicURL,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("✅ S3 storage ready for bucket %s", env.S3Bucket)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", env.StorageDriver)
	}
}
