package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/gsk-limited/storefront/app/repositories"
	"github.com/gsk-limited/storefront/app/storage"
)

// ImageStore uploads form images and removes them by URL.
type ImageStore interface {
	Upload(ctx context.Context, prefix string, files []*multipart.FileHeader) ([]string, error)
	Remove(ctx context.Context, url string) error
}

// discardImages deletes images whose owning row is already gone or was
// never written. Failures are recorded so purge-orphans can retry them.
func discardImages(ctx context.Context, images ImageStore, orphans repositories.OrphanRepositoryImpl, urls []string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := images.Remove(ctx, url); err != nil {
			log.Printf("Images: failed to delete %s: %v", url, err)
			if orphans == nil {
				continue
			}
			if recErr := orphans.Record(context.WithoutCancel(ctx), url, err.Error()); recErr != nil {
				log.Printf("Images: failed to record orphan %s: %v", url, recErr)
			}
		}
	}
}

// uploadFiles reports rejected files as a validation error on field.
func uploadFiles(ctx context.Context, images ImageStore, prefix, field string, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	urls, err := images.Upload(ctx, prefix, files)
	if err != nil {
		if errors.Is(err, storage.ErrImageTooLarge) || errors.Is(err, storage.ErrUnsupportedType) {
			verr := &ValidationError{}
			verr.Add(field, err.Error())
			return nil, verr
		}
		return nil, fmt.Errorf("failed to upload images: %w", err)
	}
	return urls, nil
}
