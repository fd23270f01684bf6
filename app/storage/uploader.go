package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const MaxImageSize = 5 << 20

var (
	ErrImageTooLarge   = errors.New("image exceeds the 5MB limit")
	ErrUnsupportedType = errors.New("image must be jpeg, png, webp or gif")
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// ImageUploader validates uploaded images and writes them to an ObjectStore.
// Images are referenced by their public URL once stored.
type ImageUploader struct {
	store   ObjectStore
	maxSize int64
}

func NewImageUploader(store ObjectStore) *ImageUploader {
	return &ImageUploader{store: store, maxSize: MaxImageSize}
}

// Upload stores every file under prefix and returns their URLs in order.
// If any file fails, the ones already written are deleted again.
func (u *ImageUploader) Upload(ctx context.Context, prefix string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	keys := make([]string, 0, len(files))

	for _, fh := range files {
		key, err := u.uploadOne(ctx, prefix, fh)
		if err != nil {
			u.rollback(ctx, keys)
			return nil, fmt.Errorf("%s: %w", fh.Filename, err)
		}
		keys = append(keys, key)
		urls = append(urls, u.store.URL(key))
	}
	return urls, nil
}

func (u *ImageUploader) uploadOne(ctx context.Context, prefix string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > u.maxSize {
		return "", ErrImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, u.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > u.maxSize {
		return "", ErrImageTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return "", ErrUnsupportedType
	}

	key := fmt.Sprintf("%s/%s%s", strings.Trim(prefix, "/"), uuid.New().String(), mtype.Extension())
	if err := u.store.PutObject(ctx, key, bytes.NewReader(data), int64(len(data)), mtype.String()); err != nil {
		return "", err
	}
	return key, nil
}

func (u *ImageUploader) rollback(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := u.store.DeleteObject(ctx, key); err != nil {
			log.Printf("ImageUploader: rollback delete %s failed: %v", key, err)
		}
	}
}

// Remove deletes the object behind an image URL. URLs that do not belong
// to the store, such as seeded external images, are ignored.
func (u *ImageUploader) Remove(ctx context.Context, url string) error {
	key, ok := u.KeyFor(url)
	if !ok {
		return nil
	}
	return u.store.DeleteObject(ctx, key)
}

// KeyFor maps a public URL produced by this uploader back to its object key.
func (u *ImageUploader) KeyFor(url string) (string, bool) {
	base := u.store.URL("")
	if url == "" || !strings.HasPrefix(url, base) {
		return "", false
	}
	key := strings.TrimPrefix(url, base)
	return key, key != ""
}
