// Package storage puts and deletes product, category and partner images.
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidKey = errors.New("storage: invalid object key")

type ObjectStore interface {
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	DeleteObject(ctx context.Context, key string) error
	// URL is the public address clients use to fetch key.
	URL(key string) string
}
