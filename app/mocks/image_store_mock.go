package mocks

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"
)

type ImageStore struct{ mock.Mock }

func (m *ImageStore) Upload(ctx context.Context, prefix string, files []*multipart.FileHeader) ([]string, error) {
	args := m.Called(ctx, prefix, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *ImageStore) Remove(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}
