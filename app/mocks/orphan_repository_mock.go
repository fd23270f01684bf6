package mocks

import (
	"context"

	"github.com/gsk-limited/storefront/app/models"
	"github.com/stretchr/testify/mock"
)

type OrphanRepository struct{ mock.Mock }

func (m *OrphanRepository) Record(ctx context.Context, key, reason string) error {
	return m.Called(ctx, key, reason).Error(0)
}

func (m *OrphanRepository) List(ctx context.Context, afterID string, limit int) ([]models.OrphanedObject, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrphanedObject), args.Error(1)
}

func (m *OrphanRepository) Resolve(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *OrphanRepository) Bump(ctx context.Context, id, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}
