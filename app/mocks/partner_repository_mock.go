package mocks

import (
	"context"

	"github.com/gsk-limited/storefront/app/models"
	"github.com/stretchr/testify/mock"
)

type PartnerRepository struct{ mock.Mock }

func (m *PartnerRepository) Create(ctx context.Context, partner *models.Partner) error {
	return m.Called(ctx, partner).Error(0)
}

func (m *PartnerRepository) GetByID(ctx context.Context, id string) (*models.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partner), args.Error(1)
}

func (m *PartnerRepository) GetAll(ctx context.Context) ([]models.Partner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Partner), args.Error(1)
}

func (m *PartnerRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PartnerRepository) Update(ctx context.Context, partner *models.Partner) error {
	return m.Called(ctx, partner).Error(0)
}

func (m *PartnerRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
