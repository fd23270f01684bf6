package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gsk-limited/storefront/app/mocks"
	"github.com/gsk-limited/storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPurgeOrphans(t *testing.T) {
	orphans := new(mocks.OrphanRepository)
	images := new(mocks.ImageStore)

	orphans.On("List", mock.Anything, "", orphanBatchSize).Return([]models.OrphanedObject{
		{ID: "o1", Key: "/uploads/products/a.png", Attempts: 1},
		{ID: "o2", Key: "/uploads/products/b.png", Attempts: 3},
	}, nil)
	images.On("Remove", mock.Anything, "/uploads/products/a.png").Return(nil)
	images.On("Remove", mock.Anything, "/uploads/products/b.png").Return(errors.New("still down"))
	orphans.On("Resolve", mock.Anything, "o1").Return(nil)
	orphans.On("Bump", mock.Anything, "o2", "still down").Return(nil)

	report, err := NewOrphanService(orphans, images).Purge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PurgeReport{Deleted: 1, Failed: 1}, report)
	orphans.AssertExpectations(t)
}

func TestPurgeOrphansWalksEveryBatch(t *testing.T) {
	orphans := new(mocks.OrphanRepository)
	images := new(mocks.ImageStore)

	first := make([]models.OrphanedObject, orphanBatchSize)
	for i := range first {
		first[i] = models.OrphanedObject{ID: fmt.Sprintf("o%03d", i), Key: fmt.Sprintf("/uploads/products/%03d.png", i)}
	}
	second := []models.OrphanedObject{{ID: "o100", Key: "/uploads/products/100.png"}}

	orphans.On("List", mock.Anything, "", orphanBatchSize).Return(first, nil).Once()
	orphans.On("List", mock.Anything, "o099", orphanBatchSize).Return(second, nil).Once()
	images.On("Remove", mock.Anything, mock.Anything).Return(nil)
	orphans.On("Resolve", mock.Anything, mock.Anything).Return(nil)

	report, err := NewOrphanService(orphans, images).Purge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PurgeReport{Deleted: orphanBatchSize + 1}, report)
	orphans.AssertExpectations(t)
	images.AssertNumberOfCalls(t, "Remove", orphanBatchSize+1)
}

func TestPurgeOrphansListFailure(t *testing.T) {
	orphans := new(mocks.OrphanRepository)
	orphans.On("List", mock.Anything, "", orphanBatchSize).Return(nil, errors.New("db down"))

	_, err := NewOrphanService(orphans, new(mocks.ImageStore)).Purge(context.Background())
	assert.ErrorContains(t, err, "failed to list orphaned objects")
}
