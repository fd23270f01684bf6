package services

import (
	"context"
	"fmt"
	"log"

	"github.com/gsk-limited/storefront/app/repositories"
)

const orphanBatchSize = 100

type PurgeReport struct {
	Deleted int
	Failed  int
}

type OrphanService struct {
	orphanRepo repositories.OrphanRepositoryImpl
	images     ImageStore
}

func NewOrphanService(orphanRepo repositories.OrphanRepositoryImpl, images ImageStore) *OrphanService {
	return &OrphanService{orphanRepo: orphanRepo, images: images}
}

// Purge retries the delete of every recorded orphan once, walking them in
// batches of orphanBatchSize. Deleted entries are resolved; failures stay
// recorded with their attempt count bumped.
func (s *OrphanService) Purge(ctx context.Context) (PurgeReport, error) {
	var report PurgeReport

	afterID := ""
	for {
		orphans, err := s.orphanRepo.List(ctx, afterID, orphanBatchSize)
		if err != nil {
			return report, fmt.Errorf("failed to list orphaned objects: %w", err)
		}

		for _, orphan := range orphans {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if err := s.images.Remove(ctx, orphan.Key); err != nil {
				log.Printf("OrphanService.Purge: %s still failing after %d attempts: %v", orphan.Key, orphan.Attempts, err)
				report.Failed++
				if bumpErr := s.orphanRepo.Bump(ctx, orphan.ID, err.Error()); bumpErr != nil {
					return report, fmt.Errorf("failed to update orphan %s: %w", orphan.ID, bumpErr)
				}
				continue
			}
			if err := s.orphanRepo.Resolve(ctx, orphan.ID); err != nil {
				return report, fmt.Errorf("failed to resolve orphan %s: %w", orphan.ID, err)
			}
			report.Deleted++
		}

		if len(orphans) < orphanBatchSize {
			return report, nil
		}
		afterID = orphans[len(orphans)-1].ID
	}
}
