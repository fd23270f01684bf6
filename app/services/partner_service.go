package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gsk-limited/storefront/app/models"
	"github.com/gsk-limited/storefront/app/repositories"
)

type PartnerView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Logo      string    `json:"logo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PartnerInput struct {
	Name string                `validate:"required,min=2,max=255"`
	Logo *multipart.FileHeader `validate:"-"`
}

type PartnerService struct {
	partnerRepo repositories.PartnerRepositoryImpl
	orphanRepo  repositories.OrphanRepositoryImpl
	images      ImageStore
}

func NewPartnerService(partnerRepo repositories.PartnerRepositoryImpl, orphanRepo repositories.OrphanRepositoryImpl, images ImageStore) *PartnerService {
	return &PartnerService{partnerRepo: partnerRepo, orphanRepo: orphanRepo, images: images}
}

func newPartnerView(p *models.Partner) PartnerView {
	return PartnerView{ID: p.ID, Name: p.Name, Logo: p.Logo, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

func (s *PartnerService) GetPartners(ctx context.Context) ([]PartnerView, error) {
	partners, err := s.partnerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get partners: %w", err)
	}
	views := make([]PartnerView, 0, len(partners))
	for i := range partners {
		views = append(views, newPartnerView(&partners[i]))
	}
	return views, nil
}

func (s *PartnerService) GetPartner(ctx context.Context, id string) (*PartnerView, error) {
	partner, err := s.partnerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get partner %s: %w", id, err)
	}
	if partner == nil {
		return nil, notFound("Partner not found")
	}
	view := newPartnerView(partner)
	return &view, nil
}

func (s *PartnerService) CreatePartner(ctx context.Context, in PartnerInput) (*PartnerView, error) {
	verr := validateStruct(in)
	if in.Logo == nil {
		verr.Add("logo", "Logo is required.")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	urls, err := uploadFiles(ctx, s.images, "partners", "logo", []*multipart.FileHeader{in.Logo})
	if err != nil {
		return nil, err
	}

	partner := &models.Partner{Name: strings.TrimSpace(in.Name), Logo: urls[0]}
	if err := s.partnerRepo.Create(ctx, partner); err != nil {
		discardImages(ctx, s.images, nil, urls)
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}
	view := newPartnerView(partner)
	return &view, nil
}

// UpdatePartner renames the partner and, when a new logo is given, replaces the old one.
func (s *PartnerService) UpdatePartner(ctx context.Context, id string, in PartnerInput) (*PartnerView, error) {
	partner, err := s.partnerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get partner %s: %w", id, err)
	}
	if partner == nil {
		return nil, notFound("Partner not found")
	}
	if err := validateStruct(in).orNil(); err != nil {
		return nil, err
	}

	var uploaded, dropped []string
	if in.Logo != nil {
		uploaded, err = uploadFiles(ctx, s.images, "partners", "logo", []*multipart.FileHeader{in.Logo})
		if err != nil {
			return nil, err
		}
		dropped = []string{partner.Logo}
		partner.Logo = uploaded[0]
	}
	partner.Name = strings.TrimSpace(in.Name)

	if err := s.partnerRepo.Update(ctx, partner); err != nil {
		discardImages(ctx, s.images, nil, uploaded)
		return nil, fmt.Errorf("failed to update partner %s: %w", id, err)
	}
	discardImages(ctx, s.images, s.orphanRepo, dropped)

	view := newPartnerView(partner)
	return &view, nil
}

func (s *PartnerService) DeletePartner(ctx context.Context, id string) error {
	partner, err := s.partnerRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get partner %s: %w", id, err)
	}
	if partner == nil {
		return notFound("Partner not found")
	}
	if err := s.partnerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete partner %s: %w", id, err)
	}
	discardImages(ctx, s.images, s.orphanRepo, []string{partner.Logo})
	return nil
}

func (s *PartnerService) CountPartners(ctx context.Context) (int64, error) {
	return s.partnerRepo.CountAll(ctx)
}
