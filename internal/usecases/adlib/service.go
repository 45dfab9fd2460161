package adlib

import (
	"context"
	"errors"
	"strings"

	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"github.com/vfg2006/campaign-manager-api/pkg/utils"
)

var (
	// ErrAdNotFound indica anúncio inexistente no escopo do tenant
	ErrAdNotFound = errors.New("anúncio não encontrado")
	// ErrDuplicateAdID indica colisão de identificador no cadastro
	ErrDuplicateAdID = errors.New("ad_id já cadastrado")
)

// ListResult é a página de anúncios com o total do filtro
type ListResult struct {
	Ads   []*domain.Ad `json:"ads"`
	Total int64        `json:"total"`
}

type AdLibrarian interface {
	Create(ctx context.Context, ad *domain.Ad) (*domain.Ad, error)
	Get(ctx context.Context, businessID, adID string) (*domain.Ad, error)
	List(ctx context.Context, businessID string, filters repository.AdListFilters) (*ListResult, error)
	Update(ctx context.Context, businessID, adID string, patch *domain.AdPatch) (*domain.Ad, error)
	Delete(ctx context.Context, businessID, adID string) error
	CampaignsUsingAd(ctx context.Context, businessID, adID string) ([]*domain.Campaign, error)
}

type Service struct {
	adRepo       repository.AdRepository
	campaignRepo repository.CampaignRepository
}

func NewService(adRepo repository.AdRepository, campaignRepo repository.CampaignRepository) AdLibrarian {
	return &Service{
		adRepo:       adRepo,
		campaignRepo: campaignRepo,
	}
}

func (s *Service) Create(ctx context.Context, ad *domain.Ad) (*domain.Ad, error) {
	if err := ad.Validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(ad.AdID) == "" {
		ad.AdID = utils.NewSortableID()
	}

	if err := s.adRepo.Create(ctx, ad); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, ErrDuplicateAdID
		}
		return nil, err
	}

	return ad, nil
}

func (s *Service) Get(ctx context.Context, businessID, adID string) (*domain.Ad, error) {
	ad, err := s.adRepo.GetByID(ctx, businessID, adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrAdNotFound
	}

	return ad, nil
}

func (s *Service) List(ctx context.Context, businessID string, filters repository.AdListFilters) (*ListResult, error) {
	if filters.Limit == 0 || filters.Limit > 100 {
		filters.Limit = 20
	}

	ads, total, err := s.adRepo.List(ctx, businessID, filters)
	if err != nil {
		return nil, err
	}

	return &ListResult{Ads: ads, Total: total}, nil
}

func (s *Service) Update(ctx context.Context, businessID, adID string, patch *domain.AdPatch) (*domain.Ad, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	ad, err := s.adRepo.Update(ctx, businessID, adID, patch)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrAdNotFound
	}

	return ad, nil
}

// Delete remove o anúncio. Campanhas que ainda o referenciam e registros
// históricos ficam como estão; os rollups toleram a referência órfã.
func (s *Service) Delete(ctx context.Context, businessID, adID string) error {
	deleted, err := s.adRepo.Delete(ctx, businessID, adID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAdNotFound
	}

	return nil
}

// CampaignsUsingAd lista as campanhas do tenant que referenciam o anúncio
func (s *Service) CampaignsUsingAd(ctx context.Context, businessID, adID string) ([]*domain.Campaign, error) {
	ad, err := s.adRepo.GetByID(ctx, businessID, adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrAdNotFound
	}

	return s.campaignRepo.ListUsingAd(ctx, businessID, adID)
}
