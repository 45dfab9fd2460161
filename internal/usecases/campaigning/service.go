package campaigning

import (
	"context"
	"errors"
	"strings"

	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"github.com/vfg2006/campaign-manager-api/pkg/utils"
)

var (
	// ErrCampaignNotFound indica campanha inexistente no escopo do tenant
	ErrCampaignNotFound = errors.New("campanha não encontrada")
	// ErrDuplicateCampaignID indica colisão de identificador no cadastro
	ErrDuplicateCampaignID = errors.New("campaign_id já cadastrado")
	// ErrUnknownAds indica vínculo com anúncios que não pertencem ao tenant
	ErrUnknownAds = errors.New("anúncios inexistentes no tenant")
	// ErrNoAdsInformed indica attach/detach sem nenhum anúncio
	ErrNoAdsInformed = errors.New("nenhum anúncio informado")
)

// ListResult é a página de campanhas com o total do filtro
type ListResult struct {
	Campaigns []*domain.Campaign `json:"campaigns"`
	Total     int64              `json:"total"`
}

type CampaignManager interface {
	Create(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error)
	Get(ctx context.Context, businessID, campaignID string) (*domain.Campaign, error)
	List(ctx context.Context, businessID string, filters repository.CampaignListFilters) (*ListResult, error)
	Update(ctx context.Context, businessID, campaignID string, patch *domain.CampaignPatch) (*domain.Campaign, error)
	Delete(ctx context.Context, businessID, campaignID string) error
	AttachAds(ctx context.Context, businessID, campaignID string, adIDs []string) (*domain.Campaign, error)
	DetachAds(ctx context.Context, businessID, campaignID string, adIDs []string) (*domain.Campaign, error)
}

type Service struct {
	campaignRepo repository.CampaignRepository
	adRepo       repository.AdRepository
}

func NewService(campaignRepo repository.CampaignRepository, adRepo repository.AdRepository) CampaignManager {
	return &Service{
		campaignRepo: campaignRepo,
		adRepo:       adRepo,
	}
}

func (s *Service) Create(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	if err := campaign.Validate(); err != nil {
		return nil, err
	}

	if len(campaign.AdIDs) > 0 {
		if err := s.ensureAdsExist(ctx, campaign.BusinessID, campaign.AdIDs); err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(campaign.CampaignID) == "" {
		campaign.CampaignID = utils.NewSortableID()
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, ErrDuplicateCampaignID
		}
		return nil, err
	}

	return campaign, nil
}

func (s *Service) Get(ctx context.Context, businessID, campaignID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, businessID, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	return campaign, nil
}

func (s *Service) List(ctx context.Context, businessID string, filters repository.CampaignListFilters) (*ListResult, error) {
	if filters.Limit == 0 || filters.Limit > 100 {
		filters.Limit = 20
	}

	campaigns, total, err := s.campaignRepo.List(ctx, businessID, filters)
	if err != nil {
		return nil, err
	}

	return &ListResult{Campaigns: campaigns, Total: total}, nil
}

func (s *Service) Update(ctx context.Context, businessID, campaignID string, patch *domain.CampaignPatch) (*domain.Campaign, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if patch.AdIDs != nil {
		if err := s.ensureAdsExist(ctx, businessID, patch.AdIDs); err != nil {
			return nil, err
		}
	}

	campaign, err := s.campaignRepo.Update(ctx, businessID, campaignID, patch)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	return campaign, nil
}

func (s *Service) Delete(ctx context.Context, businessID, campaignID string) error {
	deleted, err := s.campaignRepo.Delete(ctx, businessID, campaignID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCampaignNotFound
	}

	return nil
}

// AttachAds vincula anúncios do tenant à campanha, ignorando duplicatas
func (s *Service) AttachAds(ctx context.Context, businessID, campaignID string, adIDs []string) (*domain.Campaign, error) {
	adIDs = normalizeIDs(adIDs)
	if len(adIDs) == 0 {
		return nil, ErrNoAdsInformed
	}

	if err := s.ensureAdsExist(ctx, businessID, adIDs); err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepo.AttachAds(ctx, businessID, campaignID, adIDs)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	return campaign, nil
}

// DetachAds desvincula anúncios da campanha; IDs não vinculados são ignorados
func (s *Service) DetachAds(ctx context.Context, businessID, campaignID string, adIDs []string) (*domain.Campaign, error) {
	adIDs = normalizeIDs(adIDs)
	if len(adIDs) == 0 {
		return nil, ErrNoAdsInformed
	}

	campaign, err := s.campaignRepo.DetachAds(ctx, businessID, campaignID, adIDs)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	return campaign, nil
}

// ensureAdsExist confirma que todos os anúncios pertencem ao tenant
func (s *Service) ensureAdsExist(ctx context.Context, businessID string, adIDs []string) error {
	count, err := s.adRepo.CountByIDs(ctx, businessID, adIDs)
	if err != nil {
		return err
	}
	if count != int64(len(adIDs)) {
		return ErrUnknownAds
	}
	return nil
}

func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
