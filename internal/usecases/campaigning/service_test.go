package campaigning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	service := &Service{campaignRepo: mockCampaignRepo, adRepo: mockAdRepo}

	t.Run("Campanha com anúncios do tenant é criada", func(t *testing.T) {
		mockAdRepo.EXPECT().
			CountByIDs(gomock.Any(), "enchanments", []string{"enchanments-ad-1", "enchanments-ad-2"}).
			Return(int64(2), nil)

		mockCampaignRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil)

		campaign, err := service.Create(context.Background(), &domain.Campaign{
			BusinessID: "enchanments",
			Name:       "Spring Garden Weddings",
			Status:     "active",
			AdIDs:      []string{"enchanments-ad-1", "enchanments-ad-2"},
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, campaign.CampaignID)
	})

	t.Run("Anúncio de outro tenant reprova o vínculo", func(t *testing.T) {
		mockAdRepo.EXPECT().
			CountByIDs(gomock.Any(), "enchanments", []string{"luxury-ad-1"}).
			Return(int64(0), nil)

		_, err := service.Create(context.Background(), &domain.Campaign{
			BusinessID: "enchanments",
			Name:       "Campanha inválida",
			AdIDs:      []string{"luxury-ad-1"},
		})

		assert.ErrorIs(t, err, ErrUnknownAds)
	})

	t.Run("Sem anúncios não consulta a biblioteca e aplica status padrão", func(t *testing.T) {
		mockCampaignRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *domain.Campaign) error {
				assert.Equal(t, "draft", c.Status)
				assert.Equal(t, "wedding_decor", c.BusinessType)
				return nil
			})

		_, err := service.Create(context.Background(), &domain.Campaign{
			BusinessID: "enchanments",
			Name:       "Campanha sem anúncios",
		})

		assert.NoError(t, err)
	})

	t.Run("Janela de veiculação invertida reprova a validação", func(t *testing.T) {
		start := timeDate(2026, 9, 1)
		end := timeDate(2026, 8, 1)

		_, err := service.Create(context.Background(), &domain.Campaign{
			BusinessID: "enchanments",
			Name:       "Campanha com janela invertida",
			Targeting: domain.Targeting{
				StartDate: &start,
				EndDate:   &end,
			},
		})

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestService_AttachAds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	service := &Service{campaignRepo: mockCampaignRepo, adRepo: mockAdRepo}

	t.Run("IDs duplicados e em branco são normalizados antes do vínculo", func(t *testing.T) {
		mockAdRepo.EXPECT().
			CountByIDs(gomock.Any(), "enchanments", []string{"enchanments-ad-1", "enchanments-ad-2"}).
			Return(int64(2), nil)

		mockCampaignRepo.EXPECT().
			AttachAds(gomock.Any(), "enchanments", "enchanments-campaign-1", []string{"enchanments-ad-1", "enchanments-ad-2"}).
			Return(&domain.Campaign{
				CampaignID: "enchanments-campaign-1",
				AdIDs:      []string{"enchanments-ad-1", "enchanments-ad-2"},
			}, nil)

		campaign, err := service.AttachAds(
			context.Background(),
			"enchanments",
			"enchanments-campaign-1",
			[]string{"enchanments-ad-1", " enchanments-ad-2 ", "enchanments-ad-1", ""},
		)

		assert.NoError(t, err)
		assert.Len(t, campaign.AdIDs, 2)
	})

	t.Run("Lista vazia após normalização é rejeitada", func(t *testing.T) {
		_, err := service.AttachAds(context.Background(), "enchanments", "enchanments-campaign-1", []string{"", "  "})

		assert.ErrorIs(t, err, ErrNoAdsInformed)
	})

	t.Run("Campanha inexistente retorna erro de não encontrada", func(t *testing.T) {
		mockAdRepo.EXPECT().
			CountByIDs(gomock.Any(), "enchanments", []string{"enchanments-ad-1"}).
			Return(int64(1), nil)

		mockCampaignRepo.EXPECT().
			AttachAds(gomock.Any(), "enchanments", "nao-existe", []string{"enchanments-ad-1"}).
			Return(nil, nil)

		_, err := service.AttachAds(context.Background(), "enchanments", "nao-existe", []string{"enchanments-ad-1"})

		assert.ErrorIs(t, err, ErrCampaignNotFound)
	})
}

func TestService_DetachAds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := &Service{campaignRepo: mockCampaignRepo}

	t.Run("Desvincular não exige que os anúncios existam na biblioteca", func(t *testing.T) {
		mockCampaignRepo.EXPECT().
			DetachAds(gomock.Any(), "enchanments", "enchanments-campaign-1", []string{"anuncio-ja-removido"}).
			Return(&domain.Campaign{
				CampaignID: "enchanments-campaign-1",
				AdIDs:      []string{},
			}, nil)

		campaign, err := service.DetachAds(context.Background(), "enchanments", "enchanments-campaign-1", []string{"anuncio-ja-removido"})

		assert.NoError(t, err)
		assert.Empty(t, campaign.AdIDs)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	service := &Service{campaignRepo: mockCampaignRepo, adRepo: mockAdRepo}

	t.Run("Patch com ad_ids revalida a propriedade dos anúncios", func(t *testing.T) {
		mockAdRepo.EXPECT().
			CountByIDs(gomock.Any(), "enchanments", []string{"enchanments-ad-3"}).
			Return(int64(1), nil)

		mockCampaignRepo.EXPECT().
			Update(gomock.Any(), "enchanments", "enchanments-campaign-2", gomock.Any()).
			Return(&domain.Campaign{CampaignID: "enchanments-campaign-2"}, nil)

		_, err := service.Update(context.Background(), "enchanments", "enchanments-campaign-2", &domain.CampaignPatch{
			AdIDs: []string{"enchanments-ad-3"},
		})

		assert.NoError(t, err)
	})

	t.Run("Patch vazio é reprovado", func(t *testing.T) {
		_, err := service.Update(context.Background(), "enchanments", "enchanments-campaign-1", &domain.CampaignPatch{})

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func timeDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeIDs(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "Deduplica e apara espaços",
			input:    []string{"a", " a ", "b", ""},
			expected: []string{"a", "b"},
		},
		{
			name:     "Lista vazia permanece vazia",
			input:    []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeIDs(tt.input))
		})
	}
}
