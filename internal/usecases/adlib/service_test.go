package adlib

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := &Service{adRepo: mockAdRepo, campaignRepo: mockCampaignRepo}

	t.Run("Sem ad_id informado deve gerar identificador", func(t *testing.T) {
		mockAdRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ad *domain.Ad) error {
				assert.NotEmpty(t, ad.AdID)
				return nil
			})

		ad, err := service.Create(context.Background(), &domain.Ad{
			BusinessID: "enchanments",
			Title:      "Fairy Light Aisle Display",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, ad.AdID)
		assert.Equal(t, "active", ad.Status) // status padrão
	})

	t.Run("Ad_id duplicado deve retornar erro de conflito", func(t *testing.T) {
		mockAdRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(repository.ErrDuplicateID)

		_, err := service.Create(context.Background(), &domain.Ad{
			AdID:       "enchanments-ad-1",
			BusinessID: "enchanments",
			Title:      "Fairy Light Aisle Display",
		})

		assert.ErrorIs(t, err, ErrDuplicateAdID)
	})

	t.Run("Título em branco deve falhar na validação sem tocar o repositório", func(t *testing.T) {
		_, err := service.Create(context.Background(), &domain.Ad{
			BusinessID: "enchanments",
			Title:      "   ",
		})

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "title", validationErr.Field)
	})

	t.Run("Status desconhecido deve falhar na validação", func(t *testing.T) {
		_, err := service.Create(context.Background(), &domain.Ad{
			BusinessID: "enchanments",
			Title:      "Garden Reception Setup",
			Status:     "running",
		})

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	service := &Service{adRepo: mockAdRepo}

	t.Run("Limite zero cai para o padrão de 20", func(t *testing.T) {
		mockAdRepo.EXPECT().
			List(gomock.Any(), "enchanments", repository.AdListFilters{Limit: 20}).
			Return([]*domain.Ad{}, int64(0), nil)

		result, err := service.List(context.Background(), "enchanments", repository.AdListFilters{})

		assert.NoError(t, err)
		assert.Equal(t, int64(0), result.Total)
	})

	t.Run("Limite acima do teto é rebaixado", func(t *testing.T) {
		mockAdRepo.EXPECT().
			List(gomock.Any(), "enchanments", repository.AdListFilters{Limit: 20}).
			Return([]*domain.Ad{}, int64(0), nil)

		_, err := service.List(context.Background(), "enchanments", repository.AdListFilters{Limit: 500})

		assert.NoError(t, err)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	service := &Service{adRepo: mockAdRepo}

	t.Run("Anúncio referenciado por campanha ainda pode ser removido", func(t *testing.T) {
		mockAdRepo.EXPECT().
			Delete(gomock.Any(), "enchanments", "enchanments-ad-1").
			Return(true, nil)

		err := service.Delete(context.Background(), "enchanments", "enchanments-ad-1")

		assert.NoError(t, err)
	})

	t.Run("Anúncio inexistente deve retornar erro de não encontrado", func(t *testing.T) {
		mockAdRepo.EXPECT().
			Delete(gomock.Any(), "enchanments", "nao-existe").
			Return(false, nil)

		err := service.Delete(context.Background(), "enchanments", "nao-existe")

		assert.ErrorIs(t, err, ErrAdNotFound)
	})
}

func TestService_CampaignsUsingAd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := &Service{adRepo: mockAdRepo, campaignRepo: mockCampaignRepo}

	t.Run("Deve listar campanhas que referenciam o anúncio", func(t *testing.T) {
		mockAdRepo.EXPECT().
			GetByID(gomock.Any(), "enchanments", "enchanments-ad-1").
			Return(&domain.Ad{AdID: "enchanments-ad-1"}, nil)

		mockCampaignRepo.EXPECT().
			ListUsingAd(gomock.Any(), "enchanments", "enchanments-ad-1").
			Return([]*domain.Campaign{
				{CampaignID: "enchanments-campaign-1"},
			}, nil)

		campaigns, err := service.CampaignsUsingAd(context.Background(), "enchanments", "enchanments-ad-1")

		assert.NoError(t, err)
		assert.Len(t, campaigns, 1)
		assert.Equal(t, "enchanments-campaign-1", campaigns[0].CampaignID)
	})

	t.Run("Anúncio inexistente deve falhar antes de consultar campanhas", func(t *testing.T) {
		mockAdRepo.EXPECT().
			GetByID(gomock.Any(), "enchanments", "nao-existe").
			Return(nil, nil)

		_, err := service.CampaignsUsingAd(context.Background(), "enchanments", "nao-existe")

		assert.ErrorIs(t, err, ErrAdNotFound)
	})
}
