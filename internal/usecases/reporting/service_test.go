package reporting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_Totals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMetricsRepo := mocks.NewMockMetricsRepository(ctrl)
	service := &Service{metricsRepo: mockMetricsRepo}

	filter := domain.MetricsFilter{BusinessID: "enchanments"}

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, result *domain.KPISummary, err error)
	}{
		{
			name: "Deve derivar as razões a partir das somas",
			setup: func() {
				mockMetricsRepo.EXPECT().
					TotalsSums(gomock.Any(), filter).
					Return(domain.RegistrationSums{
						Messages:      10,
						Spent:         200.0,
						Reach:         3000,
						Impressions:   5000,
						Clicks:        100,
						Registrations: 8,
					}, nil)
			},
			validate: func(t *testing.T, result *domain.KPISummary, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 0.02, result.CTR)  // 100/5000
				assert.Equal(t, 40.0, result.CPM)  // 200/(5000/1000)
				assert.Equal(t, 2.0, result.CPC)   // 200/100
				assert.Equal(t, 25.0, result.CPR)  // 200/8
			},
		},
		{
			name: "Filtro sem correspondência produz somas zeradas, não erro",
			setup: func() {
				mockMetricsRepo.EXPECT().
					TotalsSums(gomock.Any(), filter).
					Return(domain.RegistrationSums{}, nil)
			},
			validate: func(t *testing.T, result *domain.KPISummary, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(0), result.Registrations)
				assert.Equal(t, 0.0, result.CTR)
				assert.Equal(t, 0.0, result.CPR)
			},
		},
		{
			name: "Erro do repositório deve ser propagado",
			setup: func() {
				mockMetricsRepo.EXPECT().
					TotalsSums(gomock.Any(), filter).
					Return(domain.RegistrationSums{}, assert.AnError)
			},
			validate: func(t *testing.T, result *domain.KPISummary, err error) {
				assert.Error(t, err)
				assert.Nil(t, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			result, err := service.Totals(context.Background(), filter)
			tt.validate(t, result, err)
		})
	}
}

func TestService_CampaignRollup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMetricsRepo := mocks.NewMockMetricsRepository(ctrl)
	service := &Service{metricsRepo: mockMetricsRepo}

	filter := domain.MetricsFilter{BusinessID: "enchanments"}

	t.Run("Deve ordenar decrescente por registrations", func(t *testing.T) {
		nameA := "Spring Garden Weddings"
		statusActive := "active"

		mockMetricsRepo.EXPECT().
			CampaignSums(gomock.Any(), filter).
			Return([]domain.CampaignSums{
				{
					CampaignID: "enchanments-campaign-2",
					Sums:       domain.RegistrationSums{Registrations: 3, Spent: 90.0},
				},
				{
					CampaignID: "enchanments-campaign-1",
					Name:       &nameA,
					Status:     &statusActive,
					Sums:       domain.RegistrationSums{Registrations: 15, Spent: 450.0, Impressions: 6000, Clicks: 120},
				},
			}, nil)

		rows, err := service.CampaignRollup(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "enchanments-campaign-1", rows[0].CampaignID)
		assert.Equal(t, 0.02, rows[0].CTR) // 120/6000
		assert.Equal(t, 30.0, rows[0].CPR) // 450/15
		assert.Equal(t, "enchanments-campaign-2", rows[1].CampaignID)
	})

	t.Run("Campanha órfã mantém name e status nulos", func(t *testing.T) {
		mockMetricsRepo.EXPECT().
			CampaignSums(gomock.Any(), filter).
			Return([]domain.CampaignSums{
				{
					CampaignID: "campanha-removida",
					Sums:       domain.RegistrationSums{Registrations: 2},
				},
			}, nil)

		rows, err := service.CampaignRollup(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Nil(t, rows[0].Name)
		assert.Nil(t, rows[0].Status)
	})

	t.Run("Filtro sem grupos produz lista vazia, não nil", func(t *testing.T) {
		mockMetricsRepo.EXPECT().
			CampaignSums(gomock.Any(), filter).
			Return([]domain.CampaignSums{}, nil)

		rows, err := service.CampaignRollup(context.Background(), filter)

		assert.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

func TestService_AdPerformance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMetricsRepo := mocks.NewMockMetricsRepository(ctrl)
	service := &Service{metricsRepo: mockMetricsRepo}

	filter := domain.MetricsFilter{BusinessID: "luxury_floor_wraps"}

	t.Run("Registros sem anúncio formam linha própria com sentinelas null", func(t *testing.T) {
		adID := "luxury-ad-1"
		title := "Custom Dance Floor Reveal"

		mockMetricsRepo.EXPECT().
			AdSums(gomock.Any(), filter).
			Return([]domain.AdSums{
				{
					AdID:  &adID,
					Title: &title,
					Tags:  []string{"dancefloor", "custom"},
					Sums:  domain.RegistrationSums{Registrations: 10, Spent: 250.0, Impressions: 5000, Clicks: 80},
				},
				{
					AdID: nil,
					Sums: domain.RegistrationSums{Registrations: 4, Spent: 60.0},
				},
			}, nil)

		rows, err := service.AdPerformance(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, rows, 2)

		assert.Equal(t, "luxury-ad-1", *rows[0].AdID)
		if assert.NotNil(t, rows[0].CTR) {
			assert.Equal(t, 0.016, *rows[0].CTR) // 80/5000
		}
		if assert.NotNil(t, rows[0].CPR) {
			assert.Equal(t, 25.0, *rows[0].CPR) // 250/10
		}

		// Grupo sem anúncio: impressões/registrations zerados viram null
		assert.Nil(t, rows[1].AdID)
		assert.Nil(t, rows[1].CTR)
		if assert.NotNil(t, rows[1].CPR) {
			assert.Equal(t, 15.0, *rows[1].CPR) // 60/4
		}
	})
}

func TestService_TopAdsByImpressions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMetricsRepo := mocks.NewMockMetricsRepository(ctrl)
	service := &Service{metricsRepo: mockMetricsRepo}

	filter := domain.MetricsFilter{BusinessID: "enchanments"}

	t.Run("Limite zero cai para o padrão", func(t *testing.T) {
		mockMetricsRepo.EXPECT().
			TopAdEngagement(gomock.Any(), filter, uint64(DefaultTopAdsLimit)).
			Return([]domain.AdEngagementSums{}, nil)

		rows, err := service.TopAdsByImpressions(context.Background(), filter, 0)

		assert.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("Título ausente cai para o ad_id no título exibido", func(t *testing.T) {
		title := "Fairy Light Aisle Display"

		mockMetricsRepo.EXPECT().
			TopAdEngagement(gomock.Any(), filter, uint64(5)).
			Return([]domain.AdEngagementSums{
				{AdID: "enchanments-ad-1", Title: &title, Clicks: 120, Impressions: 4000},
				{AdID: "enchanments-ad-9", Title: nil, Clicks: 80, Impressions: 2500},
			}, nil)

		rows, err := service.TopAdsByImpressions(context.Background(), filter, 5)

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "Fairy Light Aisle Display", rows[0].Title)
		assert.Equal(t, "enchanments-ad-9", rows[1].Title)
	})
}

func TestService_AdPerformanceTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMetricsRepo := mocks.NewMockMetricsRepository(ctrl)
	service := &Service{metricsRepo: mockMetricsRepo}

	filter := domain.MetricsFilter{BusinessID: "luxury_floor_wraps"}

	t.Run("Deve resolver o nome exibido e preservar a ordem da consulta", func(t *testing.T) {
		title := "Monogrammed Floor Showcase"

		mockMetricsRepo.EXPECT().
			AdTableSums(gomock.Any(), filter).
			Return([]domain.AdTableSums{
				{AdID: "luxury-ad-2", Title: &title, Spent: 300.0, Messages: 12, Impressions: 4000, Clicks: 90, Reach: 3500, Customers: 7},
				{AdID: "luxury-ad-3", Title: nil, Spent: 120.0, Customers: 2},
			}, nil)

		rows, err := service.AdPerformanceTable(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "Monogrammed Floor Showcase", rows[0].AdName)
		assert.Equal(t, int64(7), rows[0].Customers)
		assert.Equal(t, "luxury-ad-3", rows[1].AdName)
	})
}
