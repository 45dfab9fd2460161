package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/reporting"
	"go.uber.org/mock/gomock"
)

func TestRollupSnapshotSyncService_SyncSnapshots(t *testing.T) {
	tests := []struct {
		name     string
		lookback int
		setup    func(businessRepo *mocks.MockBusinessRepository, metricsRepo *mocks.MockMetricsRepository, snapshotRepo *mocks.MockRollupSnapshotRepository, saved *[]*repository.CampaignRollupSnapshot)
		validate func(t *testing.T, err error, saved []*repository.CampaignRollupSnapshot)
	}{
		{
			name:     "Deve gravar uma fotografia por campanha com as razões derivadas",
			lookback: 1,
			setup: func(businessRepo *mocks.MockBusinessRepository, metricsRepo *mocks.MockMetricsRepository, snapshotRepo *mocks.MockRollupSnapshotRepository, saved *[]*repository.CampaignRollupSnapshot) {
				businessRepo.EXPECT().
					List(gomock.Any()).
					Return([]*domain.Business{{BusinessID: "enchanments"}}, nil)

				name := "Spring Garden Weddings"
				metricsRepo.EXPECT().
					CampaignSums(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter domain.MetricsFilter) ([]domain.CampaignSums, error) {
						assert.Equal(t, "enchanments", filter.BusinessID)
						// Janela de um único dia, inclusiva nas duas pontas
						if assert.NotNil(t, filter.DateFrom) && assert.NotNil(t, filter.DateTo) {
							assert.Equal(t, filter.DateFrom.Truncate(24*time.Hour), *filter.DateFrom)
							assert.True(t, filter.DateTo.After(*filter.DateFrom))
						}
						return []domain.CampaignSums{
							{
								CampaignID: "enchanments-campaign-1",
								Name:       &name,
								Sums: domain.RegistrationSums{
									Registrations: 10,
									Spent:         250.0,
									Impressions:   5000,
									Clicks:        100,
								},
							},
						}, nil
					})

				snapshotRepo.EXPECT().
					SaveOrUpdate(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, snapshot *repository.CampaignRollupSnapshot) error {
						*saved = append(*saved, snapshot)
						return nil
					})
			},
			validate: func(t *testing.T, err error, saved []*repository.CampaignRollupSnapshot) {
				assert.NoError(t, err)
				assert.Len(t, saved, 1)
				assert.Equal(t, "enchanments", saved[0].BusinessID)
				assert.Equal(t, "enchanments-campaign-1", saved[0].CampaignID)
				assert.Equal(t, int64(10), saved[0].Registrations)
				assert.Equal(t, 0.02, saved[0].CTR) // 100/5000
				assert.Equal(t, 25.0, saved[0].CPR) // 250/10
			},
		},
		{
			name:     "Falha em um tenant não aborta os demais",
			lookback: 1,
			setup: func(businessRepo *mocks.MockBusinessRepository, metricsRepo *mocks.MockMetricsRepository, snapshotRepo *mocks.MockRollupSnapshotRepository, saved *[]*repository.CampaignRollupSnapshot) {
				businessRepo.EXPECT().
					List(gomock.Any()).
					Return([]*domain.Business{
						{BusinessID: "enchanments"},
						{BusinessID: "luxury_floor_wraps"},
					}, nil)

				gomock.InOrder(
					metricsRepo.EXPECT().
						CampaignSums(gomock.Any(), gomock.Any()).
						Return(nil, assert.AnError),
					metricsRepo.EXPECT().
						CampaignSums(gomock.Any(), gomock.Any()).
						Return([]domain.CampaignSums{
							{CampaignID: "luxury-campaign-1", Sums: domain.RegistrationSums{Registrations: 2}},
						}, nil),
				)

				snapshotRepo.EXPECT().
					SaveOrUpdate(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, snapshot *repository.CampaignRollupSnapshot) error {
						*saved = append(*saved, snapshot)
						return nil
					})
			},
			validate: func(t *testing.T, err error, saved []*repository.CampaignRollupSnapshot) {
				assert.NoError(t, err)
				assert.Len(t, saved, 1)
				assert.Equal(t, "luxury_floor_wraps", saved[0].BusinessID)
			},
		},
		{
			name:     "Lookback de dois dias grava fotografias de cada dia",
			lookback: 2,
			setup: func(businessRepo *mocks.MockBusinessRepository, metricsRepo *mocks.MockMetricsRepository, snapshotRepo *mocks.MockRollupSnapshotRepository, saved *[]*repository.CampaignRollupSnapshot) {
				businessRepo.EXPECT().
					List(gomock.Any()).
					Return([]*domain.Business{{BusinessID: "enchanments"}}, nil)

				metricsRepo.EXPECT().
					CampaignSums(gomock.Any(), gomock.Any()).
					Return([]domain.CampaignSums{
						{CampaignID: "enchanments-campaign-1", Sums: domain.RegistrationSums{Registrations: 1}},
					}, nil).Times(2)

				snapshotRepo.EXPECT().
					SaveOrUpdate(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, snapshot *repository.CampaignRollupSnapshot) error {
						*saved = append(*saved, snapshot)
						return nil
					}).Times(2)
			},
			validate: func(t *testing.T, err error, saved []*repository.CampaignRollupSnapshot) {
				assert.NoError(t, err)
				assert.Len(t, saved, 2)
				// Cada fotografia cobre um dia distinto
				assert.NotEqual(t, saved[0].Date, saved[1].Date)
			},
		},
		{
			name:     "Erro ao listar businesses derruba a execução",
			lookback: 1,
			setup: func(businessRepo *mocks.MockBusinessRepository, metricsRepo *mocks.MockMetricsRepository, snapshotRepo *mocks.MockRollupSnapshotRepository, saved *[]*repository.CampaignRollupSnapshot) {
				businessRepo.EXPECT().
					List(gomock.Any()).
					Return(nil, assert.AnError)
			},
			validate: func(t *testing.T, err error, saved []*repository.CampaignRollupSnapshot) {
				assert.Error(t, err)
				assert.Empty(t, saved)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockBusinessRepo := mocks.NewMockBusinessRepository(ctrl)
			mockMetricsRepo := mocks.NewMockMetricsRepository(ctrl)
			mockSnapshotRepo := mocks.NewMockRollupSnapshotRepository(ctrl)

			service := &RollupSnapshotSyncService{
				businessRepo: mockBusinessRepo,
				snapshotRepo: mockSnapshotRepo,
				reporter:     reporting.NewService(mockMetricsRepo),
				config: RollupSnapshotSyncConfig{
					LookbackDays: tt.lookback,
				},
			}

			var saved []*repository.CampaignRollupSnapshot
			tt.setup(mockBusinessRepo, mockMetricsRepo, mockSnapshotRepo, &saved)

			err := service.SyncSnapshots(context.Background())
			tt.validate(t, err, saved)
		})
	}
}

func TestRollupSnapshotSyncService_SyncSnapshots_JaEmExecucao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma expectativa nos mocks: uma execução em andamento faz a
	// chamada concorrente retornar sem tocar nos repositórios
	service := &RollupSnapshotSyncService{
		businessRepo: mocks.NewMockBusinessRepository(ctrl),
		snapshotRepo: mocks.NewMockRollupSnapshotRepository(ctrl),
		reporter:     reporting.NewService(mocks.NewMockMetricsRepository(ctrl)),
		config: RollupSnapshotSyncConfig{
			LookbackDays: 1,
		},
	}
	service.syncRunning = true

	err := service.SyncSnapshots(context.Background())

	assert.NoError(t, err)

	// A flag não é derrubada pela chamada ignorada
	assert.Equal(t, true, service.Status()["running"])
}

func TestRollupSnapshotSyncService_Status(t *testing.T) {
	service := &RollupSnapshotSyncService{
		config: RollupSnapshotSyncConfig{
			CronSchedule: "0 3 * * *",
			LookbackDays: 1,
			Enabled:      true,
		},
	}

	status := service.Status()

	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, "0 3 * * *", status["cron_schedule"])
	assert.Equal(t, false, status["running"])
}
