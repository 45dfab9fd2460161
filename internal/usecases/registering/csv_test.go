package registering

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_ImportCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRegistrationRepo := mocks.NewMockRegistrationRepository(ctrl)
	service := &Service{registrationRepo: mockRegistrationRepo}

	t.Run("Linhas válidas são gravadas e linha inválida não aborta as demais", func(t *testing.T) {
		input := strings.Join([]string{
			"campaign_id,ad_id,source,cost,spent,timestamp",
			"camp-1,ad-1,facebook,100.0,120.0,2026-08-01T15:30:00Z",
			"camp-1,ad-2,instagram,80.0,,timestamp-quebrado",
			"camp-2,,google,50.0,,2026-08-02",
		}, "\n")

		var created []*domain.Registration
		mockRegistrationRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *domain.Registration) error {
				created = append(created, r)
				return nil
			}).Times(2)

		result, err := service.ImportCSV(context.Background(), "enchanments", strings.NewReader(input))

		assert.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
		assert.Equal(t, 1, result.Failed)
		assert.Len(t, result.Errors, 1)
		assert.Equal(t, 2, result.Errors[0].Row) // linha do timestamp imparseável

		assert.Len(t, created, 2)
		assert.Equal(t, "enchanments", created[0].BusinessID)
		assert.Equal(t, "camp-1", created[0].CampaignID)
		if assert.NotNil(t, created[0].Spent) {
			assert.Equal(t, 120.0, *created[0].Spent)
		}
		assert.Equal(t, time.Date(2026, 8, 1, 15, 30, 0, 0, time.UTC), created[0].Timestamp)

		// Linha sem ad_id não inventa o campo
		assert.Nil(t, created[1].AdID)
	})

	t.Run("Spent ausente cai para cost", func(t *testing.T) {
		input := strings.Join([]string{
			"campaign_id,source,cost,timestamp",
			"camp-1,facebook,85.5,2026-08-10",
		}, "\n")

		mockRegistrationRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *domain.Registration) error {
				if assert.NotNil(t, r.Spent) {
					assert.Equal(t, 85.5, *r.Spent)
				}
				return nil
			})

		result, err := service.ImportCSV(context.Background(), "enchanments", strings.NewReader(input))

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		assert.Equal(t, 0, result.Failed)
	})

	t.Run("Meta fora do formato JSON é tolerado como vazio, não falha", func(t *testing.T) {
		input := strings.Join([]string{
			"campaign_id,source,timestamp,meta",
			`camp-1,email,2026-08-05,"{""utm"": ""spring""}"`,
			"camp-1,email,2026-08-06,nota solta",
		}, "\n")

		var created []*domain.Registration
		mockRegistrationRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *domain.Registration) error {
				created = append(created, r)
				return nil
			}).Times(2)

		result, err := service.ImportCSV(context.Background(), "enchanments", strings.NewReader(input))

		assert.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
		assert.Equal(t, "spring", created[0].Meta["utm"])
		assert.Empty(t, created[1].Meta)
	})

	t.Run("Falha do repositório é contabilizada e não aborta as demais linhas", func(t *testing.T) {
		input := strings.Join([]string{
			"campaign_id,source,timestamp",
			"camp-1,facebook,2026-08-01",
			"camp-1,facebook,2026-08-02",
		}, "\n")

		gomock.InOrder(
			mockRegistrationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError),
			mockRegistrationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
		)

		result, err := service.ImportCSV(context.Background(), "enchanments", strings.NewReader(input))

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, result.Errors[0].Row)
	})

	t.Run("Cabeçalho sem campaign_id rejeita o arquivo inteiro", func(t *testing.T) {
		input := "ad_id,source,timestamp\nad-1,facebook,2026-08-01\n"

		result, err := service.ImportCSV(context.Background(), "enchanments", strings.NewReader(input))

		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("Linha sem source entra como canal organic", func(t *testing.T) {
		input := strings.Join([]string{
			"campaign_id,source,timestamp",
			"camp-1,,2026-08-01",
		}, "\n")

		mockRegistrationRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *domain.Registration) error {
				assert.Equal(t, "organic", r.Source)
				return nil
			})

		result, err := service.ImportCSV(context.Background(), "enchanments", strings.NewReader(input))

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		assert.Equal(t, 0, result.Failed)
	})
}

func TestService_ExportCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRegistrationRepo := mocks.NewMockRegistrationRepository(ctrl)
	service := &Service{registrationRepo: mockRegistrationRepo}

	t.Run("Deve escrever cabeçalho e linhas na ordem da consulta", func(t *testing.T) {
		adID := "ad-1"
		userID := "user-9"
		spent := 120.5
		messages := int64(4)

		ts := time.Date(2026, 8, 1, 15, 30, 0, 0, time.UTC)
		createdAt := time.Date(2026, 8, 1, 16, 0, 0, 0, time.UTC)

		mockRegistrationRepo.EXPECT().
			ListForExport(gomock.Any(), "enchanments", gomock.Any()).
			Return([]*domain.Registration{
				{
					RegistrationID: "reg-1",
					BusinessID:     "enchanments",
					CampaignID:     "camp-1",
					AdID:           &adID,
					UserID:         &userID,
					Source:         "facebook",
					Spent:          &spent,
					Messages:       &messages,
					Timestamp:      ts,
					CreatedAt:      createdAt,
					UpdatedAt:      createdAt,
				},
				{
					RegistrationID: "reg-2",
					BusinessID:     "enchanments",
					CampaignID:     "camp-2",
					Source:         "google",
					Timestamp:      ts.AddDate(0, 0, 1),
					CreatedAt:      createdAt,
					UpdatedAt:      createdAt,
				},
			}, nil)

		var buf bytes.Buffer
		count, err := service.ExportCSV(context.Background(), "enchanments", repository.RegistrationListFilters{}, &buf)

		assert.NoError(t, err)
		assert.Equal(t, 2, count)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.Len(t, lines, 3)
		assert.Equal(t, "timestamp,campaign_id,ad_id,source,messages,spent,reach,impressions,clicks,user_id,business_id,created_at,updated_at", lines[0])
		assert.Equal(t, "2026-08-01T15:30:00Z,camp-1,ad-1,facebook,4,120.5,,,,user-9,enchanments,2026-08-01T16:00:00Z,2026-08-01T16:00:00Z", lines[1])
		// Campos opcionais ausentes ficam em branco
		assert.Equal(t, "2026-08-02T15:30:00Z,camp-2,,google,,,,,,,enchanments,2026-08-01T16:00:00Z,2026-08-01T16:00:00Z", lines[2])
	})

	t.Run("Filtro sem registros exporta só o cabeçalho", func(t *testing.T) {
		mockRegistrationRepo.EXPECT().
			ListForExport(gomock.Any(), "enchanments", gomock.Any()).
			Return([]*domain.Registration{}, nil)

		var buf bytes.Buffer
		count, err := service.ExportCSV(context.Background(), "enchanments", repository.RegistrationListFilters{}, &buf)

		assert.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Equal(t, 1, len(strings.Split(strings.TrimSpace(buf.String()), "\n")))
	})

	t.Run("Erro do repositório é propagado", func(t *testing.T) {
		mockRegistrationRepo.EXPECT().
			ListForExport(gomock.Any(), "enchanments", gomock.Any()).
			Return(nil, assert.AnError)

		var buf bytes.Buffer
		_, err := service.ExportCSV(context.Background(), "enchanments", repository.RegistrationListFilters{}, &buf)

		assert.Error(t, err)
	})
}
