package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		expectedOffset uint64
		expectedLimit  uint64
	}{
		{
			name:           "Sem parâmetros usa os padrões",
			url:            "/v1/ads",
			expectedOffset: 0,
			expectedLimit:  20,
		},
		{
			name:           "Página dois desloca pelo limite",
			url:            "/v1/ads?page=2&limit=10",
			expectedOffset: 10,
			expectedLimit:  10,
		},
		{
			name:           "Limite acima do teto é rebaixado ao padrão",
			url:            "/v1/ads?limit=500",
			expectedOffset: 0,
			expectedLimit:  20,
		},
		{
			name:           "Página inválida cai para a primeira",
			url:            "/v1/ads?page=abc&limit=30",
			expectedOffset: 0,
			expectedLimit:  30,
		},
		{
			name:           "Página zero cai para a primeira",
			url:            "/v1/ads?page=0&limit=30",
			expectedOffset: 0,
			expectedLimit:  30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)

			offset, limit := parsePagination(r)

			assert.Equal(t, tt.expectedOffset, offset)
			assert.Equal(t, tt.expectedLimit, limit)
		})
	}
}

func TestParseCSVParam(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Vazio não impõe restrição",
			input:    "",
			expected: nil,
		},
		{
			name:     "Valores separados por vírgula com espaços",
			input:    "facebook, instagram ,google",
			expected: []string{"facebook", "instagram", "google"},
		},
		{
			name:     "Só vírgulas equivale a vazio",
			input:    ", ,",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCSVParam(tt.input))
		})
	}
}

func TestParseDateWindow(t *testing.T) {
	t.Run("Limite superior é ampliado para o fim do dia", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/analytics/totals?date_from=2026-08-01&date_to=2026-08-31", nil)

		dateFrom, dateTo, err := parseDateWindow(r)

		assert.NoError(t, err)
		if assert.NotNil(t, dateFrom) {
			assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *dateFrom)
		}
		if assert.NotNil(t, dateTo) {
			assert.Equal(t, time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC), *dateTo)
		}
	})

	t.Run("Janela ausente produz ponteiros nulos", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/analytics/totals", nil)

		dateFrom, dateTo, err := parseDateWindow(r)

		assert.NoError(t, err)
		assert.Nil(t, dateFrom)
		assert.Nil(t, dateTo)
	})

	t.Run("Formato inválido é rejeitado", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/analytics/totals?date_from=31-08-2026", nil)

		_, _, err := parseDateWindow(r)

		assert.Error(t, err)
	})
}

func TestMetricsFilterFromRequest(t *testing.T) {
	r := httptest.NewRequest(
		"GET",
		"/v1/analytics/totals?date_from=2026-08-01&campaign_ids=camp-1,camp-2&ad_ids=ad-1&sources=facebook,google",
		nil,
	)

	filter, err := metricsFilterFromRequest(r, "enchanments")

	assert.NoError(t, err)
	assert.Equal(t, "enchanments", filter.BusinessID)
	assert.Equal(t, []string{"camp-1", "camp-2"}, filter.CampaignIDs)
	assert.Equal(t, []string{"ad-1"}, filter.AdIDs)
	assert.Equal(t, []string{"facebook", "google"}, filter.Sources)
	assert.NotNil(t, filter.DateFrom)
	assert.Nil(t, filter.DateTo)
}
