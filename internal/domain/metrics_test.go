package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKPISummary(t *testing.T) {
	tests := []struct {
		name     string
		sums     RegistrationSums
		validate func(t *testing.T, result KPISummary)
	}{
		{
			name: "Cenário completo - deve calcular todas as razões",
			sums: RegistrationSums{
				Messages:      40,
				Spent:         500.0,
				Reach:         8000,
				Impressions:   10000,
				Clicks:        250,
				Registrations: 20,
			},
			validate: func(t *testing.T, result KPISummary) {
				assert.Equal(t, int64(40), result.Messages)
				assert.Equal(t, 500.0, result.Spent)
				assert.Equal(t, int64(10000), result.Impressions)
				assert.Equal(t, 0.025, result.CTR) // 250/10000
				assert.Equal(t, 50.0, result.CPM)  // 500/(10000/1000)
				assert.Equal(t, 2.0, result.CPC)   // 500/250
				assert.Equal(t, 25.0, result.CPR)  // 500/20
			},
		},
		{
			name: "Conjunto vazio - deve produzir zeros, nunca NaN",
			sums: RegistrationSums{},
			validate: func(t *testing.T, result KPISummary) {
				assert.Equal(t, 0.0, result.CTR)
				assert.Equal(t, 0.0, result.CPM)
				assert.Equal(t, 0.0, result.CPC)
				assert.Equal(t, 0.0, result.CPR)
			},
		},
		{
			name: "Gasto sem cliques - CPC e CTR zerados, CPM calculado",
			sums: RegistrationSums{
				Spent:       120.0,
				Impressions: 4000,
			},
			validate: func(t *testing.T, result KPISummary) {
				assert.Equal(t, 0.0, result.CTR)
				assert.Equal(t, 30.0, result.CPM) // 120/(4000/1000)
				assert.Equal(t, 0.0, result.CPC)
				assert.Equal(t, 0.0, result.CPR)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, NewKPISummary(tt.sums))
		})
	}
}

func TestNewFullKPISummary(t *testing.T) {
	tests := []struct {
		name     string
		sums     FullKPISums
		validate func(t *testing.T, result FullKPISummary)
	}{
		{
			name: "Cenário completo - deve calcular razões percentuais e frequência",
			sums: FullKPISums{
				Messages:    50,
				Spent:       1000.0,
				Reach:       5000,
				Impressions: 20000,
				Clicks:      400,
				Customers:   25,
			},
			validate: func(t *testing.T, result FullKPISummary) {
				assert.Equal(t, 2.0, result.CTRPct)         // 400/20000 * 100
				assert.Equal(t, 50.0, result.ConvPct)       // 25/50 * 100
				assert.Equal(t, 4.0, result.Frequency)      // 20000/5000
				assert.Equal(t, 2.0, result.EngagementPct)  // 400/20000 * 100
				assert.Equal(t, 50.0, result.CPM)           // 1000/(20000/1000)
				assert.Equal(t, 2.5, result.CPC)            // 1000/400
				assert.Equal(t, 20.0, result.CostPerMsg)    // 1000/50
				assert.Equal(t, 40.0, result.CAC)           // 1000/25
			},
		},
		{
			name: "Sem alcance nem clientes - denominadores zero produzem zeros",
			sums: FullKPISums{
				Spent:       300.0,
				Impressions: 1500,
			},
			validate: func(t *testing.T, result FullKPISummary) {
				assert.Equal(t, 0.0, result.CTRPct)
				assert.Equal(t, 0.0, result.ConvPct)
				assert.Equal(t, 0.0, result.Frequency)
				assert.Equal(t, 200.0, result.CPM)
				assert.Equal(t, 0.0, result.CAC)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, NewFullKPISummary(tt.sums))
		})
	}
}

func TestNewAdPerformanceRow(t *testing.T) {
	adID := "ad-1"
	title := "Anúncio A"

	t.Run("Denominador zero produz null, não zero", func(t *testing.T) {
		row := NewAdPerformanceRow(AdSums{
			AdID:  &adID,
			Title: &title,
			Sums: RegistrationSums{
				Spent: 100.0,
			},
		})

		assert.Nil(t, row.CTR)
		assert.Nil(t, row.CPR)
	})

	t.Run("Denominadores presentes produzem razões", func(t *testing.T) {
		row := NewAdPerformanceRow(AdSums{
			AdID:  &adID,
			Title: &title,
			Sums: RegistrationSums{
				Spent:         100.0,
				Impressions:   2000,
				Clicks:        50,
				Registrations: 4,
			},
		})

		if assert.NotNil(t, row.CTR) {
			assert.Equal(t, 0.025, *row.CTR) // 50/2000
		}
		if assert.NotNil(t, row.CPR) {
			assert.Equal(t, 25.0, *row.CPR) // 100/4
		}
	})

	t.Run("Grupo sem anúncio associado mantém AdID nulo", func(t *testing.T) {
		row := NewAdPerformanceRow(AdSums{
			Sums: RegistrationSums{Registrations: 3},
		})

		assert.Nil(t, row.AdID)
		assert.Nil(t, row.Title)
		assert.Equal(t, int64(3), row.Registrations)
	})
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.5, SafeDiv(5.0, 2.0))
	assert.Equal(t, 0.0, SafeDiv(5.0, 0.0))
	assert.Equal(t, 0.0, SafeDiv(0.0, 0.0))
}

func TestDisplayTitle(t *testing.T) {
	title := "Anúncio com título"
	emptyTitle := ""
	adID := "ad-42"
	emptyAdID := ""

	tests := []struct {
		name     string
		title    *string
		adID     *string
		expected string
	}{
		{
			name:     "Título presente deve prevalecer",
			title:    &title,
			adID:     &adID,
			expected: "Anúncio com título",
		},
		{
			name:     "Título vazio cai para o ad_id",
			title:    &emptyTitle,
			adID:     &adID,
			expected: "ad-42",
		},
		{
			name:     "Título nulo cai para o ad_id",
			title:    nil,
			adID:     &adID,
			expected: "ad-42",
		},
		{
			name:     "Sem título nem ad_id cai para o rótulo padrão",
			title:    nil,
			adID:     nil,
			expected: "(Unlabeled)",
		},
		{
			name:     "Ad_id vazio também cai para o rótulo padrão",
			title:    &emptyTitle,
			adID:     &emptyAdID,
			expected: "(Unlabeled)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayTitle(tt.title, tt.adID))
		})
	}
}

func TestSortCampaignRowsByRegistrations(t *testing.T) {
	nameA, nameB, nameC := "A", "B", "C"

	rows := []CampaignRollupRow{
		{CampaignID: "c1", Name: &nameA, Registrations: 5},
		{CampaignID: "c2", Name: &nameB, Registrations: 12},
		{CampaignID: "c3", Name: &nameC, Registrations: 5},
	}

	SortCampaignRowsByRegistrations(rows)

	assert.Equal(t, "c2", rows[0].CampaignID)
	// Empate entre c1 e c3 preserva a ordem de chegada
	assert.Equal(t, "c1", rows[1].CampaignID)
	assert.Equal(t, "c3", rows[2].CampaignID)
}

func TestSortAdRowsByRegistrations(t *testing.T) {
	ad1, ad2, ad3 := "ad-1", "ad-2", "ad-3"

	rows := []AdPerformanceRow{
		{AdID: &ad1, Registrations: 0},
		{AdID: &ad2, Registrations: 7},
		{AdID: &ad3, Registrations: 3},
	}

	SortAdRowsByRegistrations(rows)

	assert.Equal(t, "ad-2", *rows[0].AdID)
	assert.Equal(t, "ad-3", *rows[1].AdID)
	assert.Equal(t, "ad-1", *rows[2].AdID)
}
