package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
)

func TestTopAdEngagementQuery(t *testing.T) {
	query, args, err := topAdEngagementQuery(domain.MetricsFilter{BusinessID: "enchanments"}, 10)

	assert.NoError(t, err)

	// Só campanhas existentes do tenant entram no ranking: registros de
	// campanhas removidas ficam de fora, e um tenant sem campanhas não
	// produz linha alguma
	assert.Contains(t, query, "r.campaign_id IN (SELECT campaign_id FROM campaigns WHERE business_id = $2)")
	assert.Contains(t, query, "r.ad_id IS NOT NULL")
	assert.Contains(t, query, "HAVING SUM(COALESCE(r.impressions, 0)) > 0")
	assert.Contains(t, query, "ORDER BY impressions DESC")
	assert.Contains(t, query, "LIMIT 10")
	assert.Equal(t, []interface{}{"enchanments", "enchanments"}, args)
}

func TestAdTableQuery(t *testing.T) {
	query, args, err := adTableQuery(domain.MetricsFilter{BusinessID: "enchanments"})

	assert.NoError(t, err)

	assert.Contains(t, query, "r.campaign_id IN (SELECT campaign_id FROM campaigns WHERE business_id = $2)")
	assert.Contains(t, query, "r.ad_id IS NOT NULL")
	// Qualquer medida positiva mantém o anúncio na tabela, inclusive reach
	assert.Contains(t, query, "SUM(COALESCE(r.reach, 0)) > 0")
	assert.Contains(t, query, "ORDER BY spent DESC")
	assert.Equal(t, []interface{}{"enchanments", "enchanments"}, args)
}
