package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
)

// MetricsRepository agrega registros em somas agrupadas. As razões e
// sentinelas são derivadas na camada de domínio; aqui só vive o SQL.
type MetricsRepository interface {
	TotalsSums(ctx context.Context, filter domain.MetricsFilter) (domain.RegistrationSums, error)
	FullKPISums(ctx context.Context, filter domain.MetricsFilter) (domain.FullKPISums, error)
	DailySums(ctx context.Context, filter domain.MetricsFilter) ([]domain.DailyMetric, error)
	CampaignSums(ctx context.Context, filter domain.MetricsFilter) ([]domain.CampaignSums, error)
	AdSums(ctx context.Context, filter domain.MetricsFilter) ([]domain.AdSums, error)
	TopAdEngagement(ctx context.Context, filter domain.MetricsFilter, limit uint64) ([]domain.AdEngagementSums, error)
	AdTableSums(ctx context.Context, filter domain.MetricsFilter) ([]domain.AdTableSums, error)
}

type metricsRepository struct {
	conn *postgres.Connection
}

func NewMetricsRepository(conn *postgres.Connection) MetricsRepository {
	return &metricsRepository{
		conn: conn,
	}
}

// Somas por grupo. spentWithCostFallback segue a regra dos rollups de
// totais/diário/campanha: gasto ausente cai para cost. Os rollups por
// anúncio e o painel completo usam apenas spent.
const (
	spentWithCostFallback = "SUM(COALESCE(r.spent, r.cost, 0)) AS spent"
	spentOnly             = "SUM(COALESCE(r.spent, 0)) AS spent"
	sumMeasures           = "SUM(COALESCE(r.messages, 0)) AS messages, " +
		"SUM(COALESCE(r.reach, 0)) AS reach, " +
		"SUM(COALESCE(r.impressions, 0)) AS impressions, " +
		"SUM(COALESCE(r.clicks, 0)) AS clicks"
)

// baseFilter monta o contrato de filtro compartilhado: tenant sempre,
// janela inclusiva e subconjuntos só quando presentes
func baseFilter(f domain.MetricsFilter) squirrel.And {
	conditions := squirrel.And{squirrel.Eq{"r.business_id": f.BusinessID}}

	if f.DateFrom != nil {
		conditions = append(conditions, squirrel.GtOrEq{"r.ts": *f.DateFrom})
	}
	if f.DateTo != nil {
		conditions = append(conditions, squirrel.LtOrEq{"r.ts": *f.DateTo})
	}
	if len(f.CampaignIDs) > 0 {
		conditions = append(conditions, squirrel.Eq{"r.campaign_id": f.CampaignIDs})
	}
	if len(f.AdIDs) > 0 {
		conditions = append(conditions, squirrel.Eq{"r.ad_id": f.AdIDs})
	}
	if len(f.Sources) > 0 {
		conditions = append(conditions, squirrel.Eq{"r.source": f.Sources})
	}

	return conditions
}

// campaignMembershipScope restringe às campanhas existentes do tenant:
// registros de campanhas removidas (ou de um tenant sem campanhas) ficam
// fora dos painéis por anúncio
func campaignMembershipScope(businessID string) squirrel.Sqlizer {
	return squirrel.Expr(
		"r.campaign_id IN (SELECT campaign_id FROM campaigns WHERE business_id = ?)",
		businessID,
	)
}

func (r *metricsRepository) TotalsSums(ctx context.Context, filter domain.MetricsFilter) (domain.RegistrationSums, error) {
	sums := domain.RegistrationSums{}

	query, args, err := squirrel.
		Select(
			"COALESCE(SUM(COALESCE(r.messages, 0)), 0)",
			"COALESCE(SUM(COALESCE(r.spent, r.cost, 0)), 0)",
			"COALESCE(SUM(COALESCE(r.reach, 0)), 0)",
			"COALESCE(SUM(COALESCE(r.impressions, 0)), 0)",
			"COALESCE(SUM(COALESCE(r.clicks, 0)), 0)",
			"COUNT(*)",
		).
		From(registrationsTable).
		Where(baseFilter(filter)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return sums, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&sums.Messages,
		&sums.Spent,
		&sums.Reach,
		&sums.Impressions,
		&sums.Clicks,
		&sums.Registrations,
	)
	if err != nil {
		return sums, fmt.Errorf("erro ao agregar totais: %w", err)
	}

	return sums, nil
}

func (r *metricsRepository) FullKPISums(ctx context.Context, filter domain.MetricsFilter) (domain.FullKPISums, error) {
	sums := domain.FullKPISums{}

	query, args, err := squirrel.
		Select(
			"COALESCE(SUM(COALESCE(r.messages, 0)), 0)",
			"COALESCE(SUM(COALESCE(r.spent, 0)), 0)",
			"COALESCE(SUM(COALESCE(r.reach, 0)), 0)",
			"COALESCE(SUM(COALESCE(r.impressions, 0)), 0)",
			"COALESCE(SUM(COALESCE(r.clicks, 0)), 0)",
			"COUNT(DISTINCT r.user_id)",
		).
		From(registrationsTable).
		Where(baseFilter(filter)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return sums, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&sums.Messages,
		&sums.Spent,
		&sums.Reach,
		&sums.Impressions,
		&sums.Clicks,
		&sums.Customers,
	)
	if err != nil {
		return sums, fmt.Errorf("erro ao agregar painel completo: %w", err)
	}

	return sums, nil
}

// DailySums agrupa por dia calendário em UTC. Dias sem registros não
// aparecem na sequência.
func (r *metricsRepository) DailySums(ctx context.Context, filter domain.MetricsFilter) ([]domain.DailyMetric, error) {
	query, args, err := squirrel.
		Select(
			"date_trunc('day', r.ts AT TIME ZONE 'UTC') AS date",
			sumMeasures,
			spentWithCostFallback,
			"COUNT(*) AS registrations",
		).
		From(registrationsTable).
		Where(baseFilter(filter)).
		GroupBy("date_trunc('day', r.ts AT TIME ZONE 'UTC')").
		OrderBy("date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	metrics := make([]domain.DailyMetric, 0)
	for rows.Next() {
		m := domain.DailyMetric{}
		if err := rows.Scan(
			&m.Date,
			&m.Messages,
			&m.Reach,
			&m.Impressions,
			&m.Clicks,
			&m.Spent,
			&m.Registrations,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear métrica diária: %w", err)
		}
		m.Date = time.Date(m.Date.Year(), m.Date.Month(), m.Date.Day(), 0, 0, 0, 0, time.UTC)
		metrics = append(metrics, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}

// CampaignSums agrupa por campanha. O join é left e restrito ao tenant:
// registros de campanhas removidas continuam no rollup, com nome nulo.
func (r *metricsRepository) CampaignSums(ctx context.Context, filter domain.MetricsFilter) ([]domain.CampaignSums, error) {
	query, args, err := squirrel.
		Select(
			"r.campaign_id",
			"c.name",
			"c.status",
			sumMeasures,
			spentWithCostFallback,
			"COUNT(*) AS registrations",
		).
		From(registrationsTable).
		LeftJoin("campaigns c ON c.campaign_id = r.campaign_id AND c.business_id = r.business_id").
		Where(baseFilter(filter)).
		GroupBy("r.campaign_id", "c.name", "c.status").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	groups := make([]domain.CampaignSums, 0)
	for rows.Next() {
		g := domain.CampaignSums{}
		var name, status sql.NullString
		if err := rows.Scan(
			&g.CampaignID,
			&name,
			&status,
			&g.Sums.Messages,
			&g.Sums.Reach,
			&g.Sums.Impressions,
			&g.Sums.Clicks,
			&g.Sums.Spent,
			&g.Sums.Registrations,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear rollup de campanha: %w", err)
		}
		if name.Valid {
			g.Name = &name.String
		}
		if status.Valid {
			g.Status = &status.String
		}
		groups = append(groups, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return groups, nil
}

// AdSums agrupa por anúncio; registros sem ad_id formam um grupo próprio
// com identificador nulo
func (r *metricsRepository) AdSums(ctx context.Context, filter domain.MetricsFilter) ([]domain.AdSums, error) {
	query, args, err := squirrel.
		Select(
			"r.ad_id",
			"a.title",
			"a.status",
			"a.tags",
			sumMeasures,
			spentOnly,
			"COUNT(*) AS registrations",
		).
		From(registrationsTable).
		LeftJoin("ads a ON a.ad_id = r.ad_id AND a.business_id = r.business_id").
		Where(baseFilter(filter)).
		GroupBy("r.ad_id", "a.title", "a.status", "a.tags").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	groups := make([]domain.AdSums, 0)
	for rows.Next() {
		g := domain.AdSums{}
		var adID, title, status sql.NullString
		var tags pq.StringArray
		if err := rows.Scan(
			&adID,
			&title,
			&status,
			&tags,
			&g.Sums.Messages,
			&g.Sums.Reach,
			&g.Sums.Impressions,
			&g.Sums.Clicks,
			&g.Sums.Spent,
			&g.Sums.Registrations,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear rollup de anúncio: %w", err)
		}
		if adID.Valid {
			g.AdID = &adID.String
		}
		if title.Valid {
			g.Title = &title.String
		}
		if status.Valid {
			g.Status = &status.String
		}
		g.Tags = []string(tags)
		groups = append(groups, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return groups, nil
}

// TopAdEngagement retorna os N anúncios com mais impressões, ignorando
// registros sem ad_id, fora das campanhas do tenant ou sem nenhuma impressão
func (r *metricsRepository) TopAdEngagement(ctx context.Context, filter domain.MetricsFilter, limit uint64) ([]domain.AdEngagementSums, error) {
	query, args, err := topAdEngagementQuery(filter, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	groups := make([]domain.AdEngagementSums, 0)
	for rows.Next() {
		g := domain.AdEngagementSums{}
		var title sql.NullString
		if err := rows.Scan(&g.AdID, &title, &g.Clicks, &g.Impressions); err != nil {
			return nil, fmt.Errorf("erro ao escanear engajamento de anúncio: %w", err)
		}
		if title.Valid {
			g.Title = &title.String
		}
		groups = append(groups, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return groups, nil
}

func topAdEngagementQuery(filter domain.MetricsFilter, limit uint64) (string, []interface{}, error) {
	conditions := baseFilter(filter)
	conditions = append(conditions, squirrel.NotEq{"r.ad_id": nil})
	conditions = append(conditions, campaignMembershipScope(filter.BusinessID))

	return squirrel.
		Select(
			"r.ad_id",
			"a.title",
			"SUM(COALESCE(r.clicks, 0)) AS clicks",
			"SUM(COALESCE(r.impressions, 0)) AS impressions",
		).
		From(registrationsTable).
		LeftJoin("ads a ON a.ad_id = r.ad_id AND a.business_id = r.business_id").
		Where(conditions).
		GroupBy("r.ad_id", "a.title").
		Having("SUM(COALESCE(r.impressions, 0)) > 0").
		OrderBy("impressions DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func adTableQuery(filter domain.MetricsFilter) (string, []interface{}, error) {
	conditions := baseFilter(filter)
	conditions = append(conditions, squirrel.NotEq{"r.ad_id": nil})
	conditions = append(conditions, campaignMembershipScope(filter.BusinessID))

	return squirrel.
		Select(
			"r.ad_id",
			"a.title",
			spentOnly,
			"SUM(COALESCE(r.messages, 0)) AS messages",
			"SUM(COALESCE(r.impressions, 0)) AS impressions",
			"SUM(COALESCE(r.clicks, 0)) AS clicks",
			"SUM(COALESCE(r.reach, 0)) AS reach",
			"COUNT(DISTINCT r.user_id) AS customers",
		).
		From(registrationsTable).
		LeftJoin("ads a ON a.ad_id = r.ad_id AND a.business_id = r.business_id").
		Where(conditions).
		GroupBy("r.ad_id", "a.title").
		Having("SUM(COALESCE(r.spent, 0)) > 0 OR SUM(COALESCE(r.messages, 0)) > 0 OR " +
			"SUM(COALESCE(r.impressions, 0)) > 0 OR SUM(COALESCE(r.clicks, 0)) > 0 OR " +
			"SUM(COALESCE(r.reach, 0)) > 0").
		OrderBy("spent DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// AdTableSums monta a tabela simples por anúncio: apenas anúncios
// identificados e com alguma medida, ordenados por gasto
func (r *metricsRepository) AdTableSums(ctx context.Context, filter domain.MetricsFilter) ([]domain.AdTableSums, error) {
	query, args, err := adTableQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	groups := make([]domain.AdTableSums, 0)
	for rows.Next() {
		g := domain.AdTableSums{}
		var title sql.NullString
		if err := rows.Scan(
			&g.AdID,
			&title,
			&g.Spent,
			&g.Messages,
			&g.Impressions,
			&g.Clicks,
			&g.Reach,
			&g.Customers,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear tabela de anúncios: %w", err)
		}
		if title.Valid {
			g.Title = &title.String
		}
		groups = append(groups, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return groups, nil
}
