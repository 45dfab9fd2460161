package reporting

import (
	"context"

	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
)

// DefaultTopAdsLimit é o tamanho do top-N de engajamento quando o cliente
// não informa outro
const DefaultTopAdsLimit = 10

// Reporter deriva os painéis de métricas a partir das somas agregadas.
// Filtro sem correspondência produz somas zeradas ou listas vazias,
// nunca erro.
type Reporter interface {
	Totals(ctx context.Context, filter domain.MetricsFilter) (*domain.KPISummary, error)
	FullKPIs(ctx context.Context, filter domain.MetricsFilter) (*domain.FullKPISummary, error)
	DailyTimeseries(ctx context.Context, filter domain.MetricsFilter) ([]domain.DailyMetric, error)
	CampaignRollup(ctx context.Context, filter domain.MetricsFilter) ([]domain.CampaignRollupRow, error)
	AdPerformance(ctx context.Context, filter domain.MetricsFilter) ([]domain.AdPerformanceRow, error)
	TopAdsByImpressions(ctx context.Context, filter domain.MetricsFilter, limit uint64) ([]domain.AdEngagementRow, error)
	AdPerformanceTable(ctx context.Context, filter domain.MetricsFilter) ([]domain.AdTableRow, error)
}

type Service struct {
	metricsRepo repository.MetricsRepository
}

func NewService(metricsRepo repository.MetricsRepository) Reporter {
	return &Service{
		metricsRepo: metricsRepo,
	}
}

// Totals computa o rollup de totais do filtro
func (s *Service) Totals(ctx context.Context, filter domain.MetricsFilter) (*domain.KPISummary, error) {
	sums, err := s.metricsRepo.TotalsSums(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := domain.NewKPISummary(sums)
	return &summary, nil
}

// FullKPIs computa a variante rica do rollup, com clientes distintos
func (s *Service) FullKPIs(ctx context.Context, filter domain.MetricsFilter) (*domain.FullKPISummary, error) {
	sums, err := s.metricsRepo.FullKPISums(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := domain.NewFullKPISummary(sums)
	return &summary, nil
}

// DailyTimeseries computa a série diária em UTC, em ordem cronológica
func (s *Service) DailyTimeseries(ctx context.Context, filter domain.MetricsFilter) ([]domain.DailyMetric, error) {
	return s.metricsRepo.DailySums(ctx, filter)
}

// CampaignRollup agrupa por campanha e ordena decrescente por registrations
func (s *Service) CampaignRollup(ctx context.Context, filter domain.MetricsFilter) ([]domain.CampaignRollupRow, error) {
	groups, err := s.metricsRepo.CampaignSums(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.CampaignRollupRow, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, domain.NewCampaignRollupRow(group))
	}

	domain.SortCampaignRowsByRegistrations(rows)
	return rows, nil
}

// AdPerformance agrupa por anúncio e ordena decrescente por registrations.
// Registros sem ad_id formam uma linha própria com identificador nulo.
func (s *Service) AdPerformance(ctx context.Context, filter domain.MetricsFilter) ([]domain.AdPerformanceRow, error) {
	groups, err := s.metricsRepo.AdSums(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.AdPerformanceRow, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, domain.NewAdPerformanceRow(group))
	}

	domain.SortAdRowsByRegistrations(rows)
	return rows, nil
}

// TopAdsByImpressions retorna os N anúncios com mais impressões, com o
// título exibido já resolvido
func (s *Service) TopAdsByImpressions(ctx context.Context, filter domain.MetricsFilter, limit uint64) ([]domain.AdEngagementRow, error) {
	if limit == 0 {
		limit = DefaultTopAdsLimit
	}

	groups, err := s.metricsRepo.TopAdEngagement(ctx, filter, limit)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.AdEngagementRow, 0, len(groups))
	for _, group := range groups {
		adID := group.AdID
		rows = append(rows, domain.AdEngagementRow{
			AdID:        group.AdID,
			Title:       domain.DisplayTitle(group.Title, &adID),
			Clicks:      group.Clicks,
			Impressions: group.Impressions,
		})
	}

	return rows, nil
}

// AdPerformanceTable monta a tabela simples por anúncio, ordenada por gasto
func (s *Service) AdPerformanceTable(ctx context.Context, filter domain.MetricsFilter) ([]domain.AdTableRow, error) {
	groups, err := s.metricsRepo.AdTableSums(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.AdTableRow, 0, len(groups))
	for _, group := range groups {
		adID := group.AdID
		rows = append(rows, domain.AdTableRow{
			AdID:        group.AdID,
			AdName:      domain.DisplayTitle(group.Title, &adID),
			Spent:       group.Spent,
			Messages:    group.Messages,
			Impressions: group.Impressions,
			Clicks:      group.Clicks,
			Reach:       group.Reach,
			Customers:   group.Customers,
		})
	}

	return rows, nil
}
