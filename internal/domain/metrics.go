package domain

import (
	"sort"
	"time"
)

// MetricsFilter é o contrato de filtro compartilhado por todas as
// operações do motor de métricas: tenant obrigatório, janela de tempo
// inclusiva e subconjuntos opcionais. Filtro opcional ausente não impõe
// restrição nenhuma.
type MetricsFilter struct {
	BusinessID  string
	DateFrom    *time.Time
	DateTo      *time.Time
	CampaignIDs []string
	AdIDs       []string
	Sources     []string
}

// RegistrationSums são as somas brutas de um conjunto de registros
// agrupados. O campo Spent já carrega o fallback spent -> cost aplicado
// pela consulta (COALESCE(spent, cost, 0)).
type RegistrationSums struct {
	Messages      int64
	Spent         float64
	Reach         int64
	Impressions   int64
	Clicks        int64
	Registrations int64
}

// FullKPISums estende as somas com a contagem de clientes distintos
// (user_id não-nulos)
type FullKPISums struct {
	Messages    int64
	Spent       float64
	Reach       int64
	Impressions int64
	Clicks      int64
	Customers   int64
}

// KPISummary é o rollup de totais com as razões derivadas. Denominador
// zero produz razão 0, nunca erro ou NaN.
type KPISummary struct {
	Messages      int64   `json:"messages"`
	Spent         float64 `json:"spent"`
	Reach         int64   `json:"reach"`
	Impressions   int64   `json:"impressions"`
	Clicks        int64   `json:"clicks"`
	Registrations int64   `json:"registrations"`
	CTR           float64 `json:"ctr"`
	CPM           float64 `json:"cpm"`
	CPC           float64 `json:"cpc"`
	CPR           float64 `json:"cpr"`
}

// FullKPISummary é a variante rica do rollup, com clientes distintos e
// as razões percentuais usadas no painel completo
type FullKPISummary struct {
	Messages      int64   `json:"messages"`
	Spent         float64 `json:"spent"`
	Reach         int64   `json:"reach"`
	Impressions   int64   `json:"impressions"`
	Clicks        int64   `json:"clicks"`
	Customers     int64   `json:"customers"`
	CTRPct        float64 `json:"ctr_pct"`
	ConvPct       float64 `json:"conv_pct"`
	Frequency     float64 `json:"frequency"`
	EngagementPct float64 `json:"engagement_pct"`
	CPM           float64 `json:"cpm"`
	CPC           float64 `json:"cpc"`
	CostPerMsg    float64 `json:"cost_per_msg"`
	CAC           float64 `json:"cac"`
}

// DailyMetric é um balde do time series diário (dia calendário em UTC).
// Dias sem registros são omitidos da sequência, não zerados.
type DailyMetric struct {
	Date          time.Time `json:"date"`
	Messages      int64     `json:"messages"`
	Spent         float64   `json:"spent"`
	Reach         int64     `json:"reach"`
	Impressions   int64     `json:"impressions"`
	Clicks        int64     `json:"clicks"`
	Registrations int64     `json:"registrations"`
}

// CampaignSums são as somas agrupadas por campanha com o left join já
// aplicado; Name/Status nulos indicam campanha removida ou órfã.
type CampaignSums struct {
	CampaignID string
	Name       *string
	Status     *string
	Sums       RegistrationSums
}

// CampaignRollupRow é a linha do rollup por campanha. CTR e CPR usam a
// mesma convenção do rollup de totais: denominador zero produz 0.
type CampaignRollupRow struct {
	CampaignID    string  `json:"campaign_id"`
	Name          *string `json:"name"`
	Status        *string `json:"status"`
	Messages      int64   `json:"messages"`
	Spent         float64 `json:"spent"`
	Reach         int64   `json:"reach"`
	Impressions   int64   `json:"impressions"`
	Clicks        int64   `json:"clicks"`
	Registrations int64   `json:"registrations"`
	CTR           float64 `json:"ctr"`
	CPR           float64 `json:"cpr"`
}

// AdSums são as somas agrupadas por anúncio. AdID pode ser nulo: registros
// sem anúncio associado formam um grupo próprio.
type AdSums struct {
	AdID   *string
	Title  *string
	Status *string
	Tags   []string
	Sums   RegistrationSums
}

// AdPerformanceRow é a linha do rollup por anúncio. Diferente dos demais
// rollups, CTR e CPR usam null como sentinela de denominador zero para
// distinguir "sem dados" de "valor zero" na exibição por anúncio.
type AdPerformanceRow struct {
	AdID          *string  `json:"ad_id"`
	Title         *string  `json:"title"`
	Status        *string  `json:"status"`
	Tags          []string `json:"tags"`
	Messages      int64    `json:"messages"`
	Spent         float64  `json:"spent"`
	Reach         int64    `json:"reach"`
	Impressions   int64    `json:"impressions"`
	Clicks        int64    `json:"clicks"`
	Registrations int64    `json:"registrations"`
	CTR           *float64 `json:"ctr"`
	CPR           *float64 `json:"cpr"`
}

// AdEngagementSums são as somas do top-N de cliques/impressões antes da
// resolução do título exibido
type AdEngagementSums struct {
	AdID        string
	Title       *string
	Clicks      int64
	Impressions int64
}

// AdEngagementRow é a linha do top-N de cliques/impressões por anúncio,
// usada no gráfico de barras comparativo
type AdEngagementRow struct {
	AdID        string `json:"ad_id"`
	Title       string `json:"title"`
	Clicks      int64  `json:"clicks"`
	Impressions int64  `json:"impressions"`
}

// AdTableSums são as somas da tabela simples por anúncio, com clientes distintos
type AdTableSums struct {
	AdID        string
	Title       *string
	Spent       float64
	Messages    int64
	Impressions int64
	Clicks      int64
	Reach       int64
	Customers   int64
}

// AdTableRow é a linha da tabela simples de performance por anúncio
type AdTableRow struct {
	AdID        string  `json:"ad_id"`
	AdName      string  `json:"ad_name"`
	Spent       float64 `json:"spent"`
	Messages    int64   `json:"messages"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Reach       int64   `json:"reach"`
	Customers   int64   `json:"customers"`
}

// SafeDiv divide com guarda de denominador zero, retornando 0
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// ratioOrNil divide com guarda de denominador zero, retornando nil
func ratioOrNil(a, b float64) *float64 {
	if b == 0 {
		return nil
	}
	v := a / b
	return &v
}

// NewKPISummary deriva o rollup de totais a partir das somas.
// Conjunto vazio produz somas 0 e razões 0 — nunca ausência.
func NewKPISummary(s RegistrationSums) KPISummary {
	return KPISummary{
		Messages:      s.Messages,
		Spent:         s.Spent,
		Reach:         s.Reach,
		Impressions:   s.Impressions,
		Clicks:        s.Clicks,
		Registrations: s.Registrations,
		CTR:           SafeDiv(float64(s.Clicks), float64(s.Impressions)),
		CPM:           SafeDiv(s.Spent, float64(s.Impressions)/1000.0),
		CPC:           SafeDiv(s.Spent, float64(s.Clicks)),
		CPR:           SafeDiv(s.Spent, float64(s.Registrations)),
	}
}

// NewFullKPISummary deriva a variante rica do rollup de totais
func NewFullKPISummary(s FullKPISums) FullKPISummary {
	return FullKPISummary{
		Messages:      s.Messages,
		Spent:         s.Spent,
		Reach:         s.Reach,
		Impressions:   s.Impressions,
		Clicks:        s.Clicks,
		Customers:     s.Customers,
		CTRPct:        SafeDiv(float64(s.Clicks), float64(s.Impressions)) * 100.0,
		ConvPct:       SafeDiv(float64(s.Customers), float64(s.Messages)) * 100.0,
		Frequency:     SafeDiv(float64(s.Impressions), float64(s.Reach)),
		EngagementPct: SafeDiv(float64(s.Clicks), float64(s.Impressions)) * 100.0,
		CPM:           SafeDiv(s.Spent, float64(s.Impressions)/1000.0),
		CPC:           SafeDiv(s.Spent, float64(s.Clicks)),
		CostPerMsg:    SafeDiv(s.Spent, float64(s.Messages)),
		CAC:           SafeDiv(s.Spent, float64(s.Customers)),
	}
}

// NewCampaignRollupRow deriva a linha do rollup por campanha
func NewCampaignRollupRow(s CampaignSums) CampaignRollupRow {
	return CampaignRollupRow{
		CampaignID:    s.CampaignID,
		Name:          s.Name,
		Status:        s.Status,
		Messages:      s.Sums.Messages,
		Spent:         s.Sums.Spent,
		Reach:         s.Sums.Reach,
		Impressions:   s.Sums.Impressions,
		Clicks:        s.Sums.Clicks,
		Registrations: s.Sums.Registrations,
		CTR:           SafeDiv(float64(s.Sums.Clicks), float64(s.Sums.Impressions)),
		CPR:           SafeDiv(s.Sums.Spent, float64(s.Sums.Registrations)),
	}
}

// NewAdPerformanceRow deriva a linha do rollup por anúncio (sentinela null)
func NewAdPerformanceRow(s AdSums) AdPerformanceRow {
	return AdPerformanceRow{
		AdID:          s.AdID,
		Title:         s.Title,
		Status:        s.Status,
		Tags:          s.Tags,
		Messages:      s.Sums.Messages,
		Spent:         s.Sums.Spent,
		Reach:         s.Sums.Reach,
		Impressions:   s.Sums.Impressions,
		Clicks:        s.Sums.Clicks,
		Registrations: s.Sums.Registrations,
		CTR:           ratioOrNil(float64(s.Sums.Clicks), float64(s.Sums.Impressions)),
		CPR:           ratioOrNil(s.Sums.Spent, float64(s.Sums.Registrations)),
	}
}

// DisplayTitle resolve o título exibido de um anúncio: título em branco ou
// join sem correspondência cai para o ad_id cru, ou "(Unlabeled)" quando
// nem o ad_id existe
func DisplayTitle(title *string, adID *string) string {
	if title != nil && *title != "" {
		return *title
	}
	if adID != nil && *adID != "" {
		return *adID
	}
	return "(Unlabeled)"
}

// SortCampaignRowsByRegistrations ordena decrescente por registrations;
// empates preservam a ordem relativa de chegada
func SortCampaignRowsByRegistrations(rows []CampaignRollupRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Registrations > rows[j].Registrations
	})
}

// SortAdRowsByRegistrations ordena decrescente por registrations;
// empates preservam a ordem relativa de chegada
func SortAdRowsByRegistrations(rows []AdPerformanceRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Registrations > rows[j].Registrations
	})
}
