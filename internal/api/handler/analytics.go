package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/campaign-manager-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-manager-api/pkg/log"
)

// analyticsHandler concentra o esqueleto comum dos painéis: tenant,
// filtro e resposta. Cada painel falha isoladamente.
func analyticsHandler(
	panel string,
	compute func(r *http.Request, filter domain.MetricsFilter) (any, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		filter, err := metricsFilterFromRequest(r, claims.BusinessID)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		payload, err := compute(r, filter)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("panel", panel).Error("Erro ao computar painel de métricas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao computar métricas", nil)
			return
		}

		writeJSON(w, http.StatusOK, payload)
	}
}

// GetTotals computa o rollup de totais do filtro
func GetTotals(service reporting.Reporter) http.HandlerFunc {
	return analyticsHandler("totals", func(r *http.Request, filter domain.MetricsFilter) (any, error) {
		return service.Totals(r.Context(), filter)
	})
}

// GetFullKPIs computa a variante rica do rollup de totais
func GetFullKPIs(service reporting.Reporter) http.HandlerFunc {
	return analyticsHandler("kpis_full", func(r *http.Request, filter domain.MetricsFilter) (any, error) {
		return service.FullKPIs(r.Context(), filter)
	})
}

// GetDailyTimeseries computa a série diária em UTC
func GetDailyTimeseries(service reporting.Reporter) http.HandlerFunc {
	return analyticsHandler("timeseries_daily", func(r *http.Request, filter domain.MetricsFilter) (any, error) {
		metrics, err := service.DailyTimeseries(r.Context(), filter)
		if err != nil {
			return nil, err
		}
		return map[string]any{"days": metrics}, nil
	})
}

// GetCampaignRollup computa o rollup por campanha, ordenado por registrations
func GetCampaignRollup(service reporting.Reporter) http.HandlerFunc {
	return analyticsHandler("campaign_rollup", func(r *http.Request, filter domain.MetricsFilter) (any, error) {
		rows, err := service.CampaignRollup(r.Context(), filter)
		if err != nil {
			return nil, err
		}
		return map[string]any{"campaigns": rows}, nil
	})
}

// GetAdPerformance computa o rollup por anúncio, ordenado por registrations
func GetAdPerformance(service reporting.Reporter) http.HandlerFunc {
	return analyticsHandler("ad_performance", func(r *http.Request, filter domain.MetricsFilter) (any, error) {
		rows, err := service.AdPerformance(r.Context(), filter)
		if err != nil {
			return nil, err
		}
		return map[string]any{"ads": rows}, nil
	})
}

// GetTopAds computa o top-N de cliques/impressões por anúncio
func GetTopAds(service reporting.Reporter) http.HandlerFunc {
	return analyticsHandler("top_ads", func(r *http.Request, filter domain.MetricsFilter) (any, error) {
		var limit uint64
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if v, err := strconv.ParseUint(raw, 10, 64); err == nil && v > 0 && v <= 100 {
				limit = v
			}
		}

		rows, err := service.TopAdsByImpressions(r.Context(), filter, limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"ads": rows}, nil
	})
}

// GetAdPerformanceTable computa a tabela simples por anúncio, ordenada por gasto
func GetAdPerformanceTable(service reporting.Reporter) http.HandlerFunc {
	return analyticsHandler("ad_performance_table", func(r *http.Request, filter domain.MetricsFilter) (any, error) {
		rows, err := service.AdPerformanceTable(r.Context(), filter)
		if err != nil {
			return nil, err
		}
		return map[string]any{"ads": rows}, nil
	})
}
