package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"github.com/vfg2006/campaign-manager-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-manager-api/pkg/log"
	"github.com/vfg2006/campaign-manager-api/pkg/middleware"
	"github.com/vfg2006/campaign-manager-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// tenantFromContext extrai as claims do tenant autenticado; toda rota de
// dados depende deste escopo
func tenantFromContext(r *http.Request) (*domain.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ContextKeyTenant).(*domain.Claims)
	return claims, ok && claims.BusinessID != ""
}

// decodeBody decodifica o corpo JSON rejeitando campos desconhecidos
func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("corpo da requisição inválido: %w", err)
	}
	return nil
}

// writeJSON serializa a resposta de sucesso
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.L.WithError(err).Error("Erro ao serializar resposta")
	}
}

// writeDomainError traduz erros de validação e afins para o envelope da API
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		apiErrors.WriteError(w, apiErrors.ErrValidation, validationErr.Message, map[string]any{
			"field": validationErr.Field,
		})
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar requisição", nil)
}

// parsePagination lê page/limit da query string (page 1-based)
func parsePagination(r *http.Request) (offset, limit uint64) {
	q := r.URL.Query()

	page := uint64(1)
	if raw := q.Get("page"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil && v > 0 {
			page = v
		}
	}

	if raw := q.Get("limit"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
			limit = v
		}
	}
	if limit == 0 || limit > 100 {
		limit = 20
	}

	return (page - 1) * limit, limit
}

// parseCSVParam separa um parâmetro multivalorado por vírgula
func parseCSVParam(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return nil
	}
	return values
}

// parseDateWindow lê date_from/date_to (YYYY-MM-DD). O limite superior é
// inclusivo: date_to é ampliado para o fim do dia.
func parseDateWindow(r *http.Request) (*time.Time, *time.Time, error) {
	q := r.URL.Query()

	dateFrom, err := utils.ParseDate(q.Get("date_from"))
	if err != nil {
		return nil, nil, fmt.Errorf("date_from inválido: %w", err)
	}

	dateTo, err := utils.ParseDate(q.Get("date_to"))
	if err != nil {
		return nil, nil, fmt.Errorf("date_to inválido: %w", err)
	}
	if dateTo != nil {
		end := utils.EndOfDay(*dateTo)
		dateTo = &end
	}

	return dateFrom, dateTo, nil
}

// metricsFilterFromRequest monta o contrato de filtro do motor de métricas
func metricsFilterFromRequest(r *http.Request, businessID string) (domain.MetricsFilter, error) {
	dateFrom, dateTo, err := parseDateWindow(r)
	if err != nil {
		return domain.MetricsFilter{}, err
	}

	q := r.URL.Query()
	return domain.MetricsFilter{
		BusinessID:  businessID,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		CampaignIDs: parseCSVParam(q.Get("campaign_ids")),
		AdIDs:       parseCSVParam(q.Get("ad_ids")),
		Sources:     parseCSVParam(q.Get("sources")),
	}, nil
}
