package registering

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"github.com/vfg2006/campaign-manager-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Colunas do arquivo de importação. A ordem do cabeçalho é livre; colunas
// desconhecidas são ignoradas.
var importColumns = []string{
	"campaign_id", "ad_id", "source", "cost", "spent",
	"messages", "reach", "impressions", "clicks", "timestamp", "user_id", "meta",
}

// Colunas do arquivo exportado, nesta ordem
var exportColumns = []string{
	"timestamp", "campaign_id", "ad_id", "source", "messages", "spent",
	"reach", "impressions", "clicks", "user_id", "business_id", "created_at", "updated_at",
}

// RowError registra a falha de uma linha da importação (1-based, sem contar o cabeçalho)
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult tally da importação em massa: linhas gravadas e falhas.
// Uma linha rejeitada não aborta as demais.
type ImportResult struct {
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors,omitempty"`
}

// ImportCSV grava os registros do arquivo linha a linha. Linhas já
// gravadas permanecem mesmo que uma linha posterior falhe.
func (s *Service) ImportCSV(ctx context.Context, businessID string, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o cabeçalho do CSV: %w", err)
	}

	known := make(map[string]bool, len(importColumns))
	for _, name := range importColumns {
		known[name] = true
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if known[name] {
			colIndex[name] = i
		}
	}
	if _, ok := colIndex["campaign_id"]; !ok {
		return nil, fmt.Errorf("cabeçalho do CSV sem a coluna campaign_id")
	}

	result := &ImportResult{Errors: make([]RowError, 0)}
	rowNumber := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNumber++
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: rowNumber, Message: err.Error()})
			continue
		}

		registration, err := parseImportRow(businessID, colIndex, record)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: rowNumber, Message: err.Error()})
			continue
		}

		if err := s.registrationRepo.Create(ctx, registration); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: rowNumber, Message: err.Error()})
			continue
		}

		result.Imported++
	}

	return result, nil
}

func parseImportRow(businessID string, colIndex map[string]int, record []string) (*domain.Registration, error) {
	cell := func(name string) string {
		i, ok := colIndex[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	// Linha com timestamp imparseável é rejeitada, nunca gravada
	ts, err := parseTimestamp(cell("timestamp"))
	if err != nil {
		return nil, err
	}

	// Linha sem canal informado entra como orgânica
	source := cell("source")
	if source == "" {
		source = "organic"
	}

	registration := &domain.Registration{
		RegistrationID: utils.NewSortableID(),
		BusinessID:     businessID,
		CampaignID:     cell("campaign_id"),
		Source:         source,
		Timestamp:      ts,
		Meta:           map[string]any{},
	}

	if v := cell("ad_id"); v != "" {
		registration.AdID = &v
	}
	if v := cell("user_id"); v != "" {
		registration.UserID = &v
	}

	if v := cell("cost"); v != "" {
		cost, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("cost inválido: %q", v)
		}
		registration.Cost = cost
	}

	if v := cell("spent"); v != "" {
		spent, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("spent inválido: %q", v)
		}
		registration.Spent = &spent
	} else if registration.Cost > 0 {
		// Sem gasto informado, o custo faz as vezes do gasto
		spent := registration.Cost
		registration.Spent = &spent
	}

	measures := map[string]**int64{
		"messages":    &registration.Messages,
		"reach":       &registration.Reach,
		"impressions": &registration.Impressions,
		"clicks":      &registration.Clicks,
	}
	for name, target := range measures {
		v := cell(name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s inválido: %q", name, v)
		}
		*target = &n
	}

	// Meta fora do formato JSON não derruba a linha; fica vazio
	if v := cell("meta"); v != "" {
		meta := map[string]any{}
		if err := json.Unmarshal([]byte(v), &meta); err == nil {
			registration.Meta = meta
		}
	}

	if err := registration.Validate(); err != nil {
		return nil, err
	}

	return registration, nil
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("timestamp ausente")
	}

	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("timestamp imparseável: %q", value)
}

// ExportCSV escreve todos os registros do filtro no formato de exportação
// e retorna quantas linhas foram escritas
func (s *Service) ExportCSV(ctx context.Context, businessID string, filters repository.RegistrationListFilters, w io.Writer) (int, error) {
	registrations, err := s.registrationRepo.ListForExport(ctx, businessID, filters)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportColumns); err != nil {
		return 0, fmt.Errorf("erro ao escrever o cabeçalho do CSV: %w", err)
	}

	for i, registration := range registrations {
		if err := writer.Write(exportRow(registration)); err != nil {
			return i, fmt.Errorf("erro ao escrever linha do CSV: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return len(registrations), fmt.Errorf("erro ao finalizar o CSV: %w", err)
	}

	return len(registrations), nil
}

func exportRow(r *domain.Registration) []string {
	optStr := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}
	optInt := func(v *int64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatInt(*v, 10)
	}
	spent := ""
	if r.Spent != nil {
		spent = strconv.FormatFloat(*r.Spent, 'f', -1, 64)
	}

	return []string{
		r.Timestamp.UTC().Format(time.RFC3339),
		r.CampaignID,
		optStr(r.AdID),
		r.Source,
		optInt(r.Messages),
		spent,
		optInt(r.Reach),
		optInt(r.Impressions),
		optInt(r.Clicks),
		optStr(r.UserID),
		r.BusinessID,
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
