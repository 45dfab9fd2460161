package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/registering"
	"github.com/vfg2006/campaign-manager-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-manager-api/pkg/log"
)

// maxImportBodyBytes limita o tamanho do arquivo de importação (10 MiB)
const maxImportBodyBytes = 10 << 20

func CreateRegistration(service registering.Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		var registration domain.Registration
		if err := decodeBody(r, &registration); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}
		registration.BusinessID = claims.BusinessID

		created, err := service.Create(r.Context(), &registration)
		if err != nil {
			handleRegistrationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func GetRegistration(service registering.Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		registrationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		registration, err := service.Get(r.Context(), claims.BusinessID, registrationID)
		if err != nil {
			handleRegistrationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, registration)
	}
}

func ListRegistrations(service registering.Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		filters, err := registrationFiltersFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		result, err := service.List(r.Context(), claims.BusinessID, filters)
		if err != nil {
			handleRegistrationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func UpdateRegistration(service registering.Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		registrationID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var patch domain.RegistrationPatch
		if err := decodeBody(r, &patch); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		registration, err := service.Update(r.Context(), claims.BusinessID, registrationID, &patch)
		if err != nil {
			handleRegistrationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, registration)
	}
}

func DeleteRegistration(service registering.Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		registrationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.Delete(r.Context(), claims.BusinessID, registrationID); err != nil {
			handleRegistrationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusNoContent, nil)
	}
}

// DeleteAllRegistrations apaga todos os registros do tenant
func DeleteAllRegistrations(service registering.Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		deleted, err := service.DeleteAll(r.Context(), claims.BusinessID)
		if err != nil {
			handleRegistrationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]int64{
			"deleted": deleted,
		})
	}
}

// ImportRegistrations importa registros em massa de um arquivo CSV.
// Linhas inválidas são contabilizadas como falha sem abortar as demais.
func ImportRegistrations(service registering.Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		body := http.MaxBytesReader(w, r.Body, maxImportBodyBytes)
		result, err := service.ImportCSV(r.Context(), claims.BusinessID, body)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro na importação de registros")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// ExportRegistrations exporta os registros do filtro em CSV
func ExportRegistrations(service registering.Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		filters, err := registrationFiltersFromRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		filename := fmt.Sprintf("registrations_%s_%s.csv", claims.BusinessID, time.Now().UTC().Format("20060102"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		if _, err := service.ExportCSV(r.Context(), claims.BusinessID, filters, w); err != nil {
			// Cabeçalhos já foram enviados; só resta registrar a falha
			log.ForContext(r.Context()).WithError(err).Error("Erro na exportação de registros")
		}
	}
}

func registrationFiltersFromRequest(r *http.Request) (repository.RegistrationListFilters, error) {
	dtFrom, dtTo, err := parseDateWindow(r)
	if err != nil {
		return repository.RegistrationListFilters{}, err
	}

	offset, limit := parsePagination(r)
	q := r.URL.Query()
	return repository.RegistrationListFilters{
		CampaignIDs: parseCSVParam(q.Get("campaign_ids")),
		AdIDs:       parseCSVParam(q.Get("ad_ids")),
		Sources:     parseCSVParam(q.Get("sources")),
		DtFrom:      dtFrom,
		DtTo:        dtTo,
		Offset:      offset,
		Limit:       limit,
	}, nil
}

func handleRegistrationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, registering.ErrRegistrationNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Registro não encontrado", nil)

	case errors.Is(err, registering.ErrDuplicateRegistrationID):
		apiErrors.WriteError(w, apiErrors.ErrConflict, "registration_id já cadastrado", nil)

	default:
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			writeDomainError(w, err)
			return
		}
		log.ForContext(r.Context()).WithError(err).Error("Erro na operação de registros")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao acessar registros", nil)
	}
}
