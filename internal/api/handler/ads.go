package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/adlib"
	"github.com/vfg2006/campaign-manager-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-manager-api/pkg/log"
)

func CreateAd(service adlib.AdLibrarian) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		var ad domain.Ad
		if err := decodeBody(r, &ad); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}
		ad.BusinessID = claims.BusinessID

		created, err := service.Create(r.Context(), &ad)
		if err != nil {
			handleAdError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func GetAd(service adlib.AdLibrarian) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		adID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		ad, err := service.Get(r.Context(), claims.BusinessID, adID)
		if err != nil {
			handleAdError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, ad)
	}
}

func ListAds(service adlib.AdLibrarian) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		dtFrom, dtTo, err := parseDateWindow(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		offset, limit := parsePagination(r)
		q := r.URL.Query()
		filters := repository.AdListFilters{
			Search: q.Get("search"),
			Status: q.Get("status"),
			Tags:   parseCSVParam(q.Get("tags")),
			DtFrom: dtFrom,
			DtTo:   dtTo,
			Offset: offset,
			Limit:  limit,
		}

		result, err := service.List(r.Context(), claims.BusinessID, filters)
		if err != nil {
			handleAdError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func UpdateAd(service adlib.AdLibrarian) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		adID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var patch domain.AdPatch
		if err := decodeBody(r, &patch); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		ad, err := service.Update(r.Context(), claims.BusinessID, adID, &patch)
		if err != nil {
			handleAdError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, ad)
	}
}

func DeleteAd(service adlib.AdLibrarian) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		adID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.Delete(r.Context(), claims.BusinessID, adID); err != nil {
			handleAdError(w, r, err)
			return
		}

		writeJSON(w, http.StatusNoContent, nil)
	}
}

// CampaignsUsingAd lista as campanhas do tenant que usam o anúncio
func CampaignsUsingAd(service adlib.AdLibrarian) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		adID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		campaigns, err := service.CampaignsUsingAd(r.Context(), claims.BusinessID, adID)
		if err != nil {
			handleAdError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"campaigns": campaigns,
		})
	}
}

func handleAdError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, adlib.ErrAdNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Anúncio não encontrado", nil)

	case errors.Is(err, adlib.ErrDuplicateAdID):
		apiErrors.WriteError(w, apiErrors.ErrConflict, "ad_id já cadastrado", nil)

	default:
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			writeDomainError(w, err)
			return
		}
		log.ForContext(r.Context()).WithError(err).Error("Erro na operação de anúncios")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao acessar anúncios", nil)
	}
}
