package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-manager-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-manager-api/pkg/log"
)

// AdLinkRequest é o corpo de attach/detach de anúncios
type AdLinkRequest struct {
	AdIDs []string `json:"ad_ids"`
}

func CreateCampaign(service campaigning.CampaignManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		var campaign domain.Campaign
		if err := decodeBody(r, &campaign); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}
		campaign.BusinessID = claims.BusinessID

		created, err := service.Create(r.Context(), &campaign)
		if err != nil {
			handleCampaignError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func GetCampaign(service campaigning.CampaignManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		campaign, err := service.Get(r.Context(), claims.BusinessID, campaignID)
		if err != nil {
			handleCampaignError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, campaign)
	}
}

func ListCampaigns(service campaigning.CampaignManager) http.HandlerFunc {
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
		filters := repository.CampaignListFilters{
			Search: q.Get("search"),
			Status: q.Get("status"),
			DtFrom: dtFrom,
			DtTo:   dtTo,
			Offset: offset,
			Limit:  limit,
		}

		result, err := service.List(r.Context(), claims.BusinessID, filters)
		if err != nil {
			handleCampaignError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func UpdateCampaign(service campaigning.CampaignManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var patch domain.CampaignPatch
		if err := decodeBody(r, &patch); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		campaign, err := service.Update(r.Context(), claims.BusinessID, campaignID, &patch)
		if err != nil {
			handleCampaignError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, campaign)
	}
}

func DeleteCampaign(service campaigning.CampaignManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.Delete(r.Context(), claims.BusinessID, campaignID); err != nil {
			handleCampaignError(w, r, err)
			return
		}

		writeJSON(w, http.StatusNoContent, nil)
	}
}

// AttachAds vincula anúncios existentes do tenant à campanha
func AttachAds(service campaigning.CampaignManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req AdLinkRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		campaign, err := service.AttachAds(r.Context(), claims.BusinessID, campaignID, req.AdIDs)
		if err != nil {
			handleCampaignError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, campaign)
	}
}

// DetachAds desvincula anúncios da campanha
func DetachAds(service campaigning.CampaignManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req AdLinkRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		campaign, err := service.DetachAds(r.Context(), claims.BusinessID, campaignID, req.AdIDs)
		if err != nil {
			handleCampaignError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, campaign)
	}
}

func handleCampaignError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, campaigning.ErrCampaignNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Campanha não encontrada", nil)

	case errors.Is(err, campaigning.ErrDuplicateCampaignID):
		apiErrors.WriteError(w, apiErrors.ErrConflict, "campaign_id já cadastrado", nil)

	case errors.Is(err, campaigning.ErrUnknownAds):
		apiErrors.WriteError(w, apiErrors.ErrValidation, "Um ou mais anúncios não existem no tenant", nil)

	case errors.Is(err, campaigning.ErrNoAdsInformed):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum anúncio informado", nil)

	default:
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			writeDomainError(w, err)
			return
		}
		log.ForContext(r.Context()).WithError(err).Error("Erro na operação de campanhas")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao acessar campanhas", nil)
	}
}
