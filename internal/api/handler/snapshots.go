package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-manager-api/pkg/log"
)

// ListRollupSnapshots lista as fotografias diárias de rollup do tenant
func ListRollupSnapshots(snapshotRepo repository.RollupSnapshotRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		dateFrom, dateTo, err := parseDateWindow(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		snapshots, err := snapshotRepo.ListByBusiness(r.Context(), claims.BusinessID, dateFrom, dateTo)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar fotografias de rollup")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar fotografias de rollup", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"snapshots": snapshots,
		})
	}
}
