package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/campaign-manager-api/internal/scheduler"
	"github.com/vfg2006/campaign-manager-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-manager-api/pkg/log"
)

// CronJobServices agrupa os jobs agendados expostos nas rotas de cron
type CronJobServices struct {
	RollupSnapshotSyncService *scheduler.RollupSnapshotSyncService
}

// RunCronJob dispara a execução imediata de um job agendado
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		switch jobType {
		case "rollup-snapshots":
			// Contexto próprio: a execução sobrevive à requisição
			go func() {
				if err := services.RollupSnapshotSyncService.SyncSnapshots(context.Background()); err != nil {
					log.L.WithError(err).Error("Erro na execução manual do job de fotografias de rollup")
				}
			}()
			writeJSON(w, http.StatusAccepted, map[string]string{
				"status": "started",
				"job":    jobType,
			})

		default:
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Job desconhecido", map[string]string{
				"job": jobType,
			})
		}
	}
}

// GetCronStatus reporta o estado dos jobs agendados
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"rollup_snapshots": services.RollupSnapshotSyncService.Status(),
		})
	}
}
