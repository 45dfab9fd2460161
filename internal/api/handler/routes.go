package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/adlib"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/registering"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/businesses",
			Method:  http.MethodGet,
			Handler: ListBusinesses(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(),
		},
	}
}

func Ads(service adlib.AdLibrarian) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/ads",
			Method:  http.MethodPost,
			Handler: CreateAd(service),
		},
		{
			Path:    "/v1/ads",
			Method:  http.MethodGet,
			Handler: ListAds(service),
		},
		{
			Path:    "/v1/ads/:id",
			Method:  http.MethodGet,
			Handler: GetAd(service),
		},
		{
			Path:    "/v1/ads/:id",
			Method:  http.MethodPatch,
			Handler: UpdateAd(service),
		},
		{
			Path:    "/v1/ads/:id",
			Method:  http.MethodDelete,
			Handler: DeleteAd(service),
		},
		{
			Path:    "/v1/ads/:id/campaigns",
			Method:  http.MethodGet,
			Handler: CampaignsUsingAd(service),
		},
	}
}

func Campaigns(service campaigning.CampaignManager) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/campaigns",
			Method:  http.MethodPost,
			Handler: CreateCampaign(service),
		},
		{
			Path:    "/v1/campaigns",
			Method:  http.MethodGet,
			Handler: ListCampaigns(service),
		},
		{
			Path:    "/v1/campaigns/:id",
			Method:  http.MethodGet,
			Handler: GetCampaign(service),
		},
		{
			Path:    "/v1/campaigns/:id",
			Method:  http.MethodPatch,
			Handler: UpdateCampaign(service),
		},
		{
			Path:    "/v1/campaigns/:id",
			Method:  http.MethodDelete,
			Handler: DeleteCampaign(service),
		},
		{
			Path:    "/v1/campaigns/:id/ads/attach",
			Method:  http.MethodPost,
			Handler: AttachAds(service),
		},
		{
			Path:    "/v1/campaigns/:id/ads/detach",
			Method:  http.MethodPost,
			Handler: DetachAds(service),
		},
	}
}

func Registrations(service registering.Registrar) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/registrations",
			Method:  http.MethodPost,
			Handler: CreateRegistration(service),
		},
		{
			Path:    "/v1/registrations",
			Method:  http.MethodGet,
			Handler: ListRegistrations(service),
		},
		{
			// Caminho irmão de /v1/registrations/:id precisa ser estático
			// por inteiro; o sufixo .csv evita o conflito de rota
			Path:    "/v1/registrations.csv",
			Method:  http.MethodGet,
			Handler: ExportRegistrations(service),
		},
		{
			Path:    "/v1/registrations.csv",
			Method:  http.MethodPost,
			Handler: ImportRegistrations(service),
		},
		{
			Path:    "/v1/registrations",
			Method:  http.MethodDelete,
			Handler: DeleteAllRegistrations(service),
		},
		{
			Path:    "/v1/registrations/:id",
			Method:  http.MethodGet,
			Handler: GetRegistration(service),
		},
		{
			Path:    "/v1/registrations/:id",
			Method:  http.MethodPatch,
			Handler: UpdateRegistration(service),
		},
		{
			Path:    "/v1/registrations/:id",
			Method:  http.MethodDelete,
			Handler: DeleteRegistration(service),
		},
	}
}

func Analytics(service reporting.Reporter, snapshotRepo repository.RollupSnapshotRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analytics/totals",
			Method:  http.MethodGet,
			Handler: GetTotals(service),
		},
		{
			Path:    "/v1/analytics/kpis",
			Method:  http.MethodGet,
			Handler: GetFullKPIs(service),
		},
		{
			Path:    "/v1/analytics/timeseries/daily",
			Method:  http.MethodGet,
			Handler: GetDailyTimeseries(service),
		},
		{
			Path:    "/v1/analytics/campaigns",
			Method:  http.MethodGet,
			Handler: GetCampaignRollup(service),
		},
		{
			Path:    "/v1/analytics/campaigns/snapshots",
			Method:  http.MethodGet,
			Handler: ListRollupSnapshots(snapshotRepo),
		},
		{
			Path:    "/v1/analytics/ads",
			Method:  http.MethodGet,
			Handler: GetAdPerformance(service),
		},
		{
			Path:    "/v1/analytics/ads/top",
			Method:  http.MethodGet,
			Handler: GetTopAds(service),
		},
		{
			Path:    "/v1/analytics/ads/table",
			Method:  http.MethodGet,
			Handler: GetAdPerformanceTable(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
