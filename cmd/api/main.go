package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/internal/api"
	"github.com/vfg2006/campaign-manager-api/internal/config"
	"github.com/vfg2006/campaign-manager-api/internal/scheduler"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/adlib"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/registering"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	businessRepo := repository.NewBusinessRepository(pgConn)
	adRepo := repository.NewAdRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	registrationRepo := repository.NewRegistrationRepository(pgConn)
	metricsRepo := repository.NewMetricsRepository(pgConn)
	snapshotRepo := repository.NewRollupSnapshotRepository(pgConn)

	authenticator := authenticating.NewService(businessRepo, cfg)
	adService := adlib.NewService(adRepo, campaignRepo)
	campaignService := campaigning.NewService(campaignRepo, adRepo)
	registrationService := registering.NewService(registrationRepo)
	reportingService := reporting.NewService(metricsRepo)

	rollupSyncService := scheduler.NewRollupSnapshotSyncService(
		businessRepo,
		snapshotRepo,
		reportingService,
		cfg,
	)

	if err := rollupSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de fotografias de rollup")
	} else {
		logrus.Info("Agendador de fotografias de rollup iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		adService,
		campaignService,
		registrationService,
		reportingService,
		snapshotRepo,
		rollupSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
