// Package scheduler contém o serviço de agendamento da materialização de rollups
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/internal/config"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/campaign-manager-api/pkg/utils"
)

type RollupSnapshotSyncConfig struct {
	CronSchedule string
	LookbackDays int
	Enabled      bool
}

// RollupSnapshotSyncService materializa diariamente o rollup por campanha
// de cada tenant em fotografias persistidas
type RollupSnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	businessRepo        repository.BusinessRepository
	snapshotRepo        repository.RollupSnapshotRepository
	reporter            reporting.Reporter
	config              RollupSnapshotSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewRollupSnapshotSyncService(
	businessRepo repository.BusinessRepository,
	snapshotRepo repository.RollupSnapshotRepository,
	reporter reporting.Reporter,
	cfg *config.Config,
) *RollupSnapshotSyncService {
	syncConfig := RollupSnapshotSyncConfig{
		CronSchedule: cfg.RollupSnapshotSync.CronSchedule, // Default: 3h da manhã todos os dias
		LookbackDays: cfg.RollupSnapshotSync.LookbackDays, // Default: 1 dia
		Enabled:      cfg.RollupSnapshotSync.Enabled,      // Default: desabilitado
	}

	if syncConfig.LookbackDays < 1 {
		syncConfig.LookbackDays = 1
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"lookback_days": syncConfig.LookbackDays,
	}).Info("Configuração do agendador de fotografias de rollup carregada")

	return &RollupSnapshotSyncService{
		scheduler:    scheduler,
		businessRepo: businessRepo,
		snapshotRepo: snapshotRepo,
		reporter:     reporter,
		config:       syncConfig,
	}
}

func (s *RollupSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de fotografias de rollup desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de fotografias de rollup")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.SyncSnapshots(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na materialização de fotografias de rollup")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar materialização de fotografias de rollup: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de fotografias de rollup")
		s.scheduler.Stop()
	}()

	return nil
}

// SyncSnapshots recomputa e grava as fotografias dos últimos LookbackDays
// dias, para todos os tenants. Reexecuções sobrescrevem as fotografias do
// mesmo dia.
func (s *RollupSnapshotSyncService) SyncSnapshots(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Materialização de fotografias de rollup já está em execução, ignorando")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando materialização de fotografias de rollup")

	businesses, err := s.businessRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("erro ao listar businesses para materialização: %w", err)
	}

	var failures int
	for _, business := range businesses {
		for day := 1; day <= s.config.LookbackDays; day++ {
			date := utils.StartOfDay(time.Now().UTC().AddDate(0, 0, -day))
			if err := s.snapshotDay(ctx, business.BusinessID, date); err != nil {
				failures++
				logrus.WithError(err).WithFields(logrus.Fields{
					"business_id": business.BusinessID,
					"date":        date.Format("2006-01-02"),
				}).Error("Erro ao materializar fotografia de rollup")
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"businesses": len(businesses),
		"failures":   failures,
	}).Info("Materialização de fotografias de rollup concluída")

	return nil
}

// snapshotDay computa o rollup por campanha de um tenant em um dia e grava
// uma fotografia por campanha
func (s *RollupSnapshotSyncService) snapshotDay(ctx context.Context, businessID string, date time.Time) error {
	dayEnd := utils.EndOfDay(date)

	rows, err := s.reporter.CampaignRollup(ctx, domain.MetricsFilter{
		BusinessID: businessID,
		DateFrom:   &date,
		DateTo:     &dayEnd,
	})
	if err != nil {
		return err
	}

	for _, row := range rows {
		snapshot := &repository.CampaignRollupSnapshot{
			BusinessID:    businessID,
			CampaignID:    row.CampaignID,
			Date:          date,
			Messages:      row.Messages,
			Spent:         row.Spent,
			Reach:         row.Reach,
			Impressions:   row.Impressions,
			Clicks:        row.Clicks,
			Registrations: row.Registrations,
			CTR:           row.CTR,
			CPR:           row.CPR,
		}
		if err := s.snapshotRepo.SaveOrUpdate(ctx, snapshot); err != nil {
			return err
		}
	}

	return nil
}

// Status reporta o estado corrente do job para o endpoint de cron
func (s *RollupSnapshotSyncService) Status() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"enabled":                s.config.Enabled,
		"cron_schedule":          s.config.CronSchedule,
		"lookback_days":          s.config.LookbackDays,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
