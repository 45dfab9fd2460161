package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-manager-api/infrastructure/database/postgres"
)

const rollupSnapshotsTable = "campaign_rollup_snapshots s"

// CampaignRollupSnapshot é a fotografia diária do rollup de uma campanha,
// materializada pelo job agendado
type CampaignRollupSnapshot struct {
	BusinessID    string    `json:"business_id"`
	CampaignID    string    `json:"campaign_id"`
	Date          time.Time `json:"date"`
	Messages      int64     `json:"messages"`
	Spent         float64   `json:"spent"`
	Reach         int64     `json:"reach"`
	Impressions   int64     `json:"impressions"`
	Clicks        int64     `json:"clicks"`
	Registrations int64     `json:"registrations"`
	CTR           float64   `json:"ctr"`
	CPR           float64   `json:"cpr"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RollupSnapshotRepository interface {
	SaveOrUpdate(ctx context.Context, snapshot *CampaignRollupSnapshot) error
	ListByBusiness(ctx context.Context, businessID string, dateFrom, dateTo *time.Time) ([]*CampaignRollupSnapshot, error)
}

type rollupSnapshotRepository struct {
	conn *postgres.Connection
}

func NewRollupSnapshotRepository(conn *postgres.Connection) RollupSnapshotRepository {
	return &rollupSnapshotRepository{
		conn: conn,
	}
}

// SaveOrUpdate grava a fotografia do dia; reexecuções do job sobrescrevem
// a linha existente em vez de duplicar
func (r *rollupSnapshotRepository) SaveOrUpdate(ctx context.Context, snapshot *CampaignRollupSnapshot) error {
	query, args, err := squirrel.
		Insert("campaign_rollup_snapshots").
		Columns(
			"business_id", "campaign_id", "date",
			"messages", "spent", "reach", "impressions", "clicks", "registrations",
			"ctr", "cpr",
		).
		Values(
			snapshot.BusinessID,
			snapshot.CampaignID,
			snapshot.Date,
			snapshot.Messages,
			snapshot.Spent,
			snapshot.Reach,
			snapshot.Impressions,
			snapshot.Clicks,
			snapshot.Registrations,
			snapshot.CTR,
			snapshot.CPR,
		).
		Suffix(`ON CONFLICT (business_id, campaign_id, date) DO UPDATE SET
			messages = EXCLUDED.messages,
			spent = EXCLUDED.spent,
			reach = EXCLUDED.reach,
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			registrations = EXCLUDED.registrations,
			ctr = EXCLUDED.ctr,
			cpr = EXCLUDED.cpr,
			updated_at = NOW()`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *rollupSnapshotRepository) ListByBusiness(ctx context.Context, businessID string, dateFrom, dateTo *time.Time) ([]*CampaignRollupSnapshot, error) {
	conditions := squirrel.And{squirrel.Eq{"s.business_id": businessID}}
	if dateFrom != nil {
		conditions = append(conditions, squirrel.GtOrEq{"s.date": *dateFrom})
	}
	if dateTo != nil {
		conditions = append(conditions, squirrel.LtOrEq{"s.date": *dateTo})
	}

	query, args, err := squirrel.
		Select("s.business_id, s.campaign_id, s.date, s.messages, s.spent, s.reach, "+
			"s.impressions, s.clicks, s.registrations, s.ctr, s.cpr, s.created_at, s.updated_at").
		From(rollupSnapshotsTable).
		Where(conditions).
		OrderBy("s.date ASC", "s.campaign_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*CampaignRollupSnapshot, 0)
	for rows.Next() {
		s := &CampaignRollupSnapshot{}
		if err := rows.Scan(
			&s.BusinessID,
			&s.CampaignID,
			&s.Date,
			&s.Messages,
			&s.Spent,
			&s.Reach,
			&s.Impressions,
			&s.Clicks,
			&s.Registrations,
			&s.CTR,
			&s.CPR,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear fotografia de rollup: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}
