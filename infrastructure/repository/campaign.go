package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
)

const campaignsTable = "campaigns c"

// CampaignListFilters são os filtros de listagem de campanhas
type CampaignListFilters struct {
	Search string
	Status string
	DtFrom *time.Time
	DtTo   *time.Time
	Offset uint64
	Limit  uint64
}

type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, businessID, campaignID string) (*domain.Campaign, error)
	List(ctx context.Context, businessID string, filters CampaignListFilters) ([]*domain.Campaign, int64, error)
	ListUsingAd(ctx context.Context, businessID, adID string) ([]*domain.Campaign, error)
	Update(ctx context.Context, businessID, campaignID string, patch *domain.CampaignPatch) (*domain.Campaign, error)
	Delete(ctx context.Context, businessID, campaignID string) (bool, error)
	AttachAds(ctx context.Context, businessID, campaignID string, adIDs []string) (*domain.Campaign, error)
	DetachAds(ctx context.Context, businessID, campaignID string, adIDs []string) (*domain.Campaign, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

const campaignColumns = "c.campaign_id, c.business_id, c.name, c.status, c.ad_ids, c.targeting, c.business_type, c.created_at, c.updated_at"

func (r *campaignRepository) Create(ctx context.Context, campaign *domain.Campaign) error {
	targetingJSON, err := json.Marshal(campaign.Targeting)
	if err != nil {
		return fmt.Errorf("erro ao serializar targeting para JSON: %w", err)
	}

	query, args, err := squirrel.
		Insert("campaigns").
		Columns("campaign_id", "business_id", "name", "status", "ad_ids", "targeting", "business_type").
		Values(
			campaign.CampaignID,
			campaign.BusinessID,
			campaign.Name,
			campaign.Status,
			pq.Array(campaign.AdIDs),
			targetingJSON,
			campaign.BusinessType,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&campaign.CreatedAt, &campaign.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, businessID, campaignID string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"c.business_id": businessID, "c.campaign_id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	campaign, err := scanCampaign(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) List(ctx context.Context, businessID string, filters CampaignListFilters) ([]*domain.Campaign, int64, error) {
	conditions := squirrel.And{squirrel.Eq{"c.business_id": businessID}}

	if filters.Search != "" {
		conditions = append(conditions, squirrel.ILike{"c.name": "%" + filters.Search + "%"})
	}
	if filters.Status != "" {
		conditions = append(conditions, squirrel.Eq{"c.status": filters.Status})
	}
	if filters.DtFrom != nil {
		rangeEnd := time.Now().UTC()
		if filters.DtTo != nil {
			rangeEnd = *filters.DtTo
		}
		conditions = append(conditions, squirrel.Or{
			squirrel.And{
				squirrel.GtOrEq{"c.updated_at": *filters.DtFrom},
				squirrel.LtOrEq{"c.updated_at": rangeEnd},
			},
			squirrel.And{
				squirrel.GtOrEq{"c.created_at": *filters.DtFrom},
				squirrel.LtOrEq{"c.created_at": rangeEnd},
			},
		})
	}

	countQuery, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(campaignsTable).
		Where(conditions).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar campanhas: %w", err)
	}

	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(conditions).
		OrderBy("c.updated_at DESC").
		Offset(filters.Offset).
		Limit(filters.Limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	campaigns, err := r.queryCampaigns(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// ListUsingAd retorna as campanhas do tenant que referenciam o anúncio,
// usado para bloquear exclusão de anúncios em uso
func (r *campaignRepository) ListUsingAd(ctx context.Context, businessID, adID string) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"c.business_id": businessID}).
		Where(squirrel.Expr("c.ad_ids @> ?", pq.Array([]string{adID}))).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryCampaigns(ctx, query, args)
}

func (r *campaignRepository) Update(ctx context.Context, businessID, campaignID string, patch *domain.CampaignPatch) (*domain.Campaign, error) {
	builder := squirrel.
		Update("campaigns").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"business_id": businessID, "campaign_id": campaignID}).
		Suffix("RETURNING campaign_id, business_id, name, status, ad_ids, targeting, business_type, created_at, updated_at")

	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}
	if patch.Status != nil {
		builder = builder.Set("status", *patch.Status)
	}
	if patch.AdIDs != nil {
		builder = builder.Set("ad_ids", pq.Array(patch.AdIDs))
	}
	if patch.Targeting != nil {
		targetingJSON, err := json.Marshal(patch.Targeting)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar targeting para JSON: %w", err)
		}
		builder = builder.Set("targeting", targetingJSON)
	}
	if patch.BusinessType != nil {
		builder = builder.Set("business_type", *patch.BusinessType)
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	campaign, err := scanCampaign(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) Delete(ctx context.Context, businessID, campaignID string) (bool, error) {
	query, args, err := squirrel.
		Delete("campaigns").
		Where(squirrel.Eq{"business_id": businessID, "campaign_id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

// AttachAds adiciona anúncios ao conjunto ad_ids da campanha, sem duplicar
func (r *campaignRepository) AttachAds(ctx context.Context, businessID, campaignID string, adIDs []string) (*domain.Campaign, error) {
	query := `
		UPDATE campaigns
		SET ad_ids = (
			SELECT COALESCE(array_agg(DISTINCT x ORDER BY x), '{}')
			FROM unnest(ad_ids || $1::text[]) AS x
		),
		updated_at = NOW()
		WHERE business_id = $2 AND campaign_id = $3
		RETURNING campaign_id, business_id, name, status, ad_ids, targeting, business_type, created_at, updated_at`

	campaign, err := scanCampaign(r.conn.QueryRowContext(ctx, query, pq.Array(adIDs), businessID, campaignID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return campaign, nil
}

// DetachAds remove anúncios do conjunto ad_ids da campanha
func (r *campaignRepository) DetachAds(ctx context.Context, businessID, campaignID string, adIDs []string) (*domain.Campaign, error) {
	query := `
		UPDATE campaigns
		SET ad_ids = (
			SELECT COALESCE(array_agg(x), '{}')
			FROM unnest(ad_ids) AS x
			WHERE x != ALL($1::text[])
		),
		updated_at = NOW()
		WHERE business_id = $2 AND campaign_id = $3
		RETURNING campaign_id, business_id, name, status, ad_ids, targeting, business_type, created_at, updated_at`

	campaign, err := scanCampaign(r.conn.QueryRowContext(ctx, query, pq.Array(adIDs), businessID, campaignID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) queryCampaigns(ctx context.Context, query string, args []interface{}) ([]*domain.Campaign, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

func scanCampaign(scanner rowScanner) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}
	var adIDs pq.StringArray
	var targetingJSON []byte

	err := scanner.Scan(
		&campaign.CampaignID,
		&campaign.BusinessID,
		&campaign.Name,
		&campaign.Status,
		&adIDs,
		&targetingJSON,
		&campaign.BusinessType,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	campaign.AdIDs = []string(adIDs)
	if campaign.AdIDs == nil {
		campaign.AdIDs = []string{}
	}

	if targetingJSON != nil {
		if err := json.Unmarshal(targetingJSON, &campaign.Targeting); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de targeting: %w", err)
		}
	}

	return campaign, nil
}
