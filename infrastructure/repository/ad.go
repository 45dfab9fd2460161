package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
)

const adsTable = "ads a"

// AdListFilters são os filtros de listagem da biblioteca de anúncios
type AdListFilters struct {
	Search string
	Status string
	Tags   []string
	DtFrom *time.Time
	DtTo   *time.Time
	Offset uint64
	Limit  uint64
}

type AdRepository interface {
	Create(ctx context.Context, ad *domain.Ad) error
	GetByID(ctx context.Context, businessID, adID string) (*domain.Ad, error)
	List(ctx context.Context, businessID string, filters AdListFilters) ([]*domain.Ad, int64, error)
	Update(ctx context.Context, businessID, adID string, patch *domain.AdPatch) (*domain.Ad, error)
	Delete(ctx context.Context, businessID, adID string) (bool, error)
	CountByIDs(ctx context.Context, businessID string, adIDs []string) (int64, error)
}

type adRepository struct {
	conn *postgres.Connection
}

func NewAdRepository(conn *postgres.Connection) AdRepository {
	return &adRepository{
		conn: conn,
	}
}

const adColumns = "a.ad_id, a.business_id, a.title, a.status, a.creative_url, a.tags, a.created_at, a.updated_at"

func (r *adRepository) Create(ctx context.Context, ad *domain.Ad) error {
	query, args, err := squirrel.
		Insert("ads").
		Columns("ad_id", "business_id", "title", "status", "creative_url", "tags").
		Values(ad.AdID, ad.BusinessID, ad.Title, ad.Status, ad.CreativeURL, pq.Array(ad.Tags)).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&ad.CreatedAt, &ad.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *adRepository) GetByID(ctx context.Context, businessID, adID string) (*domain.Ad, error) {
	query, args, err := squirrel.
		Select(adColumns).
		From(adsTable).
		Where(squirrel.Eq{"a.business_id": businessID, "a.ad_id": adID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	ad, err := scanAd(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear anúncio: %w", err)
	}

	return ad, nil
}

func (r *adRepository) List(ctx context.Context, businessID string, filters AdListFilters) ([]*domain.Ad, int64, error) {
	conditions := r.listConditions(businessID, filters)

	countQuery, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(adsTable).
		Where(conditions).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar anúncios: %w", err)
	}

	query, args, err := squirrel.
		Select(adColumns).
		From(adsTable).
		Where(conditions).
		OrderBy("a.updated_at DESC").
		Offset(filters.Offset).
		Limit(filters.Limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	ads := make([]*domain.Ad, 0)
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao escanear anúncio: %w", err)
		}
		ads = append(ads, ad)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ads, total, nil
}

func (r *adRepository) listConditions(businessID string, filters AdListFilters) squirrel.And {
	conditions := squirrel.And{squirrel.Eq{"a.business_id": businessID}}

	if filters.Search != "" {
		conditions = append(conditions, squirrel.ILike{"a.title": "%" + filters.Search + "%"})
	}
	if filters.Status != "" {
		conditions = append(conditions, squirrel.Eq{"a.status": filters.Status})
	}
	if len(filters.Tags) > 0 {
		conditions = append(conditions, squirrel.Expr("a.tags @> ?", pq.Array(filters.Tags)))
	}
	if filters.DtFrom != nil {
		rangeEnd := time.Now().UTC()
		if filters.DtTo != nil {
			rangeEnd = *filters.DtTo
		}
		// Mesma regra da listagem original: basta created_at ou updated_at
		// dentro da janela
		conditions = append(conditions, squirrel.Or{
			squirrel.And{
				squirrel.GtOrEq{"a.updated_at": *filters.DtFrom},
				squirrel.LtOrEq{"a.updated_at": rangeEnd},
			},
			squirrel.And{
				squirrel.GtOrEq{"a.created_at": *filters.DtFrom},
				squirrel.LtOrEq{"a.created_at": rangeEnd},
			},
		})
	}

	return conditions
}

func (r *adRepository) Update(ctx context.Context, businessID, adID string, patch *domain.AdPatch) (*domain.Ad, error) {
	builder := squirrel.
		Update("ads").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"business_id": businessID, "ad_id": adID}).
		Suffix("RETURNING ad_id, business_id, title, status, creative_url, tags, created_at, updated_at")

	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.Status != nil {
		builder = builder.Set("status", *patch.Status)
	}
	if patch.CreativeURL != nil {
		builder = builder.Set("creative_url", *patch.CreativeURL)
	}
	if patch.Tags != nil {
		builder = builder.Set("tags", pq.Array(patch.Tags))
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	ad, err := scanAd(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear anúncio: %w", err)
	}

	return ad, nil
}

func (r *adRepository) Delete(ctx context.Context, businessID, adID string) (bool, error) {
	query, args, err := squirrel.
		Delete("ads").
		Where(squirrel.Eq{"business_id": businessID, "ad_id": adID}).
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

// CountByIDs conta quantos dos IDs informados existem para o tenant,
// usado para validar o vínculo de anúncios a campanhas
func (r *adRepository) CountByIDs(ctx context.Context, businessID string, adIDs []string) (int64, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(adsTable).
		Where(squirrel.Eq{"a.business_id": businessID, "a.ad_id": adIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar anúncios: %w", err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAd(scanner rowScanner) (*domain.Ad, error) {
	ad := &domain.Ad{}
	var creativeURL sql.NullString
	var tags pq.StringArray

	err := scanner.Scan(
		&ad.AdID,
		&ad.BusinessID,
		&ad.Title,
		&ad.Status,
		&creativeURL,
		&tags,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if creativeURL.Valid {
		ad.CreativeURL = &creativeURL.String
	}
	ad.Tags = []string(tags)
	if ad.Tags == nil {
		ad.Tags = []string{}
	}

	return ad, nil
}
