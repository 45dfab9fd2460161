package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
)

const registrationsTable = "registrations r"

// RegistrationListFilters são os filtros de listagem de registros
type RegistrationListFilters struct {
	CampaignIDs []string
	AdIDs       []string
	Sources     []string
	DtFrom      *time.Time
	DtTo        *time.Time
	Offset      uint64
	Limit       uint64
}

type RegistrationRepository interface {
	Create(ctx context.Context, registration *domain.Registration) error
	GetByID(ctx context.Context, businessID, registrationID string) (*domain.Registration, error)
	List(ctx context.Context, businessID string, filters RegistrationListFilters) ([]*domain.Registration, int64, error)
	Update(ctx context.Context, businessID, registrationID string, patch *domain.RegistrationPatch) (*domain.Registration, error)
	Delete(ctx context.Context, businessID, registrationID string) (bool, error)
	DeleteAllByBusiness(ctx context.Context, businessID string) (int64, error)
	ListForExport(ctx context.Context, businessID string, filters RegistrationListFilters) ([]*domain.Registration, error)
}

type registrationRepository struct {
	conn *postgres.Connection
}

func NewRegistrationRepository(conn *postgres.Connection) RegistrationRepository {
	return &registrationRepository{
		conn: conn,
	}
}

const registrationColumns = "r.registration_id, r.business_id, r.campaign_id, r.ad_id, r.user_id, r.source, " +
	"r.cost, r.spent, r.messages, r.reach, r.impressions, r.clicks, r.ts, r.meta, r.created_at, r.updated_at"

func (r *registrationRepository) Create(ctx context.Context, registration *domain.Registration) error {
	metaJSON, err := json.Marshal(registration.Meta)
	if err != nil {
		return fmt.Errorf("erro ao serializar meta para JSON: %w", err)
	}

	query, args, err := squirrel.
		Insert("registrations").
		Columns(
			"registration_id", "business_id", "campaign_id", "ad_id", "user_id", "source",
			"cost", "spent", "messages", "reach", "impressions", "clicks", "ts", "meta",
		).
		Values(
			registration.RegistrationID,
			registration.BusinessID,
			registration.CampaignID,
			registration.AdID,
			registration.UserID,
			registration.Source,
			registration.Cost,
			registration.Spent,
			registration.Messages,
			registration.Reach,
			registration.Impressions,
			registration.Clicks,
			registration.Timestamp,
			metaJSON,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&registration.CreatedAt, &registration.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, businessID, registrationID string) (*domain.Registration, error) {
	query, args, err := squirrel.
		Select(registrationColumns).
		From(registrationsTable).
		Where(squirrel.Eq{"r.business_id": businessID, "r.registration_id": registrationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	registration, err := scanRegistration(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear registro: %w", err)
	}

	return registration, nil
}

func (r *registrationRepository) List(ctx context.Context, businessID string, filters RegistrationListFilters) ([]*domain.Registration, int64, error) {
	conditions := r.listConditions(businessID, filters)

	countQuery, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(registrationsTable).
		Where(conditions).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar registros: %w", err)
	}

	query, args, err := squirrel.
		Select(registrationColumns).
		From(registrationsTable).
		Where(conditions).
		OrderBy("r.ts DESC").
		Offset(filters.Offset).
		Limit(filters.Limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	registrations, err := r.queryRegistrations(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	return registrations, total, nil
}

// ListForExport retorna todos os registros do filtro, sem paginação,
// em ordem cronológica para o arquivo exportado
func (r *registrationRepository) ListForExport(ctx context.Context, businessID string, filters RegistrationListFilters) ([]*domain.Registration, error) {
	query, args, err := squirrel.
		Select(registrationColumns).
		From(registrationsTable).
		Where(r.listConditions(businessID, filters)).
		OrderBy("r.ts ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryRegistrations(ctx, query, args)
}

func (r *registrationRepository) listConditions(businessID string, filters RegistrationListFilters) squirrel.And {
	conditions := squirrel.And{squirrel.Eq{"r.business_id": businessID}}

	if len(filters.CampaignIDs) > 0 {
		conditions = append(conditions, squirrel.Eq{"r.campaign_id": filters.CampaignIDs})
	}
	if len(filters.AdIDs) > 0 {
		conditions = append(conditions, squirrel.Eq{"r.ad_id": filters.AdIDs})
	}
	if len(filters.Sources) > 0 {
		conditions = append(conditions, squirrel.Eq{"r.source": filters.Sources})
	}
	if filters.DtFrom != nil {
		conditions = append(conditions, squirrel.GtOrEq{"r.ts": *filters.DtFrom})
	}
	if filters.DtTo != nil {
		conditions = append(conditions, squirrel.LtOrEq{"r.ts": *filters.DtTo})
	}

	return conditions
}

func (r *registrationRepository) Update(ctx context.Context, businessID, registrationID string, patch *domain.RegistrationPatch) (*domain.Registration, error) {
	builder := squirrel.
		Update("registrations").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"business_id": businessID, "registration_id": registrationID}).
		Suffix("RETURNING registration_id, business_id, campaign_id, ad_id, user_id, source, " +
			"cost, spent, messages, reach, impressions, clicks, ts, meta, created_at, updated_at")

	if patch.AdID != nil {
		builder = builder.Set("ad_id", *patch.AdID)
	}
	if patch.UserID != nil {
		builder = builder.Set("user_id", *patch.UserID)
	}
	if patch.Source != nil {
		builder = builder.Set("source", *patch.Source)
	}
	if patch.Cost != nil {
		builder = builder.Set("cost", *patch.Cost)
	}
	if patch.Spent != nil {
		builder = builder.Set("spent", *patch.Spent)
	}
	if patch.Messages != nil {
		builder = builder.Set("messages", *patch.Messages)
	}
	if patch.Reach != nil {
		builder = builder.Set("reach", *patch.Reach)
	}
	if patch.Impressions != nil {
		builder = builder.Set("impressions", *patch.Impressions)
	}
	if patch.Clicks != nil {
		builder = builder.Set("clicks", *patch.Clicks)
	}
	if patch.Timestamp != nil {
		builder = builder.Set("ts", patch.Timestamp.UTC())
	}
	if patch.Meta != nil {
		metaJSON, err := json.Marshal(patch.Meta)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar meta para JSON: %w", err)
		}
		builder = builder.Set("meta", metaJSON)
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	registration, err := scanRegistration(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear registro: %w", err)
	}

	return registration, nil
}

func (r *registrationRepository) Delete(ctx context.Context, businessID, registrationID string) (bool, error) {
	query, args, err := squirrel.
		Delete("registrations").
		Where(squirrel.Eq{"business_id": businessID, "registration_id": registrationID}).
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

// DeleteAllByBusiness apaga todos os registros do tenant e retorna quantos foram removidos
func (r *registrationRepository) DeleteAllByBusiness(ctx context.Context, businessID string) (int64, error) {
	query, args, err := squirrel.
		Delete("registrations").
		Where(squirrel.Eq{"business_id": businessID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return affected, nil
}

func (r *registrationRepository) queryRegistrations(ctx context.Context, query string, args []interface{}) ([]*domain.Registration, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	registrations := make([]*domain.Registration, 0)
	for rows.Next() {
		registration, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro: %w", err)
		}
		registrations = append(registrations, registration)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return registrations, nil
}

func scanRegistration(scanner rowScanner) (*domain.Registration, error) {
	registration := &domain.Registration{}
	var adID, userID sql.NullString
	var spent sql.NullFloat64
	var messages, reach, impressions, clicks sql.NullInt64
	var metaJSON []byte

	err := scanner.Scan(
		&registration.RegistrationID,
		&registration.BusinessID,
		&registration.CampaignID,
		&adID,
		&userID,
		&registration.Source,
		&registration.Cost,
		&spent,
		&messages,
		&reach,
		&impressions,
		&clicks,
		&registration.Timestamp,
		&metaJSON,
		&registration.CreatedAt,
		&registration.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if adID.Valid {
		registration.AdID = &adID.String
	}
	if userID.Valid {
		registration.UserID = &userID.String
	}
	if spent.Valid {
		registration.Spent = &spent.Float64
	}
	if messages.Valid {
		registration.Messages = &messages.Int64
	}
	if reach.Valid {
		registration.Reach = &reach.Int64
	}
	if impressions.Valid {
		registration.Impressions = &impressions.Int64
	}
	if clicks.Valid {
		registration.Clicks = &clicks.Int64
	}

	registration.Timestamp = registration.Timestamp.UTC()
	registration.Meta = map[string]any{}
	if metaJSON != nil {
		if err := json.Unmarshal(metaJSON, &registration.Meta); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de meta: %w", err)
		}
	}

	return registration, nil
}
