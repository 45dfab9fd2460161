package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
)

const businessesTable = "businesses b"

type BusinessRepository interface {
	GetByBusinessID(ctx context.Context, businessID string) (*domain.Business, error)
	List(ctx context.Context) ([]*domain.Business, error)
	Create(ctx context.Context, business *domain.Business) error
}

type businessRepository struct {
	conn *postgres.Connection
}

func NewBusinessRepository(conn *postgres.Connection) BusinessRepository {
	return &businessRepository{
		conn: conn,
	}
}

func (r *businessRepository) GetByBusinessID(ctx context.Context, businessID string) (*domain.Business, error) {
	query, args, err := squirrel.
		Select("b.business_id, b.name, b.password_hash, b.created_at").
		From(businessesTable).
		Where(squirrel.Eq{"b.business_id": businessID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	business := &domain.Business{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&business.BusinessID,
		&business.Name,
		&business.PasswordHash,
		&business.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear business: %w", err)
	}

	return business, nil
}

func (r *businessRepository) List(ctx context.Context) ([]*domain.Business, error) {
	query, args, err := squirrel.
		Select("b.business_id, b.name, b.password_hash, b.created_at").
		From(businessesTable).
		OrderBy("b.name ASC").
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

	businesses := make([]*domain.Business, 0)
	for rows.Next() {
		business := &domain.Business{}
		if err := rows.Scan(
			&business.BusinessID,
			&business.Name,
			&business.PasswordHash,
			&business.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear business: %w", err)
		}
		businesses = append(businesses, business)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return businesses, nil
}

func (r *businessRepository) Create(ctx context.Context, business *domain.Business) error {
	query, args, err := squirrel.
		Insert("businesses").
		Columns("business_id", "name", "password_hash").
		Values(business.BusinessID, business.Name, business.PasswordHash).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
