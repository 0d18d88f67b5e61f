package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/KadenLi6741/Localys-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const businessColumns = `id, name, category, rating, latitude, longitude, created_at`

// BusinessRepo implements domain.BusinessRepository backed by PostgreSQL.
type BusinessRepo struct {
	pool *pgxpool.Pool
}

// NewBusinessRepo creates a BusinessRepo from the shared pool.
func NewBusinessRepo(pool *pgxpool.Pool) *BusinessRepo {
	return &BusinessRepo{pool: pool}
}

func (r *BusinessRepo) GetByID(ctx context.Context, businessID uuid.UUID) (*domain.Business, error) {
	var b domain.Business
	err := r.pool.QueryRow(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE id = $1`, businessID).Scan(
		&b.ID, &b.Name, &b.Category, &b.Rating, &b.Latitude, &b.Longitude, &b.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get business by ID: %w", err)
	}
	return &b, nil
}

func (r *BusinessRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Business, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE id = ANY($1::uuid[])`, idStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses by IDs: %w", err)
	}
	defer rows.Close()

	var businesses []domain.Business
	for rows.Next() {
		var b domain.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.Category, &b.Rating, &b.Latitude, &b.Longitude, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read businesses: %w", err)
	}
	return businesses, nil
}
