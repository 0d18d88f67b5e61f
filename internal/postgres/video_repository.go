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

const videoColumns = `id, business_id, title, description, category, boost, created_at, updated_at`

// VideoRepo implements domain.VideoRepository backed by PostgreSQL.
type VideoRepo struct {
	pool *pgxpool.Pool
}

// NewVideoRepo creates a VideoRepo from the shared pool.
func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

func scanVideo(row pgx.Row) (*domain.Video, error) {
	var v domain.Video
	err := row.Scan(&v.ID, &v.BusinessID, &v.Title, &v.Description, &v.Category, &v.Boost, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepo) GetByID(ctx context.Context, videoID uuid.UUID) (*domain.Video, error) {
	v, err := scanVideo(r.pool.QueryRow(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = $1`, videoID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}
	return v, nil
}

func (r *VideoRepo) Create(ctx context.Context, video *domain.Video) error {
	boost := video.Boost
	if boost < domain.DefaultBoost {
		boost = domain.DefaultBoost
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO videos (business_id, title, description, category, boost)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, video.BusinessID, video.Title, video.Description, video.Category, boost).Scan(
		&video.ID, &video.CreatedAt, &video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	video.Boost = boost
	return nil
}

// ListRankingEntries returns every video's (id, boost) pair for feed sampling.
func (r *VideoRepo) ListRankingEntries(ctx context.Context) ([]domain.RankingEntry, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, boost FROM videos ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranking entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.RankingEntry
	for rows.Next() {
		var e domain.RankingEntry
		if err := rows.Scan(&e.ID, &e.Boost); err != nil {
			return nil, fmt.Errorf("failed to scan ranking entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranking entries: %w", err)
	}
	return entries, nil
}

func (r *VideoRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = ANY($1::uuid[])`, idStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos by IDs: %w", err)
	}
	defer rows.Close()

	return collectVideos(rows)
}

// ApplyBoost raises the video's boost by units, clamped at MaxBoost, and
// records the promotion in the boosts ledger within one transaction.
func (r *VideoRepo) ApplyBoost(ctx context.Context, videoID uuid.UUID, units float64) (float64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var boost float64
	err = tx.QueryRow(ctx, `
		UPDATE videos
		SET boost = LEAST(boost + $2, $3), updated_at = NOW()
		WHERE id = $1
		RETURNING boost
	`, videoID, units, domain.MaxBoost).Scan(&boost)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrVideoNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to apply boost: %w", err)
	}

	_, err = tx.Exec(ctx, `INSERT INTO boosts (video_id, units) VALUES ($1, $2)`, videoID, units)
	if err != nil {
		return 0, fmt.Errorf("failed to record boost: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return boost, nil
}

// SearchByTerms matches any expanded term against title, description, or
// category, newest first.
func (r *VideoRepo) SearchByTerms(ctx context.Context, terms []string, limit int) ([]domain.Video, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+videoColumns+`
		FROM videos
		WHERE EXISTS (
			SELECT 1 FROM unnest($1::text[]) AS term
			WHERE title ILIKE '%' || term || '%'
			   OR description ILIKE '%' || term || '%'
			   OR category ILIKE '%' || term || '%'
		)
		ORDER BY created_at DESC
		LIMIT $2
	`, terms, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	defer rows.Close()

	return collectVideos(rows)
}

func collectVideos(rows pgx.Rows) ([]domain.Video, error) {
	var videos []domain.Video
	for rows.Next() {
		var v domain.Video
		if err := rows.Scan(&v.ID, &v.BusinessID, &v.Title, &v.Description, &v.Category, &v.Boost, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read videos: %w", err)
	}
	return videos, nil
}
