package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KadenLi6741/Localys-sub000/internal/domain"
	"github.com/KadenLi6741/Localys-sub000/internal/metrics"
	"github.com/google/uuid"
)

// Service assembles feed pages: fetch ranking candidates (cache first, then
// database), sample a page, hydrate the selected videos.
type Service struct {
	videos  domain.VideoRepository
	cache   domain.RankingCache
	sampler *Sampler
}

// NewService creates the feed service. cache may be nil when Redis is not
// configured; every request then reads candidates from the database.
func NewService(videos domain.VideoRepository, cache domain.RankingCache, sampler *Sampler) *Service {
	return &Service{videos: videos, cache: cache, sampler: sampler}
}

// Page returns up to limit videos sampled by boost weight. A short page is a
// valid outcome, not an error.
func (s *Service) Page(ctx context.Context, limit int) ([]domain.Video, error) {
	candidates, err := s.candidates(ctx)
	if err != nil {
		return nil, err
	}

	ids := s.sampler.Sample(candidates, limit)
	metrics.FeedSampleSize.Observe(float64(len(ids)))
	// Duplicate candidate ids can only be drawn once, so the attainable page
	// size is the distinct count, not the slice length.
	distinct := make(map[uuid.UUID]struct{}, len(candidates))
	for _, c := range candidates {
		distinct[c.ID] = struct{}{}
	}
	if want := min(limit, len(distinct)); len(ids) < want {
		metrics.FeedShortPages.Inc()
	}
	if len(ids) == 0 {
		return nil, nil
	}

	videos, err := s.videos.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load sampled videos: %w", err)
	}

	// ListByIDs returns rows in storage order; restore draw order.
	byID := make(map[uuid.UUID]domain.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	page := make([]domain.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			page = append(page, v)
		}
	}
	return page, nil
}

// ApplyBoost raises a video's boost by the given promotion units (clamped at
// MaxBoost by the repository) and invalidates the candidate cache.
func (s *Service) ApplyBoost(ctx context.Context, videoID uuid.UUID, units float64) (float64, error) {
	boost, err := s.videos.ApplyBoost(ctx, videoID, units)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			slog.WarnContext(ctx, "failed to invalidate ranking cache", "error", err)
		}
	}
	return boost, nil
}

func (s *Service) candidates(ctx context.Context) ([]domain.RankingEntry, error) {
	if s.cache != nil {
		entries, ok, err := s.cache.GetCandidates(ctx)
		if err != nil {
			slog.WarnContext(ctx, "ranking cache read failed, falling back to database", "error", err)
		} else if ok {
			metrics.FeedCandidateSource.WithLabelValues("cache").Inc()
			return entries, nil
		}
	}

	entries, err := s.videos.ListRankingEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranking candidates: %w", err)
	}
	metrics.FeedCandidateSource.WithLabelValues("database").Inc()

	if s.cache != nil {
		if err := s.cache.SetCandidates(ctx, entries); err != nil {
			slog.WarnContext(ctx, "failed to populate ranking cache", "error", err)
		}
	}
	return entries, nil
}
