package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/KadenLi6741/Localys-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Result pairs a video with its computed relevance.
type Result struct {
	Video     domain.Video
	Business  *domain.Business
	Relevance float64
}

// Service runs expanded-term search over the video catalog and ranks results.
type Service struct {
	videos     domain.VideoRepository
	businesses domain.BusinessRepository
	clock      clockwork.Clock
}

// NewService creates the search service.
func NewService(videos domain.VideoRepository, businesses domain.BusinessRepository, clock clockwork.Clock) *Service {
	return &Service{videos: videos, businesses: businesses, clock: clock}
}

// Search expands the query, fetches matching videos, and orders them by
// relevance (rating, recency, proximity to origin). An empty query or no
// matches yields an empty result, not an error.
func (s *Service) Search(ctx context.Context, query string, origin Origin, limit int) ([]Result, error) {
	terms := Expand(query)
	if len(terms) == 0 {
		return nil, nil
	}

	videos, err := s.videos.SearchByTerms(ctx, terms, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	if len(videos) == 0 {
		return nil, nil
	}

	businessIDs := make([]uuid.UUID, 0, len(videos))
	seen := make(map[uuid.UUID]struct{}, len(videos))
	for _, v := range videos {
		if _, ok := seen[v.BusinessID]; ok {
			continue
		}
		seen[v.BusinessID] = struct{}{}
		businessIDs = append(businessIDs, v.BusinessID)
	}

	businesses, err := s.businesses.ListByIDs(ctx, businessIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load businesses for search results: %w", err)
	}
	byID := make(map[uuid.UUID]domain.Business, len(businesses))
	for _, b := range businesses {
		byID[b.ID] = b
	}

	now := s.clock.Now()
	results := make([]Result, 0, len(videos))
	for _, v := range videos {
		r := Result{Video: v}
		if b, ok := byID[v.BusinessID]; ok {
			r.Business = &b
			r.Relevance = Score(b.Rating, v.CreatedAt, now, b.Latitude, b.Longitude, origin)
		} else {
			// Business row missing (deleted between queries): rank on recency only.
			r.Relevance = Score(0, v.CreatedAt, now, 0, 0, Origin{})
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	return results, nil
}
