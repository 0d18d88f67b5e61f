package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KadenLi6741/Localys-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockVideoRepo struct {
	domain.VideoRepository
	searchByTermsFn func(ctx context.Context, terms []string, limit int) ([]domain.Video, error)
}

func (m *mockVideoRepo) SearchByTerms(ctx context.Context, terms []string, limit int) ([]domain.Video, error) {
	return m.searchByTermsFn(ctx, terms, limit)
}

type mockBusinessRepo struct {
	domain.BusinessRepository
	listByIDsFn func(ctx context.Context, ids []uuid.UUID) ([]domain.Business, error)
}

func (m *mockBusinessRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Business, error) {
	return m.listByIDsFn(ctx, ids)
}

func TestSearch_EmptyQueryReturnsNothing(t *testing.T) {
	svc := NewService(&mockVideoRepo{}, &mockBusinessRepo{}, clockwork.NewFakeClock())

	results, err := svc.Search(context.Background(), "   ", Origin{}, 20)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_ExpandedTermsReachRepository(t *testing.T) {
	var gotTerms []string
	videos := &mockVideoRepo{
		searchByTermsFn: func(_ context.Context, terms []string, _ int) ([]domain.Video, error) {
			gotTerms = terms
			return nil, nil
		},
	}
	svc := NewService(videos, &mockBusinessRepo{}, clockwork.NewFakeClock())

	_, err := svc.Search(context.Background(), "coffee", Origin{}, 20)

	require.NoError(t, err)
	assert.Equal(t, "coffee", gotTerms[0])
	assert.Contains(t, gotTerms, "cafe")
}

func TestSearch_OrdersByRelevance(t *testing.T) {
	clock := clockwork.NewFakeClock()
	now := clock.Now()

	topBusiness := domain.Business{ID: uuid.New(), Name: "Great Cafe", Rating: 5}
	okBusiness := domain.Business{ID: uuid.New(), Name: "Fine Cafe", Rating: 2.5}

	topVideo := domain.Video{ID: uuid.New(), BusinessID: topBusiness.ID, Title: "coffee art", CreatedAt: now}
	okVideo := domain.Video{ID: uuid.New(), BusinessID: okBusiness.ID, Title: "coffee deal", CreatedAt: now}

	videos := &mockVideoRepo{
		searchByTermsFn: func(context.Context, []string, int) ([]domain.Video, error) {
			return []domain.Video{okVideo, topVideo}, nil
		},
	}
	businesses := &mockBusinessRepo{
		listByIDsFn: func(context.Context, []uuid.UUID) ([]domain.Business, error) {
			return []domain.Business{topBusiness, okBusiness}, nil
		},
	}
	svc := NewService(videos, businesses, clock)

	results, err := svc.Search(context.Background(), "coffee", Origin{}, 20)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, topVideo.ID, results[0].Video.ID)
	assert.Equal(t, okVideo.ID, results[1].Video.ID)
	assert.Greater(t, results[0].Relevance, results[1].Relevance)
	require.NotNil(t, results[0].Business)
	assert.Equal(t, topBusiness.ID, results[0].Business.ID)
}

func TestSearch_MissingBusinessRankedOnRecency(t *testing.T) {
	clock := clockwork.NewFakeClock()
	now := clock.Now()

	orphan := domain.Video{ID: uuid.New(), BusinessID: uuid.New(), Title: "coffee", CreatedAt: now.Add(-7 * 24 * time.Hour)}

	videos := &mockVideoRepo{
		searchByTermsFn: func(context.Context, []string, int) ([]domain.Video, error) {
			return []domain.Video{orphan}, nil
		},
	}
	businesses := &mockBusinessRepo{
		listByIDsFn: func(context.Context, []uuid.UUID) ([]domain.Business, error) {
			return nil, nil
		},
	}
	svc := NewService(videos, businesses, clock)

	results, err := svc.Search(context.Background(), "coffee", Origin{}, 20)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Nil(t, results[0].Business)
	assert.Greater(t, results[0].Relevance, 0.0)
}

func TestSearch_RepositoryErrorPropagates(t *testing.T) {
	videos := &mockVideoRepo{
		searchByTermsFn: func(context.Context, []string, int) ([]domain.Video, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewService(videos, &mockBusinessRepo{}, clockwork.NewFakeClock())

	_, err := svc.Search(context.Background(), "coffee", Origin{}, 20)

	assert.ErrorContains(t, err, "failed to search videos")
}
