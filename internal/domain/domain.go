package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Model types ---

type Video struct {
	ID          uuid.UUID `db:"id"`
	BusinessID  uuid.UUID `db:"business_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Boost       float64   `db:"boost"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Business struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Category  string    `db:"category"`
	Rating    float64   `db:"rating"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
	CreatedAt time.Time `db:"created_at"`
}

type Conversation struct {
	ID            uuid.UUID `db:"id"`
	ParticipantA  string    `db:"participant_a"`
	ParticipantB  string    `db:"participant_b"`
	CreatedAt     time.Time `db:"created_at"`
	LastMessageAt time.Time `db:"last_message_at"`
}

type Message struct {
	ID             uuid.UUID `db:"id"`
	ConversationID uuid.UUID `db:"conversation_id"`
	SenderID       string    `db:"sender_id"`
	Body           string    `db:"body"`
	CreatedAt      time.Time `db:"created_at"`
}

// --- Shared value types ---

// RankingEntry is one feed candidate: a video ID and its current boost value.
// Boost is always >= 1.0; promotion only raises it, capped at MaxBoost.
type RankingEntry struct {
	ID    uuid.UUID `json:"id"`
	Boost float64   `json:"boost"`
}

const (
	DefaultBoost = 1.0
	MaxBoost     = 100.0
)

// --- Interfaces ---

// VideoRepository provides video catalog access backed by PostgreSQL.
type VideoRepository interface {
	GetByID(ctx context.Context, videoID uuid.UUID) (*Video, error)
	Create(ctx context.Context, video *Video) error
	ListRankingEntries(ctx context.Context) ([]RankingEntry, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Video, error)
	ApplyBoost(ctx context.Context, videoID uuid.UUID, units float64) (float64, error)
	SearchByTerms(ctx context.Context, terms []string, limit int) ([]Video, error)
}

// ConversationRepository maps canonical participant pairs to conversation rows.
// Create must report a violation of the unique pair index as
// ErrConversationExists so callers can recover from creation races.
type ConversationRepository interface {
	GetByParticipants(ctx context.Context, participantA, participantB string) (*Conversation, error)
	GetByID(ctx context.Context, conversationID uuid.UUID) (*Conversation, error)
	Create(ctx context.Context, participantA, participantB string) (*Conversation, error)
}

// MessageRepository stores direct messages.
type MessageRepository interface {
	Create(ctx context.Context, conversationID uuid.UUID, senderID, body string, sentAt time.Time) (*Message, error)
	ListRecent(ctx context.Context, conversationID uuid.UUID, limit int) ([]Message, error)
}

// BusinessRepository provides business profiles for search scoring.
type BusinessRepository interface {
	GetByID(ctx context.Context, businessID uuid.UUID) (*Business, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Business, error)
}

// RankingCache holds the feed candidate list between requests. Implementations
// must treat cache failures as misses; the feed never fails on cache trouble.
type RankingCache interface {
	GetCandidates(ctx context.Context) ([]RankingEntry, bool, error)
	SetCandidates(ctx context.Context, entries []RankingEntry) error
	Invalidate(ctx context.Context) error
}
