package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/KadenLi6741/Localys-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// conversationColumns must match the Scan order in scanConversation.
const conversationColumns = `id, participant_a, participant_b, created_at, last_message_at`

// ConversationRepo implements domain.ConversationRepository backed by PostgreSQL.
// Callers pass participants in canonical (sorted) order; the table's CHECK
// constraint rejects anything else.
type ConversationRepo struct {
	pool *pgxpool.Pool
}

// NewConversationRepo creates a ConversationRepo from the shared pool.
func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func scanConversation(row pgx.Row) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := row.Scan(&conv.ID, &conv.ParticipantA, &conv.ParticipantB, &conv.CreatedAt, &conv.LastMessageAt)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepo) GetByParticipants(ctx context.Context, participantA, participantB string) (*domain.Conversation, error) {
	conv, err := scanConversation(r.pool.QueryRow(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE participant_a = $1 AND participant_b = $2`,
		participantA, participantB))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation by participants: %w", err)
	}
	return conv, nil
}

func (r *ConversationRepo) GetByID(ctx context.Context, conversationID uuid.UUID) (*domain.Conversation, error) {
	conv, err := scanConversation(r.pool.QueryRow(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE id = $1`, conversationID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation by ID: %w", err)
	}
	return conv, nil
}

func (r *ConversationRepo) Create(ctx context.Context, participantA, participantB string) (*domain.Conversation, error) {
	conv, err := scanConversation(r.pool.QueryRow(ctx, `
		INSERT INTO conversations (participant_a, participant_b)
		VALUES ($1, $2)
		RETURNING `+conversationColumns, participantA, participantB))
	if isUniqueViolation(err) {
		return nil, domain.ErrConversationExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// isUniqueViolation reports whether err is PostgreSQL error 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
