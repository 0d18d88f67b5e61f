package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/KadenLi6741/Localys-sub000/internal/domain"
	apperrors "github.com/KadenLi6741/Localys-sub000/internal/errors"
	"github.com/KadenLi6741/Localys-sub000/internal/metrics"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

const maxMessageBodyLength = 2000

// Service resolves conversations and sends messages. All durable state lives
// in the repositories; the service itself holds no per-conversation state, so
// any number of calls may run concurrently.
type Service struct {
	conversations domain.ConversationRepository
	messages      domain.MessageRepository
	clock         clockwork.Clock
	resolveGroup  singleflight.Group
}

// NewService creates the chat service.
func NewService(conversations domain.ConversationRepository, messages domain.MessageRepository, clock clockwork.Clock) *Service {
	return &Service{
		conversations: conversations,
		messages:      messages,
		clock:         clock,
	}
}

// Resolve maps an unordered participant pair to exactly one conversation,
// creating it on first contact. Concurrent callers for the same pair all
// receive the same conversation: in-process callers are collapsed by
// singleflight, and cross-process races are settled by the unique index on
// the canonical pair — creation losers recover with a single re-lookup.
func (s *Service) Resolve(ctx context.Context, userA, userB string) (*domain.Conversation, error) {
	key, err := NewKey(userA, userB)
	if err != nil {
		return nil, err
	}

	conv, err, _ := s.resolveGroup.Do(key.String(), func() (any, error) {
		return s.resolve(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	return conv.(*domain.Conversation), nil
}

func (s *Service) resolve(ctx context.Context, key Key) (*domain.Conversation, error) {
	conv, err := s.conversations.GetByParticipants(ctx, key.A, key.B)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, domain.ErrConversationNotFound) {
		return nil, fmt.Errorf("failed to look up conversation: %w", err)
	}

	conv, err = s.conversations.Create(ctx, key.A, key.B)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, domain.ErrConversationExists) {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	// Another caller won the race between lookup and create. Exactly one
	// recovery lookup; the row must exist now, so any failure surfaces.
	metrics.ConversationConflictRecoveries.Inc()
	conv, err = s.conversations.GetByParticipants(ctx, key.A, key.B)
	if err != nil {
		return nil, fmt.Errorf("failed to recover conversation after create conflict: %w", err)
	}
	return conv, nil
}

// SendMessage appends a message from senderID to an existing conversation.
// The repository advances the conversation's last_message_at in the same
// transaction as the insert.
func (s *Service) SendMessage(ctx context.Context, conversationID uuid.UUID, senderID, body string) (*domain.Message, error) {
	if body == "" {
		return nil, apperrors.ValidationError("message body must not be empty")
	}
	if len(body) > maxMessageBodyLength {
		return nil, apperrors.ValidationError("message body too long").WithContext("max_length", maxMessageBodyLength)
	}

	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if senderID != conv.ParticipantA && senderID != conv.ParticipantB {
		return nil, apperrors.ValidationError("sender is not a participant of this conversation")
	}

	msg, err := s.messages.Create(ctx, conversationID, senderID, body, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	return msg, nil
}

// RecentMessages returns up to limit messages, newest first.
func (s *Service) RecentMessages(ctx context.Context, conversationID uuid.UUID, requesterID string, limit int) ([]domain.Message, error) {
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if requesterID != conv.ParticipantA && requesterID != conv.ParticipantB {
		return nil, apperrors.ValidationError("requester is not a participant of this conversation")
	}

	msgs, err := s.messages.ListRecent(ctx, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}
