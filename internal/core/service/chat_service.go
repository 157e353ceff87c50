package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/memberchat/member-service/internal/core/domain"
	"github.com/memberchat/member-service/internal/core/ports"
)

type chatService struct {
	messages ports.MessageRepository
	now      func() time.Time
	log      zerolog.Logger
}

// NewChatService returns a ChatService implementation.
func NewChatService(messages ports.MessageRepository, log zerolog.Logger) ports.ChatService {
	return &chatService{
		messages: messages,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

// List returns the most recent messages, newest first.
func (s *chatService) List(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	msgs, err := s.messages.ListRecent(ctx, domain.ClampMessageLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// Post stores a message authored by the given account.
func (s *chatService) Post(ctx context.Context, author *domain.Account, text string) (*domain.ChatMessage, error) {
	if author == nil {
		return nil, domain.ErrNilAccount
	}

	text, err := domain.NormalizeMessageText(text)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("post message: generate id: %w", err)
	}

	msg, err := s.messages.Create(ctx, &domain.ChatMessage{
		ID:             id.String(),
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Text:           text,
		CreatedAt:      s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}

	s.log.Debug().Str("account_id", author.ID).Str("message_id", msg.ID).Msg("message posted")
	return msg, nil
}
