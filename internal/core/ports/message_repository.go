package ports

import (
	"context"

	"github.com/memberchat/member-service/internal/core/domain"
)

// MessageRepository persists chat messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error)
	// ListRecent returns up to limit messages, newest first, with
	// AuthorUsername populated.
	ListRecent(ctx context.Context, limit int) ([]domain.ChatMessage, error)
}
