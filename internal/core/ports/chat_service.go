package ports

import (
	"context"

	"github.com/memberchat/member-service/internal/core/domain"
)

// ChatService lists and posts chat messages.
type ChatService interface {
	List(ctx context.Context, limit int) ([]domain.ChatMessage, error)
	Post(ctx context.Context, author *domain.Account, text string) (*domain.ChatMessage, error)
}
