package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/memberchat/member-service/internal/core/domain"
)

const messagesTable = "chat_messages"

// MessageRepository stores chat messages in the chat_messages table.
type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, args, err := psql.Insert(messagesTable).
		Columns("id", "author_id", "text", "created_at").
		Values(msg.ID, msg.AuthorID, msg.Text, msg.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert message query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return msg, nil
}

func (r *MessageRepository) ListRecent(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, args, err := psql.Select("m.id", "m.author_id", "a.username", "m.text", "m.created_at").
		From(messagesTable + " m").
		Join(accountsTable + " a ON a.id = m.author_id").
		OrderBy("m.created_at DESC", "m.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list messages query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	msgs := make([]domain.ChatMessage, 0, limit)
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.AuthorID, &m.AuthorUsername, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = m.CreatedAt.UTC()
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}
