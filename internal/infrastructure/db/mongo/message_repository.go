package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/memberchat/member-service/internal/core/domain"
	"github.com/memberchat/member-service/internal/core/ports"
)

// MessageRepository implements ports.MessageRepository using MongoDB.
type MessageRepository struct {
	coll *mongo.Collection
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *mongo.Database) ports.MessageRepository {
	return &MessageRepository{coll: db.Collection(messagesCollection)}
}

type messageDoc struct {
	ID        string    `bson:"_id"`
	AuthorID  string    `bson:"author_id"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"created_at"`
	// Author is filled by the $lookup stage in ListRecent.
	Author []accountDoc `bson:"author,omitempty"`
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error) {
	doc := messageDoc{ID: msg.ID, AuthorID: msg.AuthorID, Text: msg.Text, CreatedAt: msg.CreatedAt.UTC()}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return msg, nil
}

// ListRecent joins each message to its author so the current username is
// returned even after a rename.
func (r *MessageRepository) ListRecent(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: accountsCollection},
			{Key: "localField", Value: "author_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cursor.Close(ctx)

	msgs := make([]domain.ChatMessage, 0, limit)
	for cursor.Next(ctx) {
		var doc messageDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		m := domain.ChatMessage{
			ID:        doc.ID,
			AuthorID:  doc.AuthorID,
			Text:      doc.Text,
			CreatedAt: doc.CreatedAt.UTC(),
		}
		if len(doc.Author) > 0 {
			m.AuthorUsername = doc.Author[0].Username
		}
		msgs = append(msgs, m)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}
