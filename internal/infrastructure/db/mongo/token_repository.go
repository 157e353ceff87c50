package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/memberchat/member-service/internal/core/domain"
	"github.com/memberchat/member-service/internal/core/ports"
)

// TokenRepository implements ports.TokenRepository using MongoDB. The key is
// stored as _id so uniqueness comes from the primary index.
//
// It does not implement ports.TokenRotator: a standalone server has no
// multi-document transactions, so the issuer deletes and inserts in two steps.
type TokenRepository struct {
	coll *mongo.Collection
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *mongo.Database) ports.TokenRepository {
	return &TokenRepository{coll: db.Collection(tokensCollection)}
}

type tokenDoc struct {
	Key       string    `bson:"_id"`
	AccountID string    `bson:"account_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *TokenRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": key}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("token exists: %w", err)
	}
	return n > 0, nil
}

func (r *TokenRepository) Create(ctx context.Context, token *domain.Token) (*domain.Token, error) {
	doc := tokenDoc{Key: token.Key, AccountID: token.AccountID, CreatedAt: token.CreatedAt.UTC()}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrTokenKeyExists
		}
		return nil, fmt.Errorf("insert token: %w", err)
	}
	return token, nil
}

func (r *TokenRepository) DeleteAllForAccount(ctx context.Context, accountID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"account_id": accountID})
	if err != nil {
		return 0, fmt.Errorf("delete tokens: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *TokenRepository) FindByKey(ctx context.Context, key string) (*domain.Token, error) {
	var doc tokenDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return &domain.Token{Key: doc.Key, AccountID: doc.AccountID, CreatedAt: doc.CreatedAt.UTC()}, nil
}
