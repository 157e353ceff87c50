package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/memberchat/member-service/internal/core/domain"
)

const maxWatchRetries = 3

// TokenRepository stores session tokens in Redis.
// Key format:
//
//	member_token:<key>          -> JSON tokenRecord
//	member_tokens:<account_id>  -> set of keys owned by the account
type TokenRepository struct {
	client redis.UniversalClient
}

// NewTokenRepository creates a TokenRepository wrapping the given Redis client.
func NewTokenRepository(client redis.UniversalClient) *TokenRepository {
	return &TokenRepository{client: client}
}

type tokenRecord struct {
	AccountID string    `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}

func tokenKey(key string) string {
	return "member_token:" + key
}

func accountTokensKey(accountID string) string {
	return "member_tokens:" + accountID
}

func encodeToken(t *domain.Token) (string, error) {
	b, err := json.Marshal(tokenRecord{AccountID: t.AccountID, CreatedAt: t.CreatedAt.UTC()})
	if err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	return string(b), nil
}

func (r *TokenRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, tokenKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("token exists: %w", err)
	}
	return n > 0, nil
}

func (r *TokenRepository) Create(ctx context.Context, token *domain.Token) (*domain.Token, error) {
	val, err := encodeToken(token)
	if err != nil {
		return nil, err
	}

	ok, err := r.client.SetNX(ctx, tokenKey(token.Key), val, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("insert token: %w", err)
	}
	if !ok {
		return nil, domain.ErrTokenKeyExists
	}

	if err := r.client.SAdd(ctx, accountTokensKey(token.AccountID), token.Key).Err(); err != nil {
		_ = r.client.Del(ctx, tokenKey(token.Key)).Err()
		return nil, fmt.Errorf("index token: %w", err)
	}
	return token, nil
}

func (r *TokenRepository) DeleteAllForAccount(ctx context.Context, accountID string) (int64, error) {
	setKey := accountTokensKey(accountID)

	keys, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return 0, fmt.Errorf("list tokens: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	n, err := r.client.Del(ctx, tokenKeys(keys)...).Result()
	if err != nil {
		return 0, fmt.Errorf("delete tokens: %w", err)
	}
	if err := r.client.SRem(ctx, setKey, toAny(keys)...).Err(); err != nil {
		return n, fmt.Errorf("unindex tokens: %w", err)
	}
	return n, nil
}

func (r *TokenRepository) FindByKey(ctx context.Context, key string) (*domain.Token, error) {
	val, err := r.client.Get(ctx, tokenKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	var rec tokenRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return &domain.Token{Key: key, AccountID: rec.AccountID, CreatedAt: rec.CreatedAt.UTC()}, nil
}

// Rotate replaces every token of token.AccountID with token inside a
// MULTI/EXEC block. The account's key set is WATCHed so a concurrent rotation
// aborts the transaction and is retried.
func (r *TokenRepository) Rotate(ctx context.Context, token *domain.Token) (int64, error) {
	val, err := encodeToken(token)
	if err != nil {
		return 0, err
	}
	setKey := accountTokensKey(token.AccountID)
	newKey := tokenKey(token.Key)

	var deleted int64
	rotate := func(tx *redis.Tx) error {
		old, err := tx.SMembers(ctx, setKey).Result()
		if err != nil {
			return err
		}
		taken, err := tx.Exists(ctx, newKey).Result()
		if err != nil {
			return err
		}
		if taken > 0 {
			return domain.ErrTokenKeyExists
		}

		var del *redis.IntCmd
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(old) > 0 {
				del = pipe.Del(ctx, tokenKeys(old)...)
			}
			pipe.Del(ctx, setKey)
			pipe.Set(ctx, newKey, val, 0)
			pipe.SAdd(ctx, setKey, token.Key)
			return nil
		})
		if err != nil {
			return err
		}
		if del != nil {
			deleted = del.Val()
		}
		return nil
	}

	for i := 0; i < maxWatchRetries; i++ {
		err = r.client.Watch(ctx, rotate, setKey, newKey)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, domain.ErrTokenKeyExists) {
			return 0, err
		}
		return 0, fmt.Errorf("rotate tokens: %w", err)
	}
	return deleted, nil
}

func tokenKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = tokenKey(k)
	}
	return out
}

func toAny(keys []string) []any {
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out
}
