package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/memberchat/member-service/internal/core/domain"
)

const tokensTable = "member_tokens"

// TokenRepository stores session tokens in the member_tokens table. It
// implements ports.TokenRotator, so the issuer replaces tokens atomically.
type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From(tokensTable).
		Where(sq.Eq{"key": key}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build token exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("token exists: %w", err)
	}
	return exists, nil
}

func (r *TokenRepository) Create(ctx context.Context, token *domain.Token) (*domain.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := insertToken(ctx, r.db, token); err != nil {
		return nil, err
	}
	return token, nil
}

func (r *TokenRepository) DeleteAllForAccount(ctx context.Context, accountID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return deleteTokens(ctx, r.db, accountID)
}

func (r *TokenRepository) FindByKey(ctx context.Context, key string) (*domain.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, args, err := psql.Select("key", "account_id", "created_at").
		From(tokensTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find token query: %w", err)
	}

	var t domain.Token
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&t.Key, &t.AccountID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

// Rotate replaces all tokens of token.AccountID with token in one transaction.
func (r *TokenRepository) Rotate(ctx context.Context, token *domain.Token) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("rotate tokens: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleted, err := deleteTokens(ctx, tx, token.AccountID)
	if err != nil {
		return 0, err
	}
	if err := insertToken(ctx, tx, token); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("rotate tokens: commit: %w", err)
	}
	return deleted, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertToken(ctx context.Context, db execer, token *domain.Token) error {
	query, args, err := psql.Insert(tokensTable).
		Columns("key", "account_id", "created_at").
		Values(token.Key, token.AccountID, token.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert token query: %w", err)
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrTokenKeyExists
		case isForeignKeyViolation(err):
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

func deleteTokens(ctx context.Context, db execer, accountID string) (int64, error) {
	query, args, err := psql.Delete(tokensTable).Where(sq.Eq{"account_id": accountID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete tokens query: %w", err)
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete tokens: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete tokens: %w", err)
	}
	return n, nil
}
