package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/memberchat/member-service/internal/core/domain"
)

const accountsTable = "accounts"

var accountColumns = []string{"id", "username", "password_hash", "created_at"}

// AccountRepository stores accounts in the accounts table.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, sq.Eq{"username": username})
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *AccountRepository) findOne(ctx context.Context, where sq.Eq) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, args, err := psql.Select(accountColumns...).From(accountsTable).Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find account query: %w", err)
	}

	var a domain.Account
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

func (r *AccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From(accountsTable).
		Where(sq.Eq{"username": username}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build account exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("account exists: %w", err)
	}
	return exists, nil
}

// Create inserts the account and returns the stored row.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, args, err := psql.Insert(accountsTable).
		Columns(accountColumns...).
		Values(account.ID, account.Username, account.PasswordHash, account.CreatedAt).
		Suffix("RETURNING id, username, password_hash, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert account query: %w", err)
	}

	var created domain.Account
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.Username, &created.PasswordHash, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created.CreatedAt = created.CreatedAt.UTC()
	return &created, nil
}

func (r *AccountRepository) UpdateUsername(ctx context.Context, id, username string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, args, err := psql.Update(accountsTable).
		Set("username", username).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update account query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update account: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

