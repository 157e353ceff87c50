package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memberchat/member-service/internal/core/domain"
	"github.com/memberchat/member-service/internal/core/ports"
)

var _ ports.TokenRotator = (*TokenRepository)(nil)

func TestTokenRepository_ExistsByKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS ( SELECT 1 FROM member_tokens WHERE key = $1 )")).
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByKey(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTokenRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)
	token := &domain.Token{Key: "abc", AccountID: "acc-1", CreatedAt: time.Now().UTC()}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO member_tokens (key,account_id,created_at) VALUES ($1,$2,$3)")).
		WithArgs("abc", "acc-1", token.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, token, created)
}

func TestTokenRepository_Create_Violations(t *testing.T) {
	cases := map[string]struct {
		code string
		want error
	}{
		"duplicate key":   {pgerrcode.UniqueViolation, domain.ErrTokenKeyExists},
		"missing account": {pgerrcode.ForeignKeyViolation, domain.ErrAccountNotFound},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectExec("INSERT INTO member_tokens").WillReturnError(pgError(tc.code))

			_, err := NewTokenRepository(db).Create(context.Background(), &domain.Token{Key: "abc", AccountID: "acc-1"})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTokenRepository_DeleteAllForAccount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM member_tokens WHERE account_id = $1")).
		WithArgs("acc-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteAllForAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestTokenRepository_FindByKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT key, account_id, created_at FROM member_tokens WHERE key = $1")).
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows([]string{"key", "account_id", "created_at"}).AddRow("abc", "acc-1", now))

	token, err := repo.FindByKey(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", token.AccountID)
	assert.True(t, token.CreatedAt.Equal(now))
}

func TestTokenRepository_FindByKey_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("FROM member_tokens").WillReturnError(sql.ErrNoRows)

	_, err := NewTokenRepository(db).FindByKey(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestTokenRepository_Rotate_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)
	token := &domain.Token{Key: "new", AccountID: "acc-1", CreatedAt: time.Now().UTC()}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM member_tokens").WithArgs("acc-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO member_tokens").WithArgs("new", "acc-1", token.CreatedAt).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.Rotate(context.Background(), token)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
}

func TestTokenRepository_Rotate_RollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM member_tokens").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO member_tokens").WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.Rotate(context.Background(), &domain.Token{Key: "dup", AccountID: "acc-1"})
	assert.ErrorIs(t, err, domain.ErrTokenKeyExists)
}

func TestTokenRepository_Rotate_BeginFailure(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("too many connections")
	mock.ExpectBegin().WillReturnError(boom)

	_, err := NewTokenRepository(db).Rotate(context.Background(), &domain.Token{Key: "k", AccountID: "acc-1"})
	assert.ErrorIs(t, err, boom)
}
