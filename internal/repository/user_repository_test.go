package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alimikegami/marketplace-service/internal/domain"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{
	"id", "external_id", "email", "password_hash", "first_name", "last_name", "birth_date", "phone", "photo",
	"locale", "is_admin", "is_suspended", "created_at", "updated_at", "membership_expire_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestGetUserByEmail_Found(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(1, "01J", "jane@example.com", "hash", "Jane", "Doe", nil, nil, nil, "en", false, false, 10, 10, int64(2000))
	mock.ExpectQuery(`(?s)SELECT .* FROM users u WHERE LOWER\(u\.email\) = LOWER\(\$1\)`).
		WithArgs("Jane@Example.com").
		WillReturnRows(rows)

	user, err := repo.GetUserByEmail(context.Background(), "Jane@Example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Jane", user.FirstName)
	require.NotNil(t, user.MembershipExpireAt)
	assert.Equal(t, int64(2000), *user.MembershipExpireAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectQuery(`FROM users u WHERE`).WillReturnRows(sqlmock.NewRows(userRowColumns))

	user, err := repo.GetUserByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Zero(t, user.ID)
}

func TestGetUserByID_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectQuery(`FROM users u WHERE u\.id = \$1`).WithArgs(int64(4)).WillReturnError(errors.New("db down"))

	_, err := repo.GetUserByID(context.Background(), 4)
	assert.ErrorIs(t, err, errs.ErrInternalServer)
}

func TestGetSaltByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectQuery(`FROM salts WHERE user_id = \$1`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "salt", "created_at", "updated_at"}).AddRow(3, 1, "ab", 1, 1))
	mock.ExpectQuery(`FROM salts WHERE user_id = \$1`).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "salt", "created_at", "updated_at"}))

	salt, err := repo.GetSaltByUserID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, salt)
	assert.Equal(t, "ab", salt.Salt)

	salt, err = repo.GetSaltByUserID(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, salt)
}

func TestAddUser_StoresUserAndSalt(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)INSERT INTO users\(.*\) RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(`INSERT INTO salts\(user_id, salt, created_at, updated_at\)`).
		WithArgs(int64(5), "salt", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	id, err := repo.AddUser(context.Background(), domain.User{Email: "jane@example.com"}, "salt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddUser_EmailConflictRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.AddUser(context.Background(), domain.User{Email: "jane@example.com"}, "salt")
	assert.ErrorIs(t, err, errs.ErrEmailAlreadyUsed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddUser_SaltFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(`INSERT INTO salts`).WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	_, err := repo.AddUser(context.Background(), domain.User{}, "salt")
	assert.ErrorIs(t, err, errs.ErrInternalServer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCredential_UpsertsSalt(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET password_hash = \$1`).
		WithArgs("newhash", sqlmock.AnyArg(), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`(?s)INSERT INTO salts.*ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs(int64(9), "newsalt", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateCredential(context.Background(), 9, "newhash", "newsalt"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_EmailConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectExec(`UPDATE users SET email=`).WillReturnError(&pq.Error{Code: "23505"})

	err := repo.UpdateUser(context.Background(), domain.User{ID: 1, Email: "a@b.co"})
	assert.ErrorIs(t, err, errs.ErrEmailAlreadyUsed)
}

func TestCountUsersByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(id\) FROM users WHERE LOWER\(email\) = LOWER\(\$1\) AND id <> \$2`).
		WithArgs("a@b.co", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountUsersByEmail(context.Background(), "a@b.co", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetUsers_AppliesFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	filter := pkgdto.Filter{Limit: 20, Offset: 40, SearchTerm: "Jane Doe", Email: "jane@example.com", IsSuspended: true}

	mock.ExpectQuery(`(?s)FROM users u WHERE u\.is_suspended = \$1 AND .*LIKE \$2 ESCAPE '\\' OR LOWER\(u\.email\) LIKE \$3 ESCAPE.*LOWER\(\$4\) ORDER BY u\.created_at DESC LIMIT \$5 OFFSET \$6`).
		WithArgs(true, "%janedoe%", "%jane doe%", "jane@example.com", 20, 40).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(1, "01J", "jane@example.com", "hash", "Jane", "Doe", nil, nil, nil, "en", false, true, 10, 10, nil))

	users, err := repo.GetUsers(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsSuspended)
	assert.Nil(t, users[0].MembershipExpireAt)
}

func TestCountUsers_SearchWildcardsAreLiteral(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(u\.id\) FROM users u WHERE`).
		WithArgs(false, `%100\%\_%`, `%100\%\_%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	count, err := repo.CountUsers(context.Background(), pkgdto.Filter{SearchTerm: "100%_"})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCountUsers_DefaultFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := CreateNewUserRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(u\.id\) FROM users u WHERE u\.is_suspended = \$1$`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.CountUsers(context.Background(), pkgdto.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}
