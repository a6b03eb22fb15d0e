package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alimikegami/marketplace-service/internal/domain"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const userColumns = `u.id, u.external_id, u.email, u.password_hash, u.first_name, u.last_name,
	u.birth_date, u.phone, u.photo, u.locale, u.is_admin, u.is_suspended, u.created_at, u.updated_at,
	(SELECT MAX(m.expire_at) FROM memberships m WHERE m.user_id = u.id) AS membership_expire_at`

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (res domain.User, err error)
	GetUserByID(ctx context.Context, id int64) (res domain.User, err error)
	GetSaltByUserID(ctx context.Context, userID int64) (res *domain.Salt, err error)
	AddUser(ctx context.Context, data domain.User, salt string) (id int64, err error)
	UpdateUser(ctx context.Context, data domain.User) (err error)
	UpdatePhoto(ctx context.Context, id int64, photo *string) (err error)
	UpdateCredential(ctx context.Context, userID int64, passwordHash, salt string) (err error)
	CountUsersByEmail(ctx context.Context, email string, excludeID int64) (count int64, err error)
	GetUsers(ctx context.Context, filter pkgdto.Filter) (data []domain.User, err error)
	CountUsers(ctx context.Context, filter pkgdto.Filter) (count int64, err error)
}

type UserRepositoryImpl struct {
	db *sqlx.DB
}

func CreateNewUserRepository(db *sqlx.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// GetUserByEmail returns a zero User when no account matches.
func (r *UserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (res domain.User, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT "+userColumns+" FROM users u WHERE LOWER(u.email) = LOWER($1)", email)
	err = row.StructScan(&res)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, nil
		}
		log.Error().Err(err).Str("component", "GetUserByEmail").Msg("")
		return res, errs.ErrInternalServer
	}

	return
}

// GetUserByID returns a zero User when no account matches.
func (r *UserRepositoryImpl) GetUserByID(ctx context.Context, id int64) (res domain.User, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT "+userColumns+" FROM users u WHERE u.id = $1", id)
	err = row.StructScan(&res)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, nil
		}
		log.Error().Err(err).Str("component", "GetUserByID").Msg("")
		return res, errs.ErrInternalServer
	}

	return
}

func (r *UserRepositoryImpl) GetSaltByUserID(ctx context.Context, userID int64) (res *domain.Salt, err error) {
	var salt domain.Salt
	err = r.db.GetContext(ctx, &salt, "SELECT id, user_id, salt, created_at, updated_at FROM salts WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Err(err).Str("component", "GetSaltByUserID").Msg("")
		return nil, errs.ErrInternalServer
	}

	return &salt, nil
}

// AddUser stores the user and its salt in one transaction.
func (r *UserRepositoryImpl) AddUser(ctx context.Context, data domain.User, salt string) (id int64, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Str("component", "AddUser").Msg("")
		return 0, errs.ErrInternalServer
	}
	defer rollback(tx, "AddUser")

	timestamp := time.Now().UnixMilli()

	err = tx.QueryRowxContext(ctx,
		`INSERT INTO users(external_id, email, password_hash, first_name, last_name, birth_date, phone, locale, is_admin, is_suspended, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11) RETURNING id`,
		data.ExternalID, data.Email, data.PasswordHash, data.FirstName, data.LastName, data.BirthDate, data.Phone,
		data.Locale, data.IsAdmin, data.IsSuspended, timestamp,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, errs.ErrEmailAlreadyUsed
		}
		log.Error().Err(err).Str("component", "AddUser").Msg("")
		return 0, errs.ErrInternalServer
	}

	_, err = tx.ExecContext(ctx, "INSERT INTO salts(user_id, salt, created_at, updated_at) VALUES ($1, $2, $3, $3)", id, salt, timestamp)
	if err != nil {
		log.Error().Err(err).Str("component", "AddUser").Msg("")
		return 0, errs.ErrInternalServer
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Str("component", "AddUser").Msg("")
		return 0, errs.ErrInternalServer
	}

	return id, nil
}

func (r *UserRepositoryImpl) UpdateUser(ctx context.Context, data domain.User) (err error) {
	data.UpdatedAt = time.Now().UnixMilli()

	_, err = r.db.NamedExecContext(ctx,
		`UPDATE users SET email=:email, first_name=:first_name, last_name=:last_name, birth_date=:birth_date,
		phone=:phone, locale=:locale, is_suspended=:is_suspended, updated_at=:updated_at WHERE id=:id`, data)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrEmailAlreadyUsed
		}
		log.Error().Err(err).Str("component", "UpdateUser").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *UserRepositoryImpl) UpdatePhoto(ctx context.Context, id int64, photo *string) (err error) {
	_, err = r.db.ExecContext(ctx, "UPDATE users SET photo = $1, updated_at = $2 WHERE id = $3", photo, time.Now().UnixMilli(), id)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdatePhoto").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

// UpdateCredential replaces the password hash and upserts the salt row.
func (r *UserRepositoryImpl) UpdateCredential(ctx context.Context, userID int64, passwordHash, salt string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateCredential").Msg("")
		return errs.ErrInternalServer
	}
	defer rollback(tx, "UpdateCredential")

	timestamp := time.Now().UnixMilli()

	_, err = tx.ExecContext(ctx, "UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3", passwordHash, timestamp, userID)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateCredential").Msg("")
		return errs.ErrInternalServer
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO salts(user_id, salt, created_at, updated_at) VALUES ($1, $2, $3, $3)
		ON CONFLICT (user_id) DO UPDATE SET salt = EXCLUDED.salt, updated_at = EXCLUDED.updated_at`,
		userID, salt, timestamp)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateCredential").Msg("")
		return errs.ErrInternalServer
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Str("component", "UpdateCredential").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

// CountUsersByEmail counts the accounts using email, ignoring excludeID.
func (r *UserRepositoryImpl) CountUsersByEmail(ctx context.Context, email string, excludeID int64) (count int64, err error) {
	err = r.db.GetContext(ctx, &count, "SELECT COUNT(id) FROM users WHERE LOWER(email) = LOWER($1) AND id <> $2", email, excludeID)
	if err != nil {
		log.Error().Err(err).Str("component", "CountUsersByEmail").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *UserRepositoryImpl) GetUsers(ctx context.Context, filter pkgdto.Filter) (data []domain.User, err error) {
	where, args := userFilter(filter)
	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf("SELECT %s FROM users u WHERE %s ORDER BY u.created_at DESC LIMIT $%d OFFSET $%d",
		userColumns, where, len(args)-1, len(args))

	err = r.db.SelectContext(ctx, &data, query, args...)
	if err != nil {
		log.Error().Err(err).Str("component", "GetUsers").Msg("")
		return nil, errs.ErrInternalServer
	}

	return data, nil
}

func (r *UserRepositoryImpl) CountUsers(ctx context.Context, filter pkgdto.Filter) (count int64, err error) {
	where, args := userFilter(filter)

	err = r.db.GetContext(ctx, &count, "SELECT COUNT(u.id) FROM users u WHERE "+where, args...)
	if err != nil {
		log.Error().Err(err).Str("component", "CountUsers").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

// userFilter searches on the concatenated first and last name, so
// "janedoe" and "Jane Doe" both match, or on the email.
func userFilter(filter pkgdto.Filter) (string, []interface{}) {
	conditions := []string{"u.is_suspended = $1"}
	args := []interface{}{filter.IsSuspended}

	if term := strings.ToLower(strings.TrimSpace(filter.SearchTerm)); term != "" {
		args = append(args, "%"+escapeLike(strings.Join(strings.Fields(term), ""))+"%", "%"+escapeLike(term)+"%")
		conditions = append(conditions, fmt.Sprintf(`(LOWER(REPLACE(u.first_name || u.last_name, ' ', '')) LIKE $%d ESCAPE '\' OR LOWER(u.email) LIKE $%d ESCAPE '\')`, len(args)-1, len(args)))
	}

	if filter.Email != "" {
		args = append(args, filter.Email)
		conditions = append(conditions, fmt.Sprintf("LOWER(u.email) = LOWER($%d)", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

func rollback(tx *sqlx.Tx, component string) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Error().Err(err).Str("component", component).Msg("rollback failed")
	}
}
