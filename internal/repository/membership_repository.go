package repository

import (
	"context"
	"time"

	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type MembershipRepository interface {
	AddMembership(ctx context.Context, data domain.Membership) (id int64, err error)
	GetExpiringMemberships(ctx context.Context, from, to int64) (data []domain.MembershipReminder, err error)
	MarkReminderSent(ctx context.Context, id int64, at int64) (err error)
}

type MembershipRepositoryImpl struct {
	db *sqlx.DB
}

func CreateNewMembershipRepository(db *sqlx.DB) MembershipRepository {
	return &MembershipRepositoryImpl{db: db}
}

func (r *MembershipRepositoryImpl) AddMembership(ctx context.Context, data domain.Membership) (id int64, err error) {
	err = r.db.QueryRowxContext(ctx,
		"INSERT INTO memberships(user_id, type, expire_at, created_at) VALUES ($1, $2, $3, $4) RETURNING id",
		data.UserID, data.Type, data.ExpireAt, time.Now().UnixMilli(),
	).Scan(&id)
	if err != nil {
		log.Error().Err(err).Str("component", "AddMembership").Msg("")
		return 0, errs.ErrInternalServer
	}

	return id, nil
}

// GetExpiringMemberships lists the latest membership of each active user
// when it expires in (from, to] and no reminder was sent for it yet.
func (r *MembershipRepositoryImpl) GetExpiringMemberships(ctx context.Context, from, to int64) (data []domain.MembershipReminder, err error) {
	query := `SELECT m.id AS membership_id, m.user_id, u.email, u.first_name, u.locale, m.type, m.expire_at
		FROM memberships m JOIN users u ON u.id = m.user_id
		WHERE m.reminder_sent_at IS NULL AND u.is_suspended = FALSE
		AND m.expire_at > $1 AND m.expire_at <= $2
		AND m.expire_at = (SELECT MAX(l.expire_at) FROM memberships l WHERE l.user_id = m.user_id)`

	err = r.db.SelectContext(ctx, &data, query, from, to)
	if err != nil {
		log.Error().Err(err).Str("component", "GetExpiringMemberships").Msg("")
		return nil, errs.ErrInternalServer
	}

	return data, nil
}

func (r *MembershipRepositoryImpl) MarkReminderSent(ctx context.Context, id int64, at int64) (err error) {
	_, err = r.db.ExecContext(ctx, "UPDATE memberships SET reminder_sent_at = $1 WHERE id = $2", at, id)
	if err != nil {
		log.Error().Err(err).Str("component", "MarkReminderSent").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}
