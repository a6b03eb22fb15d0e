package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alimikegami/marketplace-service/internal/domain"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const clientColumns = `c.id, c.user_id, c.company_name, c.description, c.web_site, c.is_hidden, c.is_pending,
	c.is_approved, c.created_at, c.updated_at, u.is_suspended AS user_is_suspended`

const clientSearch = `($1 = '' OR c.company_name ILIKE '%' || $1 || '%' ESCAPE '\')`

type ClientRepository interface {
	GetClientByID(ctx context.Context, id int64) (res domain.Client, err error)
	GetClientByUserID(ctx context.Context, userID int64) (res domain.Client, err error)
	GetClients(ctx context.Context, filter pkgdto.Filter) (data []domain.Client, err error)
	CountClients(ctx context.Context, filter pkgdto.Filter) (count int64, err error)
	AddClient(ctx context.Context, data domain.Client) (id int64, err error)
	UpdateClient(ctx context.Context, data domain.Client) (err error)
}

type ClientRepositoryImpl struct {
	db *sqlx.DB
}

func CreateNewClientRepository(db *sqlx.DB) ClientRepository {
	return &ClientRepositoryImpl{db: db}
}

func (r *ClientRepositoryImpl) GetClientByID(ctx context.Context, id int64) (res domain.Client, err error) {
	err = r.db.GetContext(ctx, &res, "SELECT "+clientColumns+" FROM clients c JOIN users u ON u.id = c.user_id WHERE c.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, nil
		}
		log.Error().Err(err).Str("component", "GetClientByID").Msg("")
		return res, errs.ErrInternalServer
	}

	return
}

func (r *ClientRepositoryImpl) GetClientByUserID(ctx context.Context, userID int64) (res domain.Client, err error) {
	err = r.db.GetContext(ctx, &res, "SELECT "+clientColumns+" FROM clients c JOIN users u ON u.id = c.user_id WHERE c.user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, nil
		}
		log.Error().Err(err).Str("component", "GetClientByUserID").Msg("")
		return res, errs.ErrInternalServer
	}

	return
}

func (r *ClientRepositoryImpl) GetClients(ctx context.Context, filter pkgdto.Filter) (data []domain.Client, err error) {
	query := "SELECT " + clientColumns + " FROM clients c JOIN users u ON u.id = c.user_id WHERE " + clientSearch + " ORDER BY c.created_at DESC LIMIT $2 OFFSET $3"

	err = r.db.SelectContext(ctx, &data, query, escapeLike(filter.SearchTerm), filter.Limit, filter.Offset)
	if err != nil {
		log.Error().Err(err).Str("component", "GetClients").Msg("")
		return nil, errs.ErrInternalServer
	}

	return data, nil
}

func (r *ClientRepositoryImpl) CountClients(ctx context.Context, filter pkgdto.Filter) (count int64, err error) {
	err = r.db.GetContext(ctx, &count, "SELECT COUNT(c.id) FROM clients c WHERE "+clientSearch, escapeLike(filter.SearchTerm))
	if err != nil {
		log.Error().Err(err).Str("component", "CountClients").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *ClientRepositoryImpl) AddClient(ctx context.Context, data domain.Client) (id int64, err error) {
	timestamp := time.Now().UnixMilli()

	err = r.db.QueryRowxContext(ctx,
		`INSERT INTO clients(user_id, company_name, description, web_site, is_hidden, is_pending, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id`,
		data.UserID, data.CompanyName, data.Description, data.WebSite, data.IsHidden, data.IsPending, data.IsApproved, timestamp,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, errs.ErrClientAlreadyExists
		}
		log.Error().Err(err).Str("component", "AddClient").Msg("")
		return 0, errs.ErrInternalServer
	}

	return id, nil
}

func (r *ClientRepositoryImpl) UpdateClient(ctx context.Context, data domain.Client) (err error) {
	data.UpdatedAt = time.Now().UnixMilli()

	_, err = r.db.NamedExecContext(ctx,
		`UPDATE clients SET company_name=:company_name, description=:description, web_site=:web_site, is_hidden=:is_hidden,
		is_pending=:is_pending, is_approved=:is_approved, updated_at=:updated_at WHERE id=:id`, data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateClient").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}
