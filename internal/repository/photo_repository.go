package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const photoColumns = "id, client_id, file_name, caption, created_at, updated_at"

type PhotoRepository interface {
	GetPhotoByID(ctx context.Context, id int64) (res domain.Photo, err error)
	GetPhotosByClientID(ctx context.Context, clientID int64) (data []domain.Photo, err error)
	AddPhoto(ctx context.Context, data domain.Photo) (id int64, err error)
	UpdateCaption(ctx context.Context, id int64, caption *string) (err error)
	DeletePhoto(ctx context.Context, id int64) (err error)
}

type PhotoRepositoryImpl struct {
	db *sqlx.DB
}

func CreateNewPhotoRepository(db *sqlx.DB) PhotoRepository {
	return &PhotoRepositoryImpl{db: db}
}

func (r *PhotoRepositoryImpl) GetPhotoByID(ctx context.Context, id int64) (res domain.Photo, err error) {
	err = r.db.GetContext(ctx, &res, "SELECT "+photoColumns+" FROM photos WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, nil
		}
		log.Error().Err(err).Str("component", "GetPhotoByID").Msg("")
		return res, errs.ErrInternalServer
	}

	return
}

func (r *PhotoRepositoryImpl) GetPhotosByClientID(ctx context.Context, clientID int64) (data []domain.Photo, err error) {
	err = r.db.SelectContext(ctx, &data, "SELECT "+photoColumns+" FROM photos WHERE client_id = $1 ORDER BY created_at", clientID)
	if err != nil {
		log.Error().Err(err).Str("component", "GetPhotosByClientID").Msg("")
		return nil, errs.ErrInternalServer
	}

	return data, nil
}

func (r *PhotoRepositoryImpl) AddPhoto(ctx context.Context, data domain.Photo) (id int64, err error) {
	timestamp := time.Now().UnixMilli()

	err = r.db.QueryRowxContext(ctx,
		"INSERT INTO photos(client_id, file_name, caption, created_at, updated_at) VALUES ($1, $2, $3, $4, $4) RETURNING id",
		data.ClientID, data.FileName, data.Caption, timestamp,
	).Scan(&id)
	if err != nil {
		log.Error().Err(err).Str("component", "AddPhoto").Msg("")
		return 0, errs.ErrInternalServer
	}

	return id, nil
}

func (r *PhotoRepositoryImpl) UpdateCaption(ctx context.Context, id int64, caption *string) (err error) {
	_, err = r.db.ExecContext(ctx, "UPDATE photos SET caption = $1, updated_at = $2 WHERE id = $3", caption, time.Now().UnixMilli(), id)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateCaption").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *PhotoRepositoryImpl) DeletePhoto(ctx context.Context, id int64) (err error) {
	_, err = r.db.ExecContext(ctx, "DELETE FROM photos WHERE id = $1", id)
	if err != nil {
		log.Error().Err(err).Str("component", "DeletePhoto").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}
