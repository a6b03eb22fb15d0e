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

const artistColumns = "a.id, a.user_id, a.first_name, a.last_name, a.birth_date, a.type, a.created_at, a.updated_at"

const artistSearch = `($1 = '' OR COALESCE(a.first_name, '') ILIKE '%' || $1 || '%' ESCAPE '\'
	OR COALESCE(a.last_name, '') ILIKE '%' || $1 || '%' ESCAPE '\' OR u.email ILIKE '%' || $1 || '%' ESCAPE '\')`

type ArtistRepository interface {
	GetArtistByID(ctx context.Context, id int64) (res domain.Artist, err error)
	GetArtists(ctx context.Context, filter pkgdto.Filter) (data []domain.Artist, err error)
	CountArtists(ctx context.Context, filter pkgdto.Filter) (count int64, err error)
	AddArtist(ctx context.Context, data domain.Artist) (id int64, err error)
	UpdateArtist(ctx context.Context, data domain.Artist) (err error)
}

type ArtistRepositoryImpl struct {
	db *sqlx.DB
}

func CreateNewArtistRepository(db *sqlx.DB) ArtistRepository {
	return &ArtistRepositoryImpl{db: db}
}

func (r *ArtistRepositoryImpl) GetArtistByID(ctx context.Context, id int64) (res domain.Artist, err error) {
	err = r.db.GetContext(ctx, &res, "SELECT "+artistColumns+" FROM artists a WHERE a.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, nil
		}
		log.Error().Err(err).Str("component", "GetArtistByID").Msg("")
		return res, errs.ErrInternalServer
	}

	return
}

func (r *ArtistRepositoryImpl) GetArtists(ctx context.Context, filter pkgdto.Filter) (data []domain.Artist, err error) {
	query := "SELECT " + artistColumns + " FROM artists a JOIN users u ON u.id = a.user_id WHERE " + artistSearch +
		" ORDER BY a.created_at DESC LIMIT $2 OFFSET $3"

	err = r.db.SelectContext(ctx, &data, query, escapeLike(filter.SearchTerm), filter.Limit, filter.Offset)
	if err != nil {
		log.Error().Err(err).Str("component", "GetArtists").Msg("")
		return nil, errs.ErrInternalServer
	}

	return data, nil
}

func (r *ArtistRepositoryImpl) CountArtists(ctx context.Context, filter pkgdto.Filter) (count int64, err error) {
	err = r.db.GetContext(ctx, &count, "SELECT COUNT(a.id) FROM artists a JOIN users u ON u.id = a.user_id WHERE "+artistSearch, escapeLike(filter.SearchTerm))
	if err != nil {
		log.Error().Err(err).Str("component", "CountArtists").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *ArtistRepositoryImpl) AddArtist(ctx context.Context, data domain.Artist) (id int64, err error) {
	timestamp := time.Now().UnixMilli()

	err = r.db.QueryRowxContext(ctx,
		`INSERT INTO artists(user_id, first_name, last_name, birth_date, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`,
		data.UserID, data.FirstName, data.LastName, data.BirthDate, data.Type, timestamp,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, errs.ErrArtistAlreadyExists
		}
		log.Error().Err(err).Str("component", "AddArtist").Msg("")
		return 0, errs.ErrInternalServer
	}

	return id, nil
}

func (r *ArtistRepositoryImpl) UpdateArtist(ctx context.Context, data domain.Artist) (err error) {
	data.UpdatedAt = time.Now().UnixMilli()

	_, err = r.db.NamedExecContext(ctx,
		"UPDATE artists SET first_name=:first_name, last_name=:last_name, birth_date=:birth_date, type=:type, updated_at=:updated_at WHERE id=:id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateArtist").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}
