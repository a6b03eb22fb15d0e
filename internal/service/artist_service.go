package service

import (
	"context"
	"fmt"

	"github.com/alimikegami/marketplace-service/internal/auth"
	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/mailer"
	"github.com/alimikegami/marketplace-service/internal/repository"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/rs/zerolog/log"
)

type ArtistService interface {
	GetArtists(ctx context.Context, identity *auth.Identity, filter pkgdto.Filter) (res dto.ArtistsResponse, err error)
	GetArtist(ctx context.Context, identity *auth.Identity, id int64) (res dto.ArtistResponse, err error)
	CreateArtist(ctx context.Context, identity *auth.Identity, payload dto.ArtistRequest) (res dto.ArtistResponse, err error)
	UpdateArtist(ctx context.Context, identity *auth.Identity, id int64, payload dto.ArtistRequest) (res dto.ArtistResponse, err error)
	ContactArtist(ctx context.Context, identity *auth.Identity, id int64, payload dto.ContactRequest) (err error)
}

type ArtistServiceImpl struct {
	repo     repository.ArtistRepository
	userRepo repository.UserRepository
	mailer   mailer.Mailer
	resolver *auth.Resolver
}

func CreateNewArtistService(repo repository.ArtistRepository, userRepo repository.UserRepository, mailer mailer.Mailer) ArtistService {
	return &ArtistServiceImpl{
		repo:     repo,
		userRepo: userRepo,
		mailer:   mailer,
		resolver: auth.NewResolver(),
	}
}

func (s *ArtistServiceImpl) GetArtists(ctx context.Context, identity *auth.Identity, filter pkgdto.Filter) (res dto.ArtistsResponse, err error) {
	artists, err := s.repo.GetArtists(ctx, filter)
	if err != nil {
		return
	}

	total, err := s.repo.CountArtists(ctx, filter)
	if err != nil {
		return
	}

	res.Artists = make([]dto.ArtistResponse, 0, len(artists))
	for _, a := range artists {
		res.Artists = append(res.Artists, dto.NewArtistResponse(a, s.resolver.Resolve(identity, a.UserID)))
	}
	res.Meta = response.PaginationMetadata{Offset: filter.Offset, Limit: filter.Limit, Total: total}

	return
}

func (s *ArtistServiceImpl) GetArtist(ctx context.Context, identity *auth.Identity, id int64) (res dto.ArtistResponse, err error) {
	artist, err := s.repo.GetArtistByID(ctx, id)
	if err != nil {
		return
	}

	if artist.ID == 0 {
		return res, errs.ErrNotFound
	}

	return dto.NewArtistResponse(artist, s.resolver.Resolve(identity, artist.UserID)), nil
}

func (s *ArtistServiceImpl) CreateArtist(ctx context.Context, identity *auth.Identity, payload dto.ArtistRequest) (res dto.ArtistResponse, err error) {
	if identity == nil || payload.UserID != identity.ID {
		return res, errs.ErrUnauthorized
	}

	artist := domain.Artist{
		UserID:    payload.UserID,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		BirthDate: payload.BirthDate,
		Type:      payload.Type,
	}

	artist.ID, err = s.repo.AddArtist(ctx, artist)
	if err != nil {
		return
	}

	return dto.NewArtistResponse(artist, auth.RoleOwner), nil
}

func (s *ArtistServiceImpl) UpdateArtist(ctx context.Context, identity *auth.Identity, id int64, payload dto.ArtistRequest) (res dto.ArtistResponse, err error) {
	artist, err := s.repo.GetArtistByID(ctx, id)
	if err != nil {
		return
	}

	if artist.ID == 0 {
		return res, errs.ErrNotFound
	}

	role := s.resolver.Resolve(identity, artist.UserID)
	if !role.CanWrite() {
		return res, errs.ErrUnauthorized
	}

	artist.FirstName = payload.FirstName
	artist.LastName = payload.LastName
	artist.BirthDate = payload.BirthDate
	artist.Type = payload.Type

	if err = s.repo.UpdateArtist(ctx, artist); err != nil {
		return
	}

	return dto.NewArtistResponse(artist, role), nil
}

// ContactArtist mails a message from the caller to the owner of the artist
// profile, and a copy back to the caller.
func (s *ArtistServiceImpl) ContactArtist(ctx context.Context, identity *auth.Identity, id int64, payload dto.ContactRequest) (err error) {
	if identity == nil {
		return errs.ErrNotLoggedIn
	}

	artist, err := s.repo.GetArtistByID(ctx, id)
	if err != nil {
		return
	}

	if artist.ID == 0 {
		return errs.ErrNotFound
	}

	if artist.UserID == identity.ID {
		return fmt.Errorf("%w: cannot contact your own profile", errs.ErrClient)
	}

	sender, err := s.userRepo.GetUserByID(ctx, identity.ID)
	if err != nil {
		return
	}

	recipient, err := s.userRepo.GetUserByID(ctx, artist.UserID)
	if err != nil {
		return
	}

	if sender.ID == 0 || recipient.ID == 0 || recipient.IsSuspended {
		return errs.ErrNotFound
	}

	contact := domain.ContactMessage{Sender: sender, Recipient: recipient, Artist: artist, Message: payload.Message}
	if err = s.mailer.SendContactMessage(ctx, contact); err != nil {
		return errs.ErrInternalServer
	}

	if err := s.mailer.SendContactCopy(ctx, contact); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ContactArtist").Int64("artist_id", artist.ID).Msg("copy not sent")
	}

	return nil
}
