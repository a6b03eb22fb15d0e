package service

import (
	"context"

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

type ClientService interface {
	GetClients(ctx context.Context, filter pkgdto.Filter) (res dto.ClientsResponse, err error)
	GetClient(ctx context.Context, identity *auth.Identity, id int64) (res dto.ClientResponse, err error)
	CreateClient(ctx context.Context, identity *auth.Identity, payload dto.ClientRequest) (res dto.ClientResponse, err error)
	UpdateClient(ctx context.Context, identity *auth.Identity, id int64, payload dto.ClientRequest) (res dto.ClientResponse, err error)
}

type ClientServiceImpl struct {
	clientRepo repository.ClientRepository
	userRepo   repository.UserRepository
	photoRepo  repository.PhotoRepository
	mailer     mailer.Mailer
	resolver   *auth.Resolver
}

func CreateNewClientService(clientRepo repository.ClientRepository, userRepo repository.UserRepository, photoRepo repository.PhotoRepository, mailer mailer.Mailer) ClientService {
	return &ClientServiceImpl{
		clientRepo: clientRepo,
		userRepo:   userRepo,
		photoRepo:  photoRepo,
		mailer:     mailer,
		resolver:   auth.NewResolver(),
	}
}

func (s *ClientServiceImpl) GetClients(ctx context.Context, filter pkgdto.Filter) (res dto.ClientsResponse, err error) {
	clients, err := s.clientRepo.GetClients(ctx, filter)
	if err != nil {
		return
	}

	total, err := s.clientRepo.CountClients(ctx, filter)
	if err != nil {
		return
	}

	res.Clients = make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		res.Clients = append(res.Clients, dto.NewClientResponse(c))
	}
	res.Meta = response.PaginationMetadata{Offset: filter.Offset, Limit: filter.Limit, Total: total}

	return
}

// GetClient hides clients that are not public from everyone but their owner
// and administrators.
func (s *ClientServiceImpl) GetClient(ctx context.Context, identity *auth.Identity, id int64) (res dto.ClientResponse, err error) {
	client, err := s.clientRepo.GetClientByID(ctx, id)
	if err != nil {
		return
	}

	if client.ID == 0 {
		return res, errs.ErrNotFound
	}

	if !s.resolver.Resolve(identity, client.UserID).CanWrite() && !client.IsPublic() {
		return res, errs.ErrNotFound
	}

	client.Photos, err = s.photoRepo.GetPhotosByClientID(ctx, client.ID)
	if err != nil {
		return
	}

	return dto.NewClientResponse(client), nil
}

func (s *ClientServiceImpl) CreateClient(ctx context.Context, identity *auth.Identity, payload dto.ClientRequest) (res dto.ClientResponse, err error) {
	if identity == nil || payload.UserID != identity.ID {
		return res, errs.ErrUnauthorized
	}

	existing, err := s.clientRepo.GetClientByUserID(ctx, payload.UserID)
	if err != nil {
		return
	}

	if existing.ID != 0 {
		return res, errs.ErrClientAlreadyExists
	}

	client := domain.Client{
		UserID:      payload.UserID,
		CompanyName: payload.CompanyName,
		Description: payload.Description,
		WebSite:     payload.WebSite,
		IsPending:   true,
	}
	if payload.IsHidden != nil {
		client.IsHidden = *payload.IsHidden
	}

	client.ID, err = s.clientRepo.AddClient(ctx, client)
	if err != nil {
		return
	}

	return dto.NewClientResponse(client), nil
}

func (s *ClientServiceImpl) UpdateClient(ctx context.Context, identity *auth.Identity, id int64, payload dto.ClientRequest) (res dto.ClientResponse, err error) {
	client, err := s.clientRepo.GetClientByID(ctx, id)
	if err != nil {
		return
	}

	if client.ID == 0 {
		return res, errs.ErrNotFound
	}

	role := s.resolver.Resolve(identity, client.UserID)
	if !role.CanWrite() {
		return res, errs.ErrUnauthorized
	}

	wasApproved := client.IsApproved

	client.CompanyName = payload.CompanyName
	client.Description = payload.Description
	client.WebSite = payload.WebSite
	if payload.IsHidden != nil {
		client.IsHidden = *payload.IsHidden
	}
	if role == auth.RoleAdmin {
		if payload.IsApproved != nil {
			client.IsApproved = *payload.IsApproved
		}
		if payload.IsPending != nil {
			client.IsPending = *payload.IsPending
		}
	}

	if err = s.clientRepo.UpdateClient(ctx, client); err != nil {
		return
	}

	if !wasApproved && client.IsApproved {
		s.notifyApproval(ctx, client)
	}

	return dto.NewClientResponse(client), nil
}

func (s *ClientServiceImpl) notifyApproval(ctx context.Context, client domain.Client) {
	user, err := s.userRepo.GetUserByID(ctx, client.UserID)
	if err != nil || user.ID == 0 {
		log.Ctx(ctx).Error().Err(err).Str("component", "notifyApproval").Int64("client_id", client.ID).Msg("owner not found")
		return
	}

	if err := s.mailer.SendClientApproved(ctx, user, client); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "notifyApproval").Int64("client_id", client.ID).Msg("")
	}
}
