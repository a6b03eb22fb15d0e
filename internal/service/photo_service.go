package service

import (
	"context"
	"errors"
	"io"

	"github.com/alimikegami/marketplace-service/internal/auth"
	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/imaging"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/storage"
	"github.com/alimikegami/marketplace-service/internal/repository"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

const MaxUploadSize = 5_000_000

type PhotoService interface {
	GetUserPhoto(ctx context.Context, identity *auth.Identity, userID int64) (photo *string, err error)
	UploadUserPhoto(ctx context.Context, identity *auth.Identity, userID int64, upload dto.Upload) (photo string, err error)
	DeleteUserPhoto(ctx context.Context, identity *auth.Identity, userID int64) (err error)
	GetPhoto(ctx context.Context, id int64) (res dto.PhotoResponse, err error)
	UpdatePhoto(ctx context.Context, identity *auth.Identity, id int64, payload dto.PhotoRequest) (res dto.PhotoResponse, err error)
	UploadClientPhoto(ctx context.Context, identity *auth.Identity, clientID int64, caption *string, upload dto.Upload) (res dto.PhotoResponse, err error)
	DeletePhoto(ctx context.Context, identity *auth.Identity, id int64) (err error)
}

type PhotoServiceImpl struct {
	userRepo   repository.UserRepository
	clientRepo repository.ClientRepository
	photoRepo  repository.PhotoRepository
	storage    storage.ObjectStorage
	resolver   *auth.Resolver
}

func CreateNewPhotoService(userRepo repository.UserRepository, clientRepo repository.ClientRepository, photoRepo repository.PhotoRepository, storage storage.ObjectStorage) PhotoService {
	return &PhotoServiceImpl{
		userRepo:   userRepo,
		clientRepo: clientRepo,
		photoRepo:  photoRepo,
		storage:    storage,
		resolver:   auth.NewResolver(),
	}
}

func (s *PhotoServiceImpl) GetUserPhoto(ctx context.Context, identity *auth.Identity, userID int64) (photo *string, err error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return nil, errs.ErrNotFound
	}

	return dto.NewUserResponse(user, s.resolver.Resolve(identity, user.ID)).Photo, nil
}

// UploadUserPhoto resizes the upload, replaces the previous photo object and
// records the new file name on the user.
func (s *PhotoServiceImpl) UploadUserPhoto(ctx context.Context, identity *auth.Identity, userID int64, upload dto.Upload) (photo string, err error) {
	if !s.resolver.Resolve(identity, userID).CanWrite() {
		return "", errs.ErrUnauthorized
	}

	data, contentType, err := prepareImage(upload, imaging.UserPhotoBox)
	if err != nil {
		return
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return "", errs.ErrNotFound
	}

	if user.Photo != nil {
		if err = s.storage.Delete(ctx, domain.UserPhotoKey(*user.Photo)); err != nil {
			return "", errs.ErrInternalServer
		}
		if err = s.userRepo.UpdatePhoto(ctx, user.ID, nil); err != nil {
			return
		}
	}

	fileName := newFileName(upload.ContentType)
	if err = s.storage.Upload(ctx, domain.UserPhotoKey(fileName), data, contentType); err != nil {
		return "", errs.ErrInternalServer
	}

	if err = s.userRepo.UpdatePhoto(ctx, user.ID, &fileName); err != nil {
		return
	}

	return fileName, nil
}

func (s *PhotoServiceImpl) DeleteUserPhoto(ctx context.Context, identity *auth.Identity, userID int64) (err error) {
	if !s.resolver.Resolve(identity, userID).CanWrite() {
		return errs.ErrUnauthorized
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return errs.ErrNotFound
	}

	if user.Photo == nil {
		return nil
	}

	if err = s.storage.Delete(ctx, domain.UserPhotoKey(*user.Photo)); err != nil {
		return errs.ErrInternalServer
	}

	return s.userRepo.UpdatePhoto(ctx, user.ID, nil)
}

func (s *PhotoServiceImpl) GetPhoto(ctx context.Context, id int64) (res dto.PhotoResponse, err error) {
	photo, err := s.photoRepo.GetPhotoByID(ctx, id)
	if err != nil {
		return
	}

	if photo.ID == 0 {
		return res, errs.ErrNotFound
	}

	return dto.NewPhotoResponse(photo), nil
}

func (s *PhotoServiceImpl) UpdatePhoto(ctx context.Context, identity *auth.Identity, id int64, payload dto.PhotoRequest) (res dto.PhotoResponse, err error) {
	photo, err := s.writablePhoto(ctx, identity, id)
	if err != nil {
		return
	}

	if err = s.photoRepo.UpdateCaption(ctx, photo.ID, payload.Caption); err != nil {
		return
	}

	photo.Caption = payload.Caption

	return dto.NewPhotoResponse(photo), nil
}

// UploadClientPhoto adds a photo to the gallery of a client. Ownership is
// checked before the upload is decoded.
func (s *PhotoServiceImpl) UploadClientPhoto(ctx context.Context, identity *auth.Identity, clientID int64, caption *string, upload dto.Upload) (res dto.PhotoResponse, err error) {
	client, err := s.clientRepo.GetClientByID(ctx, clientID)
	if err != nil {
		return
	}

	if client.ID == 0 {
		return res, errs.ErrNotFound
	}

	if !s.resolver.Resolve(identity, client.UserID).CanWrite() {
		return res, errs.ErrUnauthorized
	}

	data, contentType, err := prepareImage(upload, imaging.ClientPhotoBox)
	if err != nil {
		return
	}

	photo := domain.Photo{ClientID: client.ID, FileName: newFileName(upload.ContentType), Caption: caption}
	if err = s.storage.Upload(ctx, photo.Key(), data, contentType); err != nil {
		return res, errs.ErrInternalServer
	}

	photo.ID, err = s.photoRepo.AddPhoto(ctx, photo)
	if err != nil {
		return
	}

	return dto.NewPhotoResponse(photo), nil
}

func (s *PhotoServiceImpl) DeletePhoto(ctx context.Context, identity *auth.Identity, id int64) (err error) {
	photo, err := s.writablePhoto(ctx, identity, id)
	if err != nil {
		return
	}

	if err = s.storage.Delete(ctx, photo.Key()); err != nil {
		return errs.ErrInternalServer
	}

	return s.photoRepo.DeletePhoto(ctx, photo.ID)
}

// writablePhoto loads the photo and checks the caller may modify the client
// gallery it belongs to.
func (s *PhotoServiceImpl) writablePhoto(ctx context.Context, identity *auth.Identity, id int64) (photo domain.Photo, err error) {
	photo, err = s.photoRepo.GetPhotoByID(ctx, id)
	if err != nil {
		return
	}

	if photo.ID == 0 {
		return photo, errs.ErrNotFound
	}

	client, err := s.clientRepo.GetClientByID(ctx, photo.ClientID)
	if err != nil {
		return
	}

	if !s.resolver.Resolve(identity, client.UserID).CanWrite() {
		return photo, errs.ErrUnauthorized
	}

	return photo, nil
}

func prepareImage(upload dto.Upload, box imaging.Box) ([]byte, string, error) {
	if !imaging.IsSupported(upload.ContentType) {
		return nil, "", errs.ErrUnsupportedMediaType
	}

	if upload.Size > MaxUploadSize {
		return nil, "", errs.ErrFileTooBig
	}

	raw, err := io.ReadAll(io.LimitReader(upload.Content, MaxUploadSize+1))
	if err != nil {
		log.Error().Err(err).Str("component", "prepareImage").Msg("")
		return nil, "", errs.ErrInternalServer
	}

	if len(raw) > MaxUploadSize {
		return nil, "", errs.ErrFileTooBig
	}

	data, contentType, err := imaging.Resize(raw, upload.ContentType, box)
	if errors.Is(err, imaging.ErrTooManyPixels) {
		return nil, "", errs.ErrFileTooBig
	}
	if err != nil {
		log.Info().Err(err).Str("component", "prepareImage").Msg("unreadable image")
		return nil, "", errs.ErrUnsupportedMediaType
	}

	return data, contentType, nil
}

func newFileName(contentType string) string {
	return ulid.Make().String() + imaging.Extensions[contentType]
}
