package service

import (
	"context"

	"github.com/alimikegami/marketplace-service/config"
	"github.com/alimikegami/marketplace-service/internal/auth"
	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/mailer"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/marketplace-service/internal/repository"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/alimikegami/marketplace-service/pkg/utils"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

const (
	defaultLocale       = "en"
	resetPasswordLength = 10
)

type UserService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (res dto.UserResponse, err error)
	Login(ctx context.Context, payload dto.LoginRequest) (res dto.LoginResponse, err error)
	Impersonate(ctx context.Context, email string) (res dto.LoginResponse, err error)
	GetIdentity(ctx context.Context, session utils.Session) (identity *auth.Identity, err error)
	GetUser(ctx context.Context, identity *auth.Identity, id int64) (res dto.UserResponse, err error)
	GetUsers(ctx context.Context, filter pkgdto.Filter) (res dto.UsersResponse, err error)
	UpdateUser(ctx context.Context, identity *auth.Identity, id int64, payload dto.UpdateUserRequest) (res dto.UserResponse, err error)
	ChangePassword(ctx context.Context, identity *auth.Identity, id int64, payload dto.ChangePasswordRequest) (res dto.LoginResponse, err error)
	ResetPassword(ctx context.Context, email string) (err error)
}

type UserServiceImpl struct {
	repo      repository.UserRepository
	config    config.Config
	hasher    *auth.Hasher
	resolver  *auth.Resolver
	mailer    mailer.Mailer
	publisher kafka.Publisher
}

// CreateNewUserService builds the user service. publisher may be nil when no
// broker is configured.
func CreateNewUserService(repo repository.UserRepository, config config.Config, hasher *auth.Hasher, mailer mailer.Mailer, publisher kafka.Publisher) UserService {
	return &UserServiceImpl{
		repo:      repo,
		config:    config,
		hasher:    hasher,
		resolver:  auth.NewResolver(),
		mailer:    mailer,
		publisher: publisher,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, payload dto.RegisterRequest) (res dto.UserResponse, err error) {
	existing, err := s.repo.GetUserByEmail(ctx, payload.Email)
	if err != nil {
		return
	}

	if existing.ID != 0 {
		return res, errs.ErrEmailAlreadyUsed
	}

	cred, err := s.hasher.Generate(payload.Password)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Register").Msg("")
		return res, errs.ErrInternalServer
	}

	locale := payload.Locale
	if locale == "" {
		locale = defaultLocale
	}

	user := domain.User{
		ExternalID:   ulid.Make().String(),
		Email:        payload.Email,
		PasswordHash: cred.Key,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		BirthDate:    payload.BirthDate,
		Phone:        payload.Phone,
		Locale:       locale,
	}

	user.ID, err = s.repo.AddUser(ctx, user, cred.Salt)
	if err != nil {
		return
	}

	if err := s.mailer.SendRegistration(ctx, user); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Register").Int64("user_id", user.ID).Msg("welcome email not sent")
	}

	publishUserEvent(ctx, s.publisher, dto.EventUserCreated, user)

	return dto.NewUserResponse(user, auth.RoleOwner), nil
}

func (s *UserServiceImpl) Login(ctx context.Context, payload dto.LoginRequest) (res dto.LoginResponse, err error) {
	user, err := s.repo.GetUserByEmail(ctx, payload.Email)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return res, errs.ErrInvalidCredentialsEmail
	}

	if user.IsSuspended {
		return res, errs.ErrUserSuspended
	}

	salt, err := s.repo.GetSaltByUserID(ctx, user.ID)
	if err != nil {
		return
	}

	cred := user.Credential(salt)
	if !s.hasher.Verify(cred, payload.Password) {
		log.Ctx(ctx).Info().Str("component", "Login").Int64("user_id", user.ID).Msg("incorrect password")
		return res, errs.ErrInvalidCredentialsEmail
	}

	if _, legacy := cred.(auth.LegacyCredential); legacy {
		if hash, ok := s.upgradeCredential(ctx, user.ID, payload.Password); ok {
			user.PasswordHash = hash
		}
	}

	return s.createSession(user)
}

// upgradeCredential moves a legacy account to the salted scheme once its
// password is known to be correct.
func (s *UserServiceImpl) upgradeCredential(ctx context.Context, userID int64, password string) (hash string, ok bool) {
	hash, err := s.replaceCredential(ctx, userID, password)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "upgradeCredential").Int64("user_id", userID).Msg("")
		return "", false
	}

	return hash, true
}

func (s *UserServiceImpl) Impersonate(ctx context.Context, email string) (res dto.LoginResponse, err error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return res, errs.ErrAccountNotFound
	}

	return s.createSession(user)
}

func (s *UserServiceImpl) createSession(user domain.User) (res dto.LoginResponse, err error) {
	session := utils.Session{UserID: user.ID, CredentialVersion: user.CredentialVersion()}
	token, err := utils.CreateSessionToken(session, s.config.SessionConfig.Secret, s.config.SessionConfig.TTL)
	if err != nil {
		log.Error().Err(err).Str("component", "createSession").Msg("")
		return res, errs.ErrInternalServer
	}

	res.Token = token
	res.User = dto.NewUserResponse(user, auth.RoleOwner)

	return
}

// GetIdentity loads the session user. Unknown and suspended users, and
// sessions issued before the last password change, yield a nil identity.
func (s *UserServiceImpl) GetIdentity(ctx context.Context, session utils.Session) (identity *auth.Identity, err error) {
	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if user.ID == 0 || user.IsSuspended {
		return nil, nil
	}

	if session.CredentialVersion != user.CredentialVersion() {
		log.Ctx(ctx).Info().Str("component", "GetIdentity").Int64("user_id", user.ID).Msg("session revoked by credential change")
		return nil, nil
	}

	return user.Identity(), nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, identity *auth.Identity, id int64) (res dto.UserResponse, err error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return res, errs.ErrNotFound
	}

	return dto.NewUserResponse(user, s.resolver.Resolve(identity, user.ID)), nil
}

func (s *UserServiceImpl) GetUsers(ctx context.Context, filter pkgdto.Filter) (res dto.UsersResponse, err error) {
	users, err := s.repo.GetUsers(ctx, filter)
	if err != nil {
		return
	}

	total, err := s.repo.CountUsers(ctx, filter)
	if err != nil {
		return
	}

	res.Users = make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		res.Users = append(res.Users, dto.NewUserResponse(user, auth.RoleAdmin))
	}
	res.Meta = response.PaginationMetadata{Offset: filter.Offset, Limit: filter.Limit, Total: total}

	return
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, identity *auth.Identity, id int64, payload dto.UpdateUserRequest) (res dto.UserResponse, err error) {
	role := s.resolver.Resolve(identity, id)
	if !role.CanWrite() {
		return res, errs.ErrUnauthorized
	}

	count, err := s.repo.CountUsersByEmail(ctx, payload.Email, id)
	if err != nil {
		return
	}

	if count > 0 {
		return res, errs.ErrEmailAlreadyUsed
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return res, errs.ErrNotFound
	}

	user.Email = payload.Email
	if payload.Phone != nil {
		user.Phone = payload.Phone
	}
	if payload.Locale != nil {
		user.Locale = *payload.Locale
	}

	switch role {
	case auth.RoleAdmin:
		if payload.FirstName != nil {
			user.FirstName = *payload.FirstName
		}
		if payload.LastName != nil {
			user.LastName = *payload.LastName
		}
		if payload.BirthDate != nil {
			user.BirthDate = payload.BirthDate
		}
		if payload.IsSuspended != nil {
			user.IsSuspended = *payload.IsSuspended
		}
	case auth.RoleOwner:
		// Accounts created before birth dates were collected may set it once.
		if user.BirthDate == nil && payload.BirthDate != nil {
			user.BirthDate = payload.BirthDate
		}
	}

	if err = s.repo.UpdateUser(ctx, user); err != nil {
		return
	}

	publishUserEvent(ctx, s.publisher, dto.EventUserUpdated, user)

	return dto.NewUserResponse(user, role), nil
}

// ChangePassword replaces the password of the caller. Other sessions of the
// user are revoked and a fresh one is returned.
func (s *UserServiceImpl) ChangePassword(ctx context.Context, identity *auth.Identity, id int64, payload dto.ChangePasswordRequest) (res dto.LoginResponse, err error) {
	if identity == nil || identity.ID != id {
		return res, errs.ErrUnauthorized
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return res, errs.ErrNotFound
	}

	user.PasswordHash, err = s.replaceCredential(ctx, user.ID, payload.NewPassword)
	if err != nil {
		return
	}

	return s.createSession(user)
}

func (s *UserServiceImpl) ResetPassword(ctx context.Context, email string) (err error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return errs.ErrAccountNotFound
	}

	password, err := s.hasher.GeneratePassword(resetPasswordLength)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ResetPassword").Msg("")
		return errs.ErrInternalServer
	}

	if _, err = s.replaceCredential(ctx, user.ID, password); err != nil {
		return
	}

	if err = s.mailer.SendPasswordReset(ctx, user, password); err != nil {
		return errs.ErrInternalServer
	}

	return nil
}

// replaceCredential stores a fresh salted credential for password and returns
// the new hash.
func (s *UserServiceImpl) replaceCredential(ctx context.Context, userID int64, password string) (string, error) {
	cred, err := s.hasher.Generate(password)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "replaceCredential").Msg("")
		return "", errs.ErrInternalServer
	}

	if err = s.repo.UpdateCredential(ctx, userID, cred.Key, cred.Salt); err != nil {
		return "", err
	}

	return cred.Key, nil
}
