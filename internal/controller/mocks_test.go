package controller

import (
	"context"
	"io"

	"github.com/alimikegami/marketplace-service/internal/auth"
	"github.com/alimikegami/marketplace-service/internal/dto"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/utils"
	"github.com/stretchr/testify/mock"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(dto.UserResponse), args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(dto.LoginResponse), args.Error(1)
}

func (m *mockUserService) Impersonate(ctx context.Context, email string) (dto.LoginResponse, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(dto.LoginResponse), args.Error(1)
}

// GetIdentity serves the session middleware; it is not asserted on.
func (m *mockUserService) GetIdentity(_ context.Context, session utils.Session) (*auth.Identity, error) {
	switch session.UserID {
	case adminID:
		return &auth.Identity{ID: adminID, IsAdmin: true}, nil
	case ownerID:
		return &auth.Identity{ID: ownerID}, nil
	}
	return nil, nil
}

func (m *mockUserService) GetUser(ctx context.Context, identity *auth.Identity, id int64) (dto.UserResponse, error) {
	args := m.Called(ctx, identity, id)
	return args.Get(0).(dto.UserResponse), args.Error(1)
}

func (m *mockUserService) GetUsers(ctx context.Context, filter pkgdto.Filter) (dto.UsersResponse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(dto.UsersResponse), args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, identity *auth.Identity, id int64, payload dto.UpdateUserRequest) (dto.UserResponse, error) {
	args := m.Called(ctx, identity, id, payload)
	return args.Get(0).(dto.UserResponse), args.Error(1)
}

func (m *mockUserService) ChangePassword(ctx context.Context, identity *auth.Identity, id int64, payload dto.ChangePasswordRequest) (dto.LoginResponse, error) {
	args := m.Called(ctx, identity, id, payload)
	return args.Get(0).(dto.LoginResponse), args.Error(1)
}

func (m *mockUserService) ResetPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type mockPhotoService struct {
	mock.Mock
}

func (m *mockPhotoService) GetUserPhoto(ctx context.Context, identity *auth.Identity, userID int64) (*string, error) {
	args := m.Called(ctx, identity, userID)
	photo, _ := args.Get(0).(*string)
	return photo, args.Error(1)
}

func (m *mockPhotoService) UploadUserPhoto(ctx context.Context, identity *auth.Identity, userID int64, upload dto.Upload) (string, error) {
	content, _ := io.ReadAll(upload.Content)
	args := m.Called(ctx, identity, userID, upload.ContentType, string(content))
	return args.String(0), args.Error(1)
}

func (m *mockPhotoService) DeleteUserPhoto(ctx context.Context, identity *auth.Identity, userID int64) error {
	return m.Called(ctx, identity, userID).Error(0)
}

func (m *mockPhotoService) GetPhoto(ctx context.Context, id int64) (dto.PhotoResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dto.PhotoResponse), args.Error(1)
}

func (m *mockPhotoService) UpdatePhoto(ctx context.Context, identity *auth.Identity, id int64, payload dto.PhotoRequest) (dto.PhotoResponse, error) {
	args := m.Called(ctx, identity, id, payload)
	return args.Get(0).(dto.PhotoResponse), args.Error(1)
}

func (m *mockPhotoService) UploadClientPhoto(ctx context.Context, identity *auth.Identity, clientID int64, caption *string, upload dto.Upload) (dto.PhotoResponse, error) {
	args := m.Called(ctx, identity, clientID, caption, upload.ContentType)
	return args.Get(0).(dto.PhotoResponse), args.Error(1)
}

func (m *mockPhotoService) DeletePhoto(ctx context.Context, identity *auth.Identity, id int64) error {
	return m.Called(ctx, identity, id).Error(0)
}

type mockClientService struct {
	mock.Mock
}

func (m *mockClientService) GetClients(ctx context.Context, filter pkgdto.Filter) (dto.ClientsResponse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(dto.ClientsResponse), args.Error(1)
}

func (m *mockClientService) GetClient(ctx context.Context, identity *auth.Identity, id int64) (dto.ClientResponse, error) {
	args := m.Called(ctx, identity, id)
	return args.Get(0).(dto.ClientResponse), args.Error(1)
}

func (m *mockClientService) CreateClient(ctx context.Context, identity *auth.Identity, payload dto.ClientRequest) (dto.ClientResponse, error) {
	args := m.Called(ctx, identity, payload)
	return args.Get(0).(dto.ClientResponse), args.Error(1)
}

func (m *mockClientService) UpdateClient(ctx context.Context, identity *auth.Identity, id int64, payload dto.ClientRequest) (dto.ClientResponse, error) {
	args := m.Called(ctx, identity, id, payload)
	return args.Get(0).(dto.ClientResponse), args.Error(1)
}

type mockArtistService struct {
	mock.Mock
}

func (m *mockArtistService) GetArtists(ctx context.Context, identity *auth.Identity, filter pkgdto.Filter) (dto.ArtistsResponse, error) {
	args := m.Called(ctx, identity, filter)
	return args.Get(0).(dto.ArtistsResponse), args.Error(1)
}

func (m *mockArtistService) GetArtist(ctx context.Context, identity *auth.Identity, id int64) (dto.ArtistResponse, error) {
	args := m.Called(ctx, identity, id)
	return args.Get(0).(dto.ArtistResponse), args.Error(1)
}

func (m *mockArtistService) CreateArtist(ctx context.Context, identity *auth.Identity, payload dto.ArtistRequest) (dto.ArtistResponse, error) {
	args := m.Called(ctx, identity, payload)
	return args.Get(0).(dto.ArtistResponse), args.Error(1)
}

func (m *mockArtistService) UpdateArtist(ctx context.Context, identity *auth.Identity, id int64, payload dto.ArtistRequest) (dto.ArtistResponse, error) {
	args := m.Called(ctx, identity, id, payload)
	return args.Get(0).(dto.ArtistResponse), args.Error(1)
}

func (m *mockArtistService) ContactArtist(ctx context.Context, identity *auth.Identity, id int64, payload dto.ContactRequest) error {
	return m.Called(ctx, identity, id, payload).Error(0)
}

type mockMembershipService struct {
	mock.Mock
}

func (m *mockMembershipService) CreateMembership(ctx context.Context, payload dto.MembershipRequest) (dto.MembershipResponse, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(dto.MembershipResponse), args.Error(1)
}

func (m *mockMembershipService) SendExpiryReminders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
