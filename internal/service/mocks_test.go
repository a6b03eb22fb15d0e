package service

import (
	"context"

	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/internal/dto"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/stretchr/testify/mock"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepository) GetSaltByUserID(ctx context.Context, userID int64) (*domain.Salt, error) {
	args := m.Called(ctx, userID)
	salt, _ := args.Get(0).(*domain.Salt)
	return salt, args.Error(1)
}

func (m *mockUserRepository) AddUser(ctx context.Context, data domain.User, salt string) (int64, error) {
	args := m.Called(ctx, data, salt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, data domain.User) error {
	return m.Called(ctx, data).Error(0)
}

func (m *mockUserRepository) UpdatePhoto(ctx context.Context, id int64, photo *string) error {
	return m.Called(ctx, id, photo).Error(0)
}

func (m *mockUserRepository) UpdateCredential(ctx context.Context, userID int64, passwordHash, salt string) error {
	return m.Called(ctx, userID, passwordHash, salt).Error(0)
}

func (m *mockUserRepository) CountUsersByEmail(ctx context.Context, email string, excludeID int64) (int64, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepository) GetUsers(ctx context.Context, filter pkgdto.Filter) ([]domain.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepository) CountUsers(ctx context.Context, filter pkgdto.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) GetClientByID(ctx context.Context, id int64) (domain.Client, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Client), args.Error(1)
}

func (m *mockClientRepository) GetClientByUserID(ctx context.Context, userID int64) (domain.Client, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Client), args.Error(1)
}

func (m *mockClientRepository) GetClients(ctx context.Context, filter pkgdto.Filter) ([]domain.Client, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *mockClientRepository) CountClients(ctx context.Context, filter pkgdto.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClientRepository) AddClient(ctx context.Context, data domain.Client) (int64, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClientRepository) UpdateClient(ctx context.Context, data domain.Client) error {
	return m.Called(ctx, data).Error(0)
}

type mockArtistRepository struct {
	mock.Mock
}

func (m *mockArtistRepository) GetArtistByID(ctx context.Context, id int64) (domain.Artist, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Artist), args.Error(1)
}

func (m *mockArtistRepository) GetArtists(ctx context.Context, filter pkgdto.Filter) ([]domain.Artist, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Artist), args.Error(1)
}

func (m *mockArtistRepository) CountArtists(ctx context.Context, filter pkgdto.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockArtistRepository) AddArtist(ctx context.Context, data domain.Artist) (int64, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockArtistRepository) UpdateArtist(ctx context.Context, data domain.Artist) error {
	return m.Called(ctx, data).Error(0)
}

type mockPhotoRepository struct {
	mock.Mock
}

func (m *mockPhotoRepository) GetPhotoByID(ctx context.Context, id int64) (domain.Photo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Photo), args.Error(1)
}

func (m *mockPhotoRepository) GetPhotosByClientID(ctx context.Context, clientID int64) ([]domain.Photo, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *mockPhotoRepository) AddPhoto(ctx context.Context, data domain.Photo) (int64, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPhotoRepository) UpdateCaption(ctx context.Context, id int64, caption *string) error {
	return m.Called(ctx, id, caption).Error(0)
}

func (m *mockPhotoRepository) DeletePhoto(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockMembershipRepository struct {
	mock.Mock
}

func (m *mockMembershipRepository) AddMembership(ctx context.Context, data domain.Membership) (int64, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMembershipRepository) GetExpiringMemberships(ctx context.Context, from, to int64) ([]domain.MembershipReminder, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.MembershipReminder), args.Error(1)
}

func (m *mockMembershipRepository) MarkReminderSent(ctx context.Context, id int64, at int64) error {
	return m.Called(ctx, id, at).Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendRegistration(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, user domain.User, password string) error {
	return m.Called(ctx, user, password).Error(0)
}

func (m *mockMailer) SendClientApproved(ctx context.Context, user domain.User, client domain.Client) error {
	return m.Called(ctx, user, client).Error(0)
}

func (m *mockMailer) SendMembershipReminder(ctx context.Context, reminder domain.MembershipReminder) error {
	return m.Called(ctx, reminder).Error(0)
}

func (m *mockMailer) SendMembershipConfirmation(ctx context.Context, user domain.User, membership domain.Membership, client domain.Client) error {
	return m.Called(ctx, user, membership, client).Error(0)
}

func (m *mockMailer) SendContactMessage(ctx context.Context, contact domain.ContactMessage) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *mockMailer) SendContactCopy(ctx context.Context, contact domain.ContactMessage) error {
	return m.Called(ctx, contact).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	return m.Called(ctx, key, msg).Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
