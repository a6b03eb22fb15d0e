package service

import (
	"context"
	"time"

	"github.com/alimikegami/marketplace-service/config"
	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/mailer"
	"github.com/alimikegami/marketplace-service/internal/repository"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

type MembershipService interface {
	CreateMembership(ctx context.Context, payload dto.MembershipRequest) (res dto.MembershipResponse, err error)
	SendExpiryReminders(ctx context.Context) (sent int, err error)
}

type MembershipServiceImpl struct {
	repo       repository.MembershipRepository
	userRepo   repository.UserRepository
	clientRepo repository.ClientRepository
	mailer     mailer.Mailer
	window     time.Duration
	now        func() time.Time
}

func CreateNewMembershipService(repo repository.MembershipRepository, userRepo repository.UserRepository, clientRepo repository.ClientRepository, mailer mailer.Mailer, config config.Config) MembershipService {
	return &MembershipServiceImpl{
		repo:       repo,
		userRepo:   userRepo,
		clientRepo: clientRepo,
		mailer:     mailer,
		window:     config.ReminderConfig.Window,
		now:        time.Now,
	}
}

func (s *MembershipServiceImpl) CreateMembership(ctx context.Context, payload dto.MembershipRequest) (res dto.MembershipResponse, err error) {
	user, err := s.userRepo.GetUserByID(ctx, payload.UserID)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return res, errs.ErrNotFound
	}

	membership := domain.Membership{
		UserID:    payload.UserID,
		Type:      payload.Type,
		ExpireAt:  payload.ExpireAt,
		CreatedAt: s.now().UnixMilli(),
	}

	membership.ID, err = s.repo.AddMembership(ctx, membership)
	if err != nil {
		return
	}

	s.sendConfirmation(ctx, user, membership)

	return dto.NewMembershipResponse(membership), nil
}

// sendConfirmation mails the new member. Failures are logged only, the
// membership is already stored.
func (s *MembershipServiceImpl) sendConfirmation(ctx context.Context, user domain.User, membership domain.Membership) {
	var client domain.Client
	if membership.Type == domain.MembershipTypeClient {
		var err error
		if client, err = s.clientRepo.GetClientByUserID(ctx, user.ID); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "CreateMembership").Int64("user_id", user.ID).Msg("")
		}
	}

	if err := s.mailer.SendMembershipConfirmation(ctx, user, membership, client); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CreateMembership").Int64("membership_id", membership.ID).Msg("confirmation email not sent")
	}
}

// SendExpiryReminders emails the holders of memberships expiring within the
// reminder window. A membership whose email failed is retried on the next run.
func (s *MembershipServiceImpl) SendExpiryReminders(ctx context.Context) (sent int, err error) {
	now := s.now()

	reminders, err := s.repo.GetExpiringMemberships(ctx, now.UnixMilli(), now.Add(s.window).UnixMilli())
	if err != nil {
		return 0, err
	}

	for _, reminder := range reminders {
		if err := s.mailer.SendMembershipReminder(ctx, reminder); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "SendExpiryReminders").Int64("membership_id", reminder.MembershipID).Msg("")
			continue
		}

		if err := s.repo.MarkReminderSent(ctx, reminder.MembershipID, s.now().UnixMilli()); err != nil {
			return sent, err
		}
		sent++
	}

	return sent, nil
}
