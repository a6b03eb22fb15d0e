package dto

import (
	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/pkg/response"
)

type MembershipRequest struct {
	UserID   int64  `json:"userId"`
	Type     string `json:"type"`
	ExpireAt int64  `json:"expireAt"`
}

func (r MembershipRequest) Validate() []response.ValidationError {
	var v validator
	if r.UserID <= 0 {
		v.add("userId", "required")
	}
	if r.Type != domain.MembershipTypeClient && r.Type != domain.MembershipTypeArtist {
		v.add("type", "oneof")
	}
	if r.ExpireAt <= 0 {
		v.add("expireAt", "required")
	}
	return v.errors
}

type MembershipResponse struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"userId"`
	Type           string `json:"type"`
	ExpireAt       int64  `json:"expireAt"`
	ReminderSentAt *int64 `json:"reminderSentAt"`
	CreatedAt      int64  `json:"createdAt"`
}

func NewMembershipResponse(m domain.Membership) MembershipResponse {
	return MembershipResponse{
		ID:             m.ID,
		UserID:         m.UserID,
		Type:           m.Type,
		ExpireAt:       m.ExpireAt,
		ReminderSentAt: m.ReminderSentAt,
		CreatedAt:      m.CreatedAt,
	}
}
