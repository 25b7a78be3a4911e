package dto

import (
	"time"

	"homebuddy-auth/internal/domain"
)

type HouseholdDto struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	InviteCode  string    `json:"inviteCode"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func HouseholdFromDomain(h *domain.Household, memberCount int) HouseholdDto {
	return HouseholdDto{
		ID:          h.ID,
		Name:        h.Name,
		InviteCode:  h.InviteCode,
		MemberCount: memberCount,
		CreatedAt:   h.CreatedAt.UTC(),
		UpdatedAt:   h.UpdatedAt.UTC(),
	}
}

type CreateHouseholdRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type CreateHouseholdResponse struct {
	Success    bool          `json:"success"`
	Household  *HouseholdDto `json:"household,omitempty"`
	InviteCode string        `json:"inviteCode,omitempty"`
	Error      string        `json:"error,omitempty"`
}

type JoinHouseholdRequest struct {
	InviteCode string `json:"inviteCode" validate:"required,invitecode"`
}

type JoinHouseholdResponse struct {
	Success   bool          `json:"success"`
	Household *HouseholdDto `json:"household,omitempty"`
	Error     string        `json:"error,omitempty"`
}

type DeactivateHouseholdRequest struct {
	HouseholdID int64 `json:"householdId" validate:"required,gt=0"`
}

// StatusResponse answers the lifecycle operations that have no payload.
type StatusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type HouseholdInfoResponse struct {
	Household   HouseholdDto `json:"household"`
	Members     []UserDto    `json:"members"`
	MemberCount int          `json:"memberCount"`
	MaxMembers  int          `json:"maxMembers"`
}

type ValidateInviteResponse struct {
	Valid bool `json:"valid"`
}

type ErrorResponse struct {
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
