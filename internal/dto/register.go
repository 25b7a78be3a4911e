package dto

import "strings"

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"displayName" validate:"required,min=1,max=100"`
	InviteCode  string `json:"inviteCode,omitempty" validate:"omitempty,invitecode"`
}

// Normalize trims the optional invite code so a blank one means "no code".
func (r *RegisterRequest) Normalize() {
	r.InviteCode = strings.TrimSpace(r.InviteCode)
}

type RegisterResponse struct {
	Success        bool          `json:"success"`
	User           *UserDto      `json:"user,omitempty"`
	Household      *HouseholdDto `json:"household,omitempty"`
	NeedsHousehold bool          `json:"needsHousehold"`
	Error          string        `json:"error,omitempty"`
}
