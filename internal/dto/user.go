package dto

import (
	"time"

	"homebuddy-auth/internal/domain"
)

// UserDto is the public view of a user. The password hash never leaves the
// service.
type UserDto struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	HouseholdID *int64    `json:"householdId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func UserFromDomain(u *domain.User) UserDto {
	return UserDto{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		HouseholdID: u.HouseholdID,
		CreatedAt:   u.CreatedAt.UTC(),
		UpdatedAt:   u.UpdatedAt.UTC(),
	}
}

func UsersFromDomain(users []domain.User) []UserDto {
	out := make([]UserDto, 0, len(users))
	for i := range users {
		out = append(out, UserFromDomain(&users[i]))
	}
	return out
}
