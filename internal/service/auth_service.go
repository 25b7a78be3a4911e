package service

import (
	"context"

	"homebuddy-auth/internal/domain"
	"homebuddy-auth/internal/dto"
)

type AuthService interface {
	Register(ctx context.Context, r dto.RegisterRequest) (*dto.RegisterResponse, error)
	// Authenticate returns domain.ErrInvalidCredentials for every failure so
	// callers cannot tell a wrong password from an unknown user.
	Authenticate(ctx context.Context, usernameOrEmail, password string) (*domain.User, error)
	Login(ctx context.Context, r dto.LoginRequest) (*dto.LoginResponse, error)

	FindUserByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUserHousehold(ctx context.Context, userID domain.UserID, householdID domain.HouseholdID) error
	GetUsersByHousehold(ctx context.Context, householdID domain.HouseholdID) ([]domain.User, error)
}
