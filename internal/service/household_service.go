package service

import (
	"context"

	"homebuddy-auth/internal/domain"
	"homebuddy-auth/internal/dto"
)

type HouseholdService interface {
	CreateHousehold(ctx context.Context, r dto.CreateHouseholdRequest, createdBy domain.UserID) (*dto.CreateHouseholdResponse, error)
	JoinHousehold(ctx context.Context, r dto.JoinHouseholdRequest, userID domain.UserID) (*dto.JoinHouseholdResponse, error)
	LeaveHousehold(ctx context.Context, userID domain.UserID) error
	DeactivateHousehold(ctx context.Context, householdID domain.HouseholdID, actorID domain.UserID) error

	// ValidateInviteCode is read-only: true iff an active household holds code.
	ValidateInviteCode(ctx context.Context, code string) bool
	GetHouseholdInfo(ctx context.Context, householdID domain.HouseholdID) (*dto.HouseholdInfoResponse, error)

	FindHouseholdByID(ctx context.Context, id domain.HouseholdID) (*domain.Household, error)
	FindHouseholdByInviteCode(ctx context.Context, code string) (*domain.Household, error)
	FindHouseholdByCreator(ctx context.Context, userID domain.UserID) (*domain.Household, error)
	GetHouseholdMemberCount(ctx context.Context, householdID domain.HouseholdID) int64
}
