package service

import (
	"context"
	"strconv"

	"homebuddy-auth/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

type TokenService interface {
	Issue(ctx context.Context, userID domain.UserID, username, email, displayName string, householdID *domain.HouseholdID) (string, error)
	Parse(token string) (*Claims, error)
}

// Claims mirrors the payload written by the token issuer.
type Claims struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	HouseholdID string   `json:"householdId"`
	Roles       []string `json:"roles"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (domain.UserID, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}
