package events

import (
	"time"

	"github.com/google/uuid"
)

type UserRegistered struct {
	ID          uuid.UUID `json:"id"`
	UserID      int64     `json:"userId"`
	Username    string    `json:"username"`
	HouseholdID *int64    `json:"householdId,omitempty"`
	At          time.Time `json:"at"`
}

func (UserRegistered) EventName() string { return "user.registered" }
