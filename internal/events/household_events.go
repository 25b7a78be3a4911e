package events

import (
	"time"

	"github.com/google/uuid"
)

type HouseholdCreated struct {
	ID          uuid.UUID `json:"id"`
	HouseholdID int64     `json:"householdId"`
	Name        string    `json:"name"`
	CreatedBy   int64     `json:"createdBy"`
	At          time.Time `json:"at"`
}

func (HouseholdCreated) EventName() string { return "household.created" }

type HouseholdJoined struct {
	ID          uuid.UUID `json:"id"`
	HouseholdID int64     `json:"householdId"`
	UserID      int64     `json:"userId"`
	MemberCount int       `json:"memberCount"`
	At          time.Time `json:"at"`
}

func (HouseholdJoined) EventName() string { return "household.joined" }

type HouseholdLeft struct {
	ID          uuid.UUID `json:"id"`
	HouseholdID int64     `json:"householdId"`
	UserID      int64     `json:"userId"`
	Deactivated bool      `json:"deactivated"`
	At          time.Time `json:"at"`
}

func (HouseholdLeft) EventName() string { return "household.left" }

type HouseholdDeactivated struct {
	ID              uuid.UUID `json:"id"`
	HouseholdID     int64     `json:"householdId"`
	ActorID         int64     `json:"actorId"`
	MembersReleased int64     `json:"membersReleased"`
	At              time.Time `json:"at"`
}

func (HouseholdDeactivated) EventName() string { return "household.deactivated" }
