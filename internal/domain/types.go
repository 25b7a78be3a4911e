package domain

type UserID = int64
type HouseholdID = int64
