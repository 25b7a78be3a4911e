package domain

import "time"

const DefaultMaxMembers = 10

type Household struct {
	ID         HouseholdID `gorm:"primaryKey;autoIncrement" db:"id" json:"id"`
	Name       string      `gorm:"type:varchar(100);not null" db:"name" json:"name"`
	InviteCode string      `gorm:"type:varchar(9);not null;uniqueIndex:ux_households_invite_code" db:"invite_code" json:"inviteCode"`
	CreatedBy  UserID      `gorm:"not null;index" db:"created_by" json:"createdBy"`
	IsActive   bool        `gorm:"not null;default:true" db:"is_active" json:"isActive"`
	MaxMembers int         `gorm:"not null;default:10" db:"max_members" json:"maxMembers"`
	CreatedAt  time.Time   `gorm:"not null" db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time   `gorm:"not null" db:"updated_at" json:"updatedAt"`
}

func (Household) TableName() string { return "households" }
