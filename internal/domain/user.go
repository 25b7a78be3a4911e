package domain

import "time"

type User struct {
	ID           UserID       `gorm:"primaryKey;autoIncrement" db:"id" json:"id"`
	Username     string       `gorm:"type:varchar(50);not null;uniqueIndex:ux_users_username" db:"username" json:"username"`
	Email        string       `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email" db:"email" json:"email"`
	PasswordHash string       `gorm:"type:text;not null" db:"password_hash" json:"-"`
	DisplayName  string       `gorm:"type:varchar(100);not null" db:"display_name" json:"displayName"`
	HouseholdID  *HouseholdID `gorm:"index:ix_users_household_active,priority:1" db:"household_id" json:"householdId"`
	IsActive     bool         `gorm:"not null;default:true;index:ix_users_household_active,priority:2" db:"is_active" json:"isActive"`
	CreatedAt    time.Time    `gorm:"not null" db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"not null" db:"updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// InHousehold reports whether the user currently belongs to a household.
func (u *User) InHousehold() bool { return u.HouseholdID != nil }
