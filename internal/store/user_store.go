package store

import (
	"context"
	"fmt"

	"homebuddy-auth/internal/domain"

	"gorm.io/gorm"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if err := u.db.WithContext(ctx).Create(usr).Error; err != nil {
		return fmt.Errorf("insert user: %w", translate(err))
	}
	return nil
}

func (u *UserStore) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return u.first(ctx, "id = ?", id)
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return u.first(ctx, "email = ?", email)
}

func (u *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return u.first(ctx, "username = ?", username)
}

func (u *UserStore) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).Where(query, arg).Take(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// ExistsByUsernameOrEmail is the pre-registration collision check. The unique
// indexes remain the actual enforcement point.
func (u *UserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var n int64
	err := u.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ? OR email = ?", username, email).
		Limit(1).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return n > 0, nil
}

// UpdateHouseholdID sets or clears (nil) the user's household link without
// rewriting the rest of the row.
func (u *UserStore) UpdateHouseholdID(ctx context.Context, userID domain.UserID, householdID *domain.HouseholdID) (int64, error) {
	var value any = gorm.Expr("NULL")
	if householdID != nil {
		value = *householdID
	}
	tx := u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		UpdateColumn("household_id", value)
	if tx.Error != nil {
		return 0, fmt.Errorf("update household id: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}

// ClearHousehold detaches every user still linked to householdID.
func (u *UserStore) ClearHousehold(ctx context.Context, householdID domain.HouseholdID) (int64, error) {
	tx := u.db.WithContext(ctx).Model(&domain.User{}).
		Where("household_id = ?", householdID).
		UpdateColumn("household_id", gorm.Expr("NULL"))
	if tx.Error != nil {
		return 0, fmt.Errorf("clear household: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}

func (u *UserStore) UpdatePasswordHash(ctx context.Context, userID domain.UserID, hash string) error {
	err := u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		UpdateColumn("password_hash", hash).Error
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}

func (u *UserStore) ListActiveByHousehold(ctx context.Context, householdID domain.HouseholdID) ([]domain.User, error) {
	var users []domain.User
	err := u.db.WithContext(ctx).
		Where("household_id = ? AND is_active = ?", householdID, true).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list household members: %w", err)
	}
	return users, nil
}
