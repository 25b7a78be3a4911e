package store

import (
	"context"
	"fmt"

	"homebuddy-auth/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HouseholdStore struct{ db *gorm.DB }

func (s *Store) Households() *HouseholdStore { return &HouseholdStore{db: s.DB} }

func (h *HouseholdStore) Create(ctx context.Context, hh *domain.Household) error {
	if hh.MaxMembers == 0 {
		hh.MaxMembers = domain.DefaultMaxMembers
	}
	if err := h.db.WithContext(ctx).Create(hh).Error; err != nil {
		return fmt.Errorf("insert household: %w", translate(err))
	}
	return nil
}

func (h *HouseholdStore) GetByID(ctx context.Context, id domain.HouseholdID) (*domain.Household, error) {
	return h.take(h.db.WithContext(ctx).Where("id = ?", id))
}

// GetByIDForUpdate locks the household row for the rest of the transaction so
// concurrent joins are counted one after another. SQLite has no row locks and
// serialises writers anyway, so the clause is only added for postgres.
func (h *HouseholdStore) GetByIDForUpdate(ctx context.Context, id domain.HouseholdID) (*domain.Household, error) {
	q := h.db.WithContext(ctx).Where("id = ?", id)
	if h.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return h.take(q)
}

func (h *HouseholdStore) GetByInviteCode(ctx context.Context, code string) (*domain.Household, error) {
	return h.take(h.db.WithContext(ctx).Where("invite_code = ?", code))
}

// GetByCreatedBy returns the most recent household created by userID.
func (h *HouseholdStore) GetByCreatedBy(ctx context.Context, userID domain.UserID) (*domain.Household, error) {
	return h.take(h.db.WithContext(ctx).Where("created_by = ?", userID).Order("id DESC"))
}

func (h *HouseholdStore) take(q *gorm.DB) (*domain.Household, error) {
	var out domain.Household
	if err := q.Take(&out).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// CountActiveMembers derives membership from users.household_id; there is no
// stored counter to keep in sync.
func (h *HouseholdStore) CountActiveMembers(ctx context.Context, householdID domain.HouseholdID) (int64, error) {
	var n int64
	err := h.db.WithContext(ctx).Model(&domain.User{}).
		Where("household_id = ? AND is_active = ?", householdID, true).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count active members: %w", err)
	}
	return n, nil
}

func (h *HouseholdStore) SetActive(ctx context.Context, id domain.HouseholdID, active bool) error {
	err := h.db.WithContext(ctx).Model(&domain.Household{}).
		Where("id = ?", id).
		Update("is_active", active).Error
	if err != nil {
		return fmt.Errorf("set household active: %w", err)
	}
	return nil
}
