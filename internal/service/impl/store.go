package impl

import (
	"context"
	"errors"

	"homebuddy-auth/internal/domain"
	"homebuddy-auth/internal/store"
)

type dataStore interface {
	WithTx(ctx context.Context, fn func(tx storeTx) error) error
	Users() userStore
	Households() householdStore
}

type storeTx interface {
	Users() userStore
	Households() householdStore
}

type userStore interface {
	Create(ctx context.Context, usr *domain.User) error
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateHouseholdID(ctx context.Context, userID domain.UserID, householdID *domain.HouseholdID) (int64, error)
	ClearHousehold(ctx context.Context, householdID domain.HouseholdID) (int64, error)
	UpdatePasswordHash(ctx context.Context, userID domain.UserID, hash string) error
	ListActiveByHousehold(ctx context.Context, householdID domain.HouseholdID) ([]domain.User, error)
}

type householdStore interface {
	Create(ctx context.Context, h *domain.Household) error
	GetByID(ctx context.Context, id domain.HouseholdID) (*domain.Household, error)
	GetByIDForUpdate(ctx context.Context, id domain.HouseholdID) (*domain.Household, error)
	GetByInviteCode(ctx context.Context, code string) (*domain.Household, error)
	GetByCreatedBy(ctx context.Context, userID domain.UserID) (*domain.Household, error)
	CountActiveMembers(ctx context.Context, householdID domain.HouseholdID) (int64, error)
	SetActive(ctx context.Context, id domain.HouseholdID, active bool) error
}

type gormStoreAdapter struct {
	store *store.Store
}

func (g gormStoreAdapter) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	if g.store == nil {
		return errors.New("nil store")
	}
	return g.store.WithTx(ctx, func(tx *store.Store) error {
		return fn(gormTxAdapter{tx: tx})
	})
}

func (g gormStoreAdapter) Users() userStore { return g.store.Users() }

func (g gormStoreAdapter) Households() householdStore { return g.store.Households() }

type gormTxAdapter struct {
	tx *store.Store
}

func (g gormTxAdapter) Users() userStore { return g.tx.Users() }

func (g gormTxAdapter) Households() householdStore { return g.tx.Households() }
