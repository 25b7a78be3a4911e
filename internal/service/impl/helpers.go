package impl

import (
	"context"
	"errors"
	"log/slog"

	"homebuddy-auth/internal/domain"
	"homebuddy-auth/internal/events"
	"homebuddy-auth/internal/observability/middleware"
	"homebuddy-auth/internal/store"
)

func requestLogger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	return middleware.Logger(ctx, base)
}

func publish(ctx context.Context, pub events.Publisher, e events.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, e)
}

// settle turns a failed operation into the error handed to callers. Domain
// errors pass through; anything else is logged and replaced by fallback.
func settle(log *slog.Logger, op string, err error, fallback *domain.Error) error {
	if de, ok := domain.AsError(err); ok {
		log.Warn(op+" rejected", "reason", de.Message)
		return de
	}
	log.Error(op+" failed", "error", err)
	return fallback
}

func loadUser(ctx context.Context, tx storeTx, id domain.UserID) (*domain.User, error) {
	user, err := tx.Users().GetByID(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	return user, err
}

// joinableHousehold resolves code to an active household with a free seat.
// The household row is locked for the rest of tx so concurrent joins see
// each other's member counts.
func joinableHousehold(ctx context.Context, tx storeTx, code string) (*domain.Household, error) {
	found, err := tx.Households().GetByInviteCode(ctx, code)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, domain.ErrInvalidInviteCode
	}
	if err != nil {
		return nil, err
	}

	household, err := tx.Households().GetByIDForUpdate(ctx, found.ID)
	if err != nil {
		return nil, err
	}
	if !household.IsActive {
		return nil, domain.ErrHouseholdInactive
	}

	members, err := tx.Households().CountActiveMembers(ctx, household.ID)
	if err != nil {
		return nil, err
	}
	if members >= int64(household.MaxMembers) {
		return nil, domain.ErrHouseholdFull
	}
	return household, nil
}
