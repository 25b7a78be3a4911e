package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"homebuddy-auth/internal/domain"
	"homebuddy-auth/internal/dto"
	"homebuddy-auth/internal/events"
	"homebuddy-auth/internal/observability/metrics"
	"homebuddy-auth/internal/store"
)

const DefaultMaxInviteCodeAttempts = 16

type HouseholdConfig struct {
	MaxInviteCodeAttempts int
	DefaultMaxMembers     int // capacity stamped on new households
}

type HouseholdServiceImpl struct {
	Store  dataStore
	Config HouseholdConfig
	Events events.Publisher
	Logger *slog.Logger

	// NewInviteCode defaults to GenerateInviteCode.
	NewInviteCode func() (string, error)
}

func NewHouseholdServiceImpl(st *store.Store, cfg HouseholdConfig, pub events.Publisher, logger *slog.Logger) *HouseholdServiceImpl {
	return &HouseholdServiceImpl{
		Store:         gormStoreAdapter{store: st},
		Config:        cfg,
		Events:        pub,
		Logger:        logger,
		NewInviteCode: GenerateInviteCode,
	}
}

func (h *HouseholdServiceImpl) log(ctx context.Context) *slog.Logger {
	return requestLogger(ctx, h.Logger)
}

func (h *HouseholdServiceImpl) maxAttempts() int {
	if h.Config.MaxInviteCodeAttempts <= 0 {
		return DefaultMaxInviteCodeAttempts
	}
	return h.Config.MaxInviteCodeAttempts
}

func (h *HouseholdServiceImpl) maxMembers() int {
	if h.Config.DefaultMaxMembers <= 0 {
		return domain.DefaultMaxMembers
	}
	return h.Config.DefaultMaxMembers
}

func (h *HouseholdServiceImpl) CreateHousehold(ctx context.Context, r dto.CreateHouseholdRequest, createdBy domain.UserID) (resp *dto.CreateHouseholdResponse, err error) {
	defer func() {
		metrics.HouseholdOperationsTotal.WithLabelValues("create", metrics.Result(err)).Inc()
	}()

	r.Name = strings.TrimSpace(r.Name)
	log := h.log(ctx).With("user_id", createdBy)
	log.Info("creating household", "name", r.Name)

	if err = dto.Validate(r); err != nil {
		return nil, err
	}

	household, err := h.createWithUniqueCode(ctx, log, r.Name, createdBy)
	if err != nil {
		err = settle(log, "create household", err, domain.ErrCreateHouseholdFailed)
		return nil, err
	}

	log.Info("household created", "household_id", household.ID)
	publish(ctx, h.Events, events.HouseholdCreated{
		ID:          events.NewID(),
		HouseholdID: household.ID,
		Name:        household.Name,
		CreatedBy:   createdBy,
		At:          household.CreatedAt,
	})

	hd := dto.HouseholdFromDomain(household, 1)
	return &dto.CreateHouseholdResponse{
		Success:    true,
		Household:  &hd,
		InviteCode: household.InviteCode,
	}, nil
}

// createWithUniqueCode runs one transaction per candidate code. A collision
// aborts the transaction on postgres, so retries cannot happen inside it.
func (h *HouseholdServiceImpl) createWithUniqueCode(ctx context.Context, log *slog.Logger, name string, createdBy domain.UserID) (*domain.Household, error) {
	gen := h.NewInviteCode
	if gen == nil {
		gen = GenerateInviteCode
	}
	for attempt := 1; attempt <= h.maxAttempts(); attempt++ {
		code, err := gen()
		if err != nil {
			return nil, fmt.Errorf("generate invite code: %w", err)
		}
		household, err := h.createWithCode(ctx, name, createdBy, code)
		if !errors.Is(err, errInviteCodeTaken) {
			return household, err
		}
		log.Debug("invite code collision", "attempt", attempt)
	}
	return nil, domain.ErrInviteCodeExhausted
}

func (h *HouseholdServiceImpl) createWithCode(ctx context.Context, name string, createdBy domain.UserID, code string) (*domain.Household, error) {
	var household *domain.Household
	err := h.Store.WithTx(ctx, func(tx storeTx) error {
		user, err := loadUser(ctx, tx, createdBy)
		if err != nil {
			return err
		}
		if user.InHousehold() {
			return domain.ErrAlreadyInHousehold
		}

		if _, err := tx.Households().GetByInviteCode(ctx, code); err == nil {
			return errInviteCodeTaken
		} else if !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		household = &domain.Household{
			Name:       name,
			InviteCode: code,
			CreatedBy:  createdBy,
			IsActive:   true,
			MaxMembers: h.maxMembers(),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Households().Create(ctx, household); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return errInviteCodeTaken
			}
			return err
		}

		n, err := tx.Users().UpdateHouseholdID(ctx, createdBy, &household.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
	return household, err
}

func (h *HouseholdServiceImpl) JoinHousehold(ctx context.Context, r dto.JoinHouseholdRequest, userID domain.UserID) (resp *dto.JoinHouseholdResponse, err error) {
	defer func() {
		metrics.HouseholdOperationsTotal.WithLabelValues("join", metrics.Result(err)).Inc()
	}()

	r.InviteCode = strings.TrimSpace(r.InviteCode)
	log := h.log(ctx).With("user_id", userID)
	log.Info("joining household", "invite_code", r.InviteCode)

	if err = dto.Validate(r); err != nil {
		return nil, err
	}

	var (
		household *domain.Household
		members   int64
	)
	err = h.Store.WithTx(ctx, func(tx storeTx) error {
		user, err := loadUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user.InHousehold() {
			return domain.ErrAlreadyInHousehold
		}

		household, err = joinableHousehold(ctx, tx, r.InviteCode)
		if err != nil {
			return err
		}
		if _, err := tx.Users().UpdateHouseholdID(ctx, userID, &household.ID); err != nil {
			return err
		}
		members, err = tx.Households().CountActiveMembers(ctx, household.ID)
		return err
	})
	if err != nil {
		err = settle(log, "join household", err, domain.ErrJoinHouseholdFailed)
		return nil, err
	}

	log.Info("household joined", "household_id", household.ID, "members", members)
	publish(ctx, h.Events, events.HouseholdJoined{
		ID:          events.NewID(),
		HouseholdID: household.ID,
		UserID:      userID,
		MemberCount: int(members),
		At:          time.Now().UTC(),
	})

	hd := dto.HouseholdFromDomain(household, int(members))
	return &dto.JoinHouseholdResponse{Success: true, Household: &hd}, nil
}

// LeaveHousehold releases userID from its household. The creator may only
// leave as the last member, which deactivates the household.
func (h *HouseholdServiceImpl) LeaveHousehold(ctx context.Context, userID domain.UserID) (err error) {
	defer func() {
		metrics.HouseholdOperationsTotal.WithLabelValues("leave", metrics.Result(err)).Inc()
	}()

	log := h.log(ctx).With("user_id", userID)

	var (
		householdID domain.HouseholdID
		deactivated bool
	)
	err = h.Store.WithTx(ctx, func(tx storeTx) error {
		user, err := loadUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !user.InHousehold() {
			return domain.ErrNotInHousehold
		}
		householdID = *user.HouseholdID

		household, err := tx.Households().GetByIDForUpdate(ctx, householdID)
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}
		if household != nil && household.CreatedBy == userID && household.IsActive {
			members, err := tx.Households().CountActiveMembers(ctx, householdID)
			if err != nil {
				return err
			}
			if members > 1 {
				return domain.ErrCreatorMustDeactivate
			}
			if err := tx.Households().SetActive(ctx, householdID, false); err != nil {
				return err
			}
			deactivated = true
			// inactive accounts still linked to the household go with it
			_, err = tx.Users().ClearHousehold(ctx, householdID)
			return err
		}

		_, err = tx.Users().UpdateHouseholdID(ctx, userID, nil)
		return err
	})
	if err != nil {
		err = settle(log, "leave household", err, domain.ErrLeaveHouseholdFailed)
		return err
	}

	log.Info("household left", "household_id", householdID, "deactivated", deactivated)
	publish(ctx, h.Events, events.HouseholdLeft{
		ID:          events.NewID(),
		HouseholdID: householdID,
		UserID:      userID,
		Deactivated: deactivated,
		At:          time.Now().UTC(),
	})
	return nil
}

// DeactivateHousehold marks the household inactive and releases every member.
// Repeating it on an inactive household is a no-op success.
func (h *HouseholdServiceImpl) DeactivateHousehold(ctx context.Context, householdID domain.HouseholdID, actorID domain.UserID) (err error) {
	defer func() {
		metrics.HouseholdOperationsTotal.WithLabelValues("deactivate", metrics.Result(err)).Inc()
	}()

	log := h.log(ctx).With("user_id", actorID, "household_id", householdID)

	var released int64
	err = h.Store.WithTx(ctx, func(tx storeTx) error {
		household, err := tx.Households().GetByIDForUpdate(ctx, householdID)
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrHouseholdNotFound
		}
		if err != nil {
			return err
		}
		if household.CreatedBy != actorID {
			return domain.ErrNotHouseholdCreator
		}
		if household.IsActive {
			if err := tx.Households().SetActive(ctx, householdID, false); err != nil {
				return err
			}
		}
		released, err = tx.Users().ClearHousehold(ctx, householdID)
		return err
	})
	if err != nil {
		err = settle(log, "deactivate household", err, domain.ErrDeactivateHouseholdFailed)
		return err
	}

	log.Info("household deactivated", "members_released", released)
	publish(ctx, h.Events, events.HouseholdDeactivated{
		ID:              events.NewID(),
		HouseholdID:     householdID,
		ActorID:         actorID,
		MembersReleased: released,
		At:              time.Now().UTC(),
	})
	return nil
}

func (h *HouseholdServiceImpl) ValidateInviteCode(ctx context.Context, code string) bool {
	code = strings.TrimSpace(code)
	if !dto.InviteCodePattern.MatchString(code) {
		return false
	}
	household, err := h.Store.Households().GetByInviteCode(ctx, code)
	if err != nil {
		if !errors.Is(err, store.ErrRecordNotFound) {
			h.log(ctx).Error("validate invite code failed", "error", err)
		}
		return false
	}
	return household.IsActive
}

func (h *HouseholdServiceImpl) GetHouseholdInfo(ctx context.Context, householdID domain.HouseholdID) (*dto.HouseholdInfoResponse, error) {
	household, err := h.FindHouseholdByID(ctx, householdID)
	if err != nil {
		return nil, err
	}
	members, err := h.Store.Users().ListActiveByHousehold(ctx, householdID)
	if err != nil {
		h.log(ctx).Error("list household members failed", "household_id", householdID, "error", err)
		return nil, domain.ErrInternal
	}
	return &dto.HouseholdInfoResponse{
		Household:   dto.HouseholdFromDomain(household, len(members)),
		Members:     dto.UsersFromDomain(members),
		MemberCount: len(members),
		MaxMembers:  household.MaxMembers,
	}, nil
}

func (h *HouseholdServiceImpl) FindHouseholdByID(ctx context.Context, id domain.HouseholdID) (*domain.Household, error) {
	household, err := h.Store.Households().GetByID(ctx, id)
	return household, h.lookupErr(ctx, err, "household_id", id)
}

func (h *HouseholdServiceImpl) FindHouseholdByInviteCode(ctx context.Context, code string) (*domain.Household, error) {
	household, err := h.Store.Households().GetByInviteCode(ctx, strings.TrimSpace(code))
	return household, h.lookupErr(ctx, err, "invite_code", code)
}

func (h *HouseholdServiceImpl) FindHouseholdByCreator(ctx context.Context, userID domain.UserID) (*domain.Household, error) {
	household, err := h.Store.Households().GetByCreatedBy(ctx, userID)
	return household, h.lookupErr(ctx, err, "created_by", userID)
}

func (h *HouseholdServiceImpl) lookupErr(ctx context.Context, err error, key string, value any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrRecordNotFound):
		return domain.ErrHouseholdNotFound
	default:
		h.log(ctx).Error("find household failed", key, value, "error", err)
		return domain.ErrInternal
	}
}

func (h *HouseholdServiceImpl) GetHouseholdMemberCount(ctx context.Context, householdID domain.HouseholdID) int64 {
	n, err := h.Store.Households().CountActiveMembers(ctx, householdID)
	if err != nil {
		h.log(ctx).Error("count household members failed", "household_id", householdID, "error", err)
		return 0
	}
	return n
}
