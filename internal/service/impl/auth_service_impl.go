package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"homebuddy-auth/internal/domain"
	"homebuddy-auth/internal/dto"
	"homebuddy-auth/internal/events"
	"homebuddy-auth/internal/observability/metrics"
	"homebuddy-auth/internal/service"
	"homebuddy-auth/internal/store"
)

type AuthServiceImpl struct {
	Store           dataStore
	PasswordService service.PasswordService
	TService        service.TokenService
	Households      service.HouseholdService
	Events          events.Publisher
	Logger          *slog.Logger
}

func NewAuthServiceImpl(
	st *store.Store,
	passwordService service.PasswordService,
	tokenService service.TokenService,
	households service.HouseholdService,
	pub events.Publisher,
	logger *slog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		Store:           gormStoreAdapter{store: st},
		PasswordService: passwordService,
		TService:        tokenService,
		Households:      households,
		Events:          pub,
		Logger:          logger,
	}
}

func (a *AuthServiceImpl) log(ctx context.Context) *slog.Logger {
	return requestLogger(ctx, a.Logger)
}

func (a *AuthServiceImpl) Register(ctx context.Context, r dto.RegisterRequest) (resp *dto.RegisterResponse, err error) {
	defer func() {
		metrics.AuthRegistrationsTotal.WithLabelValues(metrics.Result(err)).Inc()
	}()

	r.Normalize()
	log := a.log(ctx).With("username", r.Username)
	log.Info("registration attempt", "with_invite", r.InviteCode != "")

	if err = dto.Validate(r); err != nil {
		return nil, err
	}

	var (
		user      *domain.User
		household *domain.Household
		members   int64
	)
	err = a.Store.WithTx(ctx, func(tx storeTx) error {
		exists, err := tx.Users().ExistsByUsernameOrEmail(ctx, r.Username, r.Email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateCredential
		}

		if r.InviteCode != "" {
			household, err = joinableHousehold(ctx, tx, r.InviteCode)
			if err != nil {
				return err
			}
		}

		hash, err := a.PasswordService.Hash(r.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		now := time.Now().UTC()
		user = &domain.User{
			Username:     r.Username,
			Email:        r.Email,
			PasswordHash: hash,
			DisplayName:  r.DisplayName,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if household != nil {
			user.HouseholdID = &household.ID
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return domain.ErrDuplicateCredential
			}
			return err
		}

		if household != nil {
			members, err = tx.Households().CountActiveMembers(ctx, household.ID)
			return err
		}
		return nil
	})
	if err != nil {
		err = settle(log, "registration", err, domain.ErrRegistrationFailed)
		return nil, err
	}

	userDto := dto.UserFromDomain(user)
	resp = &dto.RegisterResponse{
		Success:        true,
		User:           &userDto,
		NeedsHousehold: household == nil,
	}
	if household != nil {
		hd := dto.HouseholdFromDomain(household, int(members))
		resp.Household = &hd
		log.Info("user registered into household", "user_id", user.ID, "household_id", household.ID)
	} else {
		log.Info("user registered", "user_id", user.ID)
	}

	publish(ctx, a.Events, events.UserRegistered{
		ID:          events.NewID(),
		UserID:      user.ID,
		Username:    user.Username,
		HouseholdID: user.HouseholdID,
		At:          user.CreatedAt,
	})
	return resp, nil
}

// Authenticate burns one password verification on every path so response
// timing does not reveal whether the account exists.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, usernameOrEmail, password string) (*domain.User, error) {
	log := a.log(ctx).With("login", usernameOrEmail)

	user, err := a.findLoginUser(ctx, usernameOrEmail)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		a.PasswordService.DummyVerify(password)
		log.Debug("authentication failed", "reason", "unknown user")
		return nil, domain.ErrInvalidCredentials
	case err != nil:
		a.PasswordService.DummyVerify(password)
		log.Error("authentication lookup failed", "error", err)
		return nil, domain.ErrInvalidCredentials
	case !user.IsActive:
		a.PasswordService.DummyVerify(password)
		log.Debug("authentication failed", "reason", "inactive user", "user_id", user.ID)
		return nil, domain.ErrInvalidCredentials
	}

	rehash, ok := a.PasswordService.Verify(password, user.PasswordHash)
	if !ok {
		log.Debug("authentication failed", "reason", "bad password", "user_id", user.ID)
		return nil, domain.ErrInvalidCredentials
	}
	if rehash {
		a.rehash(ctx, log, user, password)
	}
	return user, nil
}

func (a *AuthServiceImpl) findLoginUser(ctx context.Context, login string) (*domain.User, error) {
	if login == "" {
		return nil, store.ErrRecordNotFound
	}
	user, err := a.Store.Users().GetByUsername(ctx, login)
	if errors.Is(err, store.ErrRecordNotFound) {
		return a.Store.Users().GetByEmail(ctx, login)
	}
	return user, err
}

// rehash is best effort; the login already succeeded.
func (a *AuthServiceImpl) rehash(ctx context.Context, log *slog.Logger, user *domain.User, password string) {
	hash, err := a.PasswordService.Hash(password)
	if err != nil {
		log.Warn("password rehash failed", "user_id", user.ID, "error", err)
		return
	}
	if err := a.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		log.Warn("password rehash not stored", "user_id", user.ID, "error", err)
		return
	}
	user.PasswordHash = hash
}

// Login answers every failure with domain.ErrInvalidCredentials.
func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest) (resp *dto.LoginResponse, err error) {
	defer func() {
		metrics.AuthLoginsTotal.WithLabelValues(metrics.Result(err)).Inc()
	}()

	log := a.log(ctx).With("login", r.Username)
	user, err := a.Authenticate(ctx, r.Username, r.Password)
	if err != nil {
		return nil, err
	}

	var household *dto.HouseholdDto
	if user.HouseholdID != nil && a.Households != nil {
		info, herr := a.Households.GetHouseholdInfo(ctx, *user.HouseholdID)
		if herr != nil {
			log.Warn("household summary unavailable", "household_id", *user.HouseholdID, "error", herr)
		} else {
			household = &info.Household
		}
	}

	token, err := a.TService.Issue(ctx, user.ID, user.Username, user.Email, user.DisplayName, user.HouseholdID)
	if err != nil {
		log.Error("issue token failed", "user_id", user.ID, "error", err)
		err = domain.ErrInvalidCredentials
		return nil, err
	}

	log.Info("login succeeded", "user_id", user.ID)
	return &dto.LoginResponse{
		Token:     token,
		User:      dto.UserFromDomain(user),
		Household: household,
	}, nil
}

func (a *AuthServiceImpl) FindUserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := a.Store.Users().GetByID(ctx, id)
	return user, a.lookupErr(ctx, err, "user_id", id)
}

func (a *AuthServiceImpl) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := a.Store.Users().GetByUsername(ctx, username)
	return user, a.lookupErr(ctx, err, "username", username)
}

func (a *AuthServiceImpl) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := a.Store.Users().GetByEmail(ctx, email)
	return user, a.lookupErr(ctx, err, "email", email)
}

func (a *AuthServiceImpl) lookupErr(ctx context.Context, err error, key string, value any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrRecordNotFound):
		return domain.ErrUserNotFound
	default:
		a.log(ctx).Error("find user failed", key, value, "error", err)
		return domain.ErrInternal
	}
}

func (a *AuthServiceImpl) UpdateUserHousehold(ctx context.Context, userID domain.UserID, householdID domain.HouseholdID) error {
	n, err := a.Store.Users().UpdateHouseholdID(ctx, userID, &householdID)
	if err != nil {
		a.log(ctx).Error("update user household failed", "user_id", userID, "household_id", householdID, "error", err)
		return domain.ErrInternal
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (a *AuthServiceImpl) GetUsersByHousehold(ctx context.Context, householdID domain.HouseholdID) ([]domain.User, error) {
	users, err := a.Store.Users().ListActiveByHousehold(ctx, householdID)
	if err != nil {
		a.log(ctx).Error("list household users failed", "household_id", householdID, "error", err)
		return nil, domain.ErrInternal
	}
	return users, nil
}
