package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"homebuddy-auth/internal/authz"
	"homebuddy-auth/internal/domain"
	"homebuddy-auth/internal/dto"
	"homebuddy-auth/internal/netutil"
	obsmw "homebuddy-auth/internal/observability/middleware"
	"homebuddy-auth/internal/service"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

var errBadBody = domain.Validation("Invalid request body")

type handler struct {
	auth       service.AuthService
	households service.HouseholdService
	logger     *slog.Logger
	trustProxy bool
}

func (h *handler) log(r *http.Request) *slog.Logger {
	return obsmw.Logger(r.Context(), h.logger)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadBody
	}
	return nil
}

func (h *handler) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "UP",
		"service":   ServiceName,
		"timestamp": time.Now().UTC(),
	})
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decode(w, r, &req); err != nil {
		writeJSON(w, statusFor(err), dto.RegisterResponse{Error: message(err)})
		return
	}
	h.log(r).Debug("register request",
		"client_ip", netutil.ClientIP(r, h.trustProxy),
		"user_agent", netutil.TruncateUserAgent(r.UserAgent()))

	res, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), dto.RegisterResponse{Error: message(err)})
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, statusFor(err), message(err))
		return
	}
	h.log(r).Debug("login request",
		"client_ip", netutil.ClientIP(r, h.trustProxy),
		"user_agent", netutil.TruncateUserAgent(r.UserAgent()))

	res, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Message)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) createHousehold(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Message)
		return
	}
	var req dto.CreateHouseholdRequest
	if err := decode(w, r, &req); err != nil {
		writeJSON(w, statusFor(err), dto.CreateHouseholdResponse{Error: message(err)})
		return
	}
	res, err := h.households.CreateHousehold(r.Context(), req, userID)
	if err != nil {
		writeJSON(w, statusFor(err), dto.CreateHouseholdResponse{Error: message(err)})
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *handler) joinHousehold(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Message)
		return
	}
	var req dto.JoinHouseholdRequest
	if err := decode(w, r, &req); err != nil {
		writeJSON(w, statusFor(err), dto.JoinHouseholdResponse{Error: message(err)})
		return
	}
	res, err := h.households.JoinHousehold(r.Context(), req, userID)
	if err != nil {
		writeJSON(w, statusFor(err), dto.JoinHouseholdResponse{Error: message(err)})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) leaveHousehold(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Message)
		return
	}
	if err := h.households.LeaveHousehold(r.Context(), userID); err != nil {
		writeJSON(w, statusFor(err), dto.StatusResponse{Error: message(err)})
		return
	}
	writeJSON(w, http.StatusOK, dto.StatusResponse{Success: true})
}

func (h *handler) deactivateHousehold(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Message)
		return
	}
	var req dto.DeactivateHouseholdRequest
	err := decode(w, r, &req)
	if err == nil {
		err = dto.Validate(req)
	}
	if err == nil {
		err = h.households.DeactivateHousehold(r.Context(), req.HouseholdID, userID)
	}
	if err != nil {
		writeJSON(w, statusFor(err), dto.StatusResponse{Error: message(err)})
		return
	}
	writeJSON(w, http.StatusOK, dto.StatusResponse{Success: true})
}

func (h *handler) validateInvite(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "inviteCode")
	writeJSON(w, http.StatusOK, dto.ValidateInviteResponse{
		Valid: h.households.ValidateInviteCode(r.Context(), code),
	})
}

// householdInfo resolves the caller's household from the store; the
// householdId claim is not trusted because membership changes after issuance.
func (h *handler) householdInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Message)
		return
	}
	user, err := h.auth.FindUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, statusFor(err), message(err))
		return
	}
	if !user.InHousehold() {
		writeError(w, statusFor(domain.ErrNotInHousehold), domain.ErrNotInHousehold.Message)
		return
	}
	info, err := h.households.GetHouseholdInfo(r.Context(), *user.HouseholdID)
	if err != nil {
		if !errors.Is(err, domain.ErrHouseholdNotFound) {
			h.log(r).Error("household info failed", "user_id", userID, "error", err)
		}
		writeError(w, statusFor(err), message(err))
		return
	}
	writeJSON(w, http.StatusOK, info)
}
