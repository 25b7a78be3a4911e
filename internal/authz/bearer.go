package authz

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"homebuddy-auth/internal/domain"
	"homebuddy-auth/internal/dto"
	"homebuddy-auth/internal/observability/metrics"
	obsmw "homebuddy-auth/internal/observability/middleware"
	"homebuddy-auth/internal/service"
)

// BearerValidator guards routes with tokens minted by the token service.
type BearerValidator struct {
	tokens service.TokenService
	logger *slog.Logger
}

func NewBearerValidator(tokens service.TokenService, logger *slog.Logger) *BearerValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &BearerValidator{tokens: tokens, logger: logger}
}

func (b *BearerValidator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := "success"
		defer func() {
			metrics.BearerAuthTotal.WithLabelValues(result).Inc()
		}()
		log := obsmw.Logger(r.Context(), b.logger)

		raw := r.Header.Get("Authorization")
		if len(raw) < len("Bearer ") || !strings.EqualFold(raw[:len("Bearer ")], "bearer ") {
			result = "failure"
			log.Warn("auth missing bearer", "path", r.URL.Path)
			unauthorized(w, "missing bearer token")
			return
		}
		tokStr := strings.TrimSpace(raw[len("Bearer "):])

		claims, err := b.tokens.Parse(tokStr)
		if err != nil {
			result = "failure"
			log.Warn("auth invalid token", "error", err)
			unauthorized(w, "invalid token")
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			result = "failure"
			log.Warn("auth invalid subject", "subject", claims.Subject)
			unauthorized(w, "invalid token")
			return
		}

		log.Debug("auth passed", "user_id", userID)
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims, userID)))
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: msg, Timestamp: time.Now().UTC()})
}

type claimsKey struct{}

type principal struct {
	claims *service.Claims
	userID domain.UserID
}

func withClaims(ctx context.Context, claims *service.Claims, userID domain.UserID) context.Context {
	return context.WithValue(ctx, claimsKey{}, principal{claims: claims, userID: userID})
}

func ClaimsFrom(ctx context.Context) (*service.Claims, bool) {
	p, ok := ctx.Value(claimsKey{}).(principal)
	return p.claims, ok
}

// UserIDFrom returns the token subject. Household data in the token may be
// stale; handlers re-read it from the store.
func UserIDFrom(ctx context.Context) (domain.UserID, bool) {
	p, ok := ctx.Value(claimsKey{}).(principal)
	return p.userID, ok
}
