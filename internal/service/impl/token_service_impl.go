package impl

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"homebuddy-auth/internal/domain"
	"homebuddy-auth/internal/observability/metrics"
	"homebuddy-auth/internal/service"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTTL            = 24 * time.Hour
	RoleUser            = "ROLE_USER"
	MinSigningKeyLength = 32

	tokenHeader = `{"alg":"HS256","typ":"JWT"}`
)

type TokenConfig struct {
	SigningKey []byte // HS256 secret
}

type TokenServiceImpl struct {
	cfg    TokenConfig
	now    func() time.Time
	logger *slog.Logger
}

func NewTokenServiceHS256(cfg TokenConfig, logger *slog.Logger) (*TokenServiceImpl, error) {
	if len(cfg.SigningKey) < MinSigningKeyLength {
		return nil, ErrWeakSigningKey
	}
	return &TokenServiceImpl{cfg: cfg, now: time.Now, logger: logger}, nil
}

// Issue signs a stateless 24h bearer token. The payload is assembled by hand
// so the field order stays byte-for-byte stable for existing verifiers.
func (t *TokenServiceImpl) Issue(
	ctx context.Context,
	userID domain.UserID,
	username, email, displayName string,
	householdID *domain.HouseholdID,
) (string, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues(result).Inc()
	}()

	iat := t.now().Unix()
	exp := iat + int64(TokenTTL/time.Second)
	payload := buildPayload(userID, username, email, displayName, householdID, iat, exp)

	signingString := encodeSegment([]byte(tokenHeader)) + "." + encodeSegment([]byte(payload))
	sig, err := jwt.SigningMethodHS256.Sign(signingString, t.cfg.SigningKey)
	if err != nil {
		result = "failure"
		return "", err
	}

	requestLogger(ctx, t.logger).Info("issued token", "user_id", userID, "expires_at", exp)
	return signingString + "." + encodeSegment(sig), nil
}

// Parse verifies signature and expiry. It backs the bearer middleware on
// household routes; nothing is looked up server-side.
func (t *TokenServiceImpl) Parse(tokenStr string) (*service.Claims, error) {
	result := "success"
	defer func() {
		metrics.TokensVerifiedTotal.WithLabelValues(result).Inc()
	}()

	claims := &service.Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	tok, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil || !tok.Valid {
		result = "failure"
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		result = "failure"
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func buildPayload(userID domain.UserID, username, email, displayName string, householdID *domain.HouseholdID, iat, exp int64) string {
	hid := ""
	if householdID != nil {
		hid = strconv.FormatInt(*householdID, 10)
	}

	var b strings.Builder
	b.WriteString(`{"sub":`)
	b.WriteString(jsonString(strconv.FormatInt(userID, 10)))
	b.WriteString(`,"username":`)
	b.WriteString(jsonString(username))
	b.WriteString(`,"email":`)
	b.WriteString(jsonString(email))
	b.WriteString(`,"displayName":`)
	b.WriteString(jsonString(displayName))
	b.WriteString(`,"householdId":`)
	b.WriteString(jsonString(hid))
	b.WriteString(`,"iat":`)
	b.WriteString(strconv.FormatInt(iat, 10))
	b.WriteString(`,"exp":`)
	b.WriteString(strconv.FormatInt(exp, 10))
	b.WriteString(`,"roles":["` + RoleUser + `"]}`)
	return b.String()
}

// jsonString quotes s as a JSON string. Only quotes, backslashes and control
// characters are escaped; every other rune is written as is.
func jsonString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[r>>4])
				b.WriteByte(hexDigits[r&0xf])
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

const hexDigits = "0123456789abcdef"

func encodeSegment(seg []byte) string {
	return base64.RawURLEncoding.EncodeToString(seg)
}
