package impl

import "errors"

var (
	ErrEmptyPassword  = errors.New("empty password")
	ErrInvalidToken   = errors.New("invalid token")
	ErrWeakSigningKey = errors.New("signing key must be at least 32 bytes")

	// errInviteCodeTaken signals a collision so the caller can retry with a
	// fresh code. It never leaves this package.
	errInviteCodeTaken = errors.New("invite code taken")
)
