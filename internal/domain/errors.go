package domain

import "errors"

// Kind classifies a failure so callers can react without matching messages.
type Kind int

const (
	KindInfrastructure Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindPrecondition
	KindUnauthenticated
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindPrecondition:
		return "precondition_failed"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	default:
		return "infrastructure"
	}
}

// Error is a failure that is safe to hand to a caller. Message is human
// readable and never carries infrastructure detail.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

// Validation builds a request validation failure.
func Validation(msg string) *Error { return newError(KindValidation, msg) }

var (
	ErrDuplicateCredential = newError(KindConflict, "User with this username or email already exists")
	ErrAlreadyInHousehold  = newError(KindConflict, "User already belongs to a household")

	ErrUserNotFound      = newError(KindNotFound, "User not found")
	ErrHouseholdNotFound = newError(KindNotFound, "Household not found")
	ErrInvalidInviteCode = newError(KindNotFound, "Invalid invite code")

	ErrNotInHousehold        = newError(KindPrecondition, "User is not part of any household")
	ErrHouseholdInactive     = newError(KindPrecondition, "Household is not active")
	ErrHouseholdFull         = newError(KindPrecondition, "Household is full")
	ErrCreatorMustDeactivate = newError(KindPrecondition, "Household creator cannot leave while other members remain")

	ErrInvalidCredentials  = newError(KindUnauthenticated, "Invalid credentials")
	ErrNotHouseholdCreator = newError(KindForbidden, "Only the household creator can deactivate it")

	ErrRegistrationFailed        = newError(KindInfrastructure, "Registration failed due to server error")
	ErrCreateHouseholdFailed     = newError(KindInfrastructure, "Failed to create household due to server error")
	ErrJoinHouseholdFailed       = newError(KindInfrastructure, "Failed to join household due to server error")
	ErrLeaveHouseholdFailed      = newError(KindInfrastructure, "Failed to leave household due to server error")
	ErrDeactivateHouseholdFailed = newError(KindInfrastructure, "Failed to deactivate household due to server error")
	ErrInviteCodeExhausted       = newError(KindInfrastructure, "Failed to generate a unique invite code")
	ErrInternal                  = newError(KindInfrastructure, "Internal server error")
)

// KindOf returns the kind of err, treating anything that is not a *Error as
// an infrastructure fault.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInfrastructure
}

// AsError returns the *Error carried by err, if any.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
