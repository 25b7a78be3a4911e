package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"sentinel", ErrHouseholdFull, KindPrecondition},
		{"wrapped", fmt.Errorf("join: %w", ErrAlreadyInHousehold), KindConflict},
		{"validation", Validation("username is required"), KindValidation},
		{"foreign error", errors.New("boom"), KindInfrastructure},
		{"nil", nil, KindInfrastructure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAsError(t *testing.T) {
	de, ok := AsError(fmt.Errorf("wrap: %w", ErrInvalidCredentials))
	if !ok || de != ErrInvalidCredentials {
		t.Fatalf("AsError = %v, %v", de, ok)
	}
	if de.Error() != "Invalid credentials" {
		t.Fatalf("message = %q", de.Error())
	}
	if _, ok := AsError(errors.New("plain")); ok {
		t.Fatalf("plain error should not be a domain error")
	}
}

func TestUserInHousehold(t *testing.T) {
	var u User
	if u.InHousehold() {
		t.Fatalf("zero user should not be in a household")
	}
	hid := HouseholdID(3)
	u.HouseholdID = &hid
	if !u.InHousehold() {
		t.Fatalf("expected user to be in household")
	}
}
