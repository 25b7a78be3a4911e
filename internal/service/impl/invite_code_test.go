package impl

import (
	"strconv"
	"testing"

	"homebuddy-auth/internal/dto"
)

func TestGenerateInviteCodeShape(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateInviteCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !dto.InviteCodePattern.MatchString(code) {
			t.Fatalf("code %q does not match pattern", code)
		}
		n, err := strconv.Atoi(code[5:])
		if err != nil || n < 1000 || n > 9999 {
			t.Fatalf("code %q numeric part out of range", code)
		}
	}
}
