package impl

import (
	"context"
	"sync"
	"testing"

	"homebuddy-auth/internal/dto"
	"homebuddy-auth/internal/events"
	"homebuddy-auth/internal/observability/logging"
	"homebuddy-auth/internal/store"
	"homebuddy-auth/internal/store/storetest"

	"golang.org/x/crypto/bcrypt"
)

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventName())
	}
	return out
}

type fixture struct {
	st         *store.Store
	auth       *AuthServiceImpl
	households *HouseholdServiceImpl
	tokens     *TokenServiceImpl
	pub        *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := storetest.Open(t)
	pub := &recordingPublisher{}

	tokens, err := NewTokenServiceHS256(TokenConfig{SigningKey: testSigningKey}, logging.Discard())
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	households := NewHouseholdServiceImpl(st, HouseholdConfig{}, pub, logging.Discard())
	auth := NewAuthServiceImpl(st, NewPasswordServiceBcrypt(bcrypt.MinCost), tokens, households, pub, logging.Discard())

	return &fixture{st: st, auth: auth, households: households, tokens: tokens, pub: pub}
}

func (f *fixture) register(t *testing.T, username, inviteCode string) *dto.RegisterResponse {
	t.Helper()
	resp, err := f.auth.Register(context.Background(), dto.RegisterRequest{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "password123",
		DisplayName: username,
		InviteCode:  inviteCode,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return resp
}

func (f *fixture) createHousehold(t *testing.T, name string, creator int64) *dto.CreateHouseholdResponse {
	t.Helper()
	resp, err := f.households.CreateHousehold(context.Background(), dto.CreateHouseholdRequest{Name: name}, creator)
	if err != nil {
		t.Fatalf("create household %s: %v", name, err)
	}
	return resp
}
