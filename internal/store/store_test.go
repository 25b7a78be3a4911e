package store_test

import (
	"context"
	"errors"
	"testing"

	"homebuddy-auth/internal/domain"
	"homebuddy-auth/internal/store"
	"homebuddy-auth/internal/store/storetest"
)

func newUser(username, email string) *domain.User {
	return &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		DisplayName:  username,
		IsActive:     true,
	}
}

func TestUserStoreCreateAndLookup(t *testing.T) {
	st := storetest.Open(t)
	ctx := context.Background()

	u := newUser("alice", "a@x.com")
	if err := st.Users().Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("expected id to be assigned on insert")
	}

	byName, err := st.Users().GetByUsername(ctx, "alice")
	if err != nil || byName.ID != u.ID {
		t.Fatalf("get by username: %+v, %v", byName, err)
	}
	byEmail, err := st.Users().GetByEmail(ctx, "a@x.com")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("get by email: %+v, %v", byEmail, err)
	}
	if _, err := st.Users().GetByUsername(ctx, "Alice"); !errors.Is(err, store.ErrRecordNotFound) {
		t.Fatalf("lookup should be case-sensitive, got %v", err)
	}
	if _, err := st.Users().GetByID(ctx, u.ID+100); !errors.Is(err, store.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserStoreUniqueConstraints(t *testing.T) {
	st := storetest.Open(t)
	ctx := context.Background()

	if err := st.Users().Create(ctx, newUser("alice", "a@x.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		name string
		user *domain.User
	}{
		{name: "same username", user: newUser("alice", "other@x.com")},
		{name: "same email", user: newUser("bob", "a@x.com")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := st.Users().Create(ctx, tc.user); !errors.Is(err, store.ErrDuplicateKey) {
				t.Fatalf("expected duplicate key, got %v", err)
			}
		})
	}

	exists, err := st.Users().ExistsByUsernameOrEmail(ctx, "nobody", "a@x.com")
	if err != nil || !exists {
		t.Fatalf("expected email collision to be detected: %v %v", exists, err)
	}
	exists, err = st.Users().ExistsByUsernameOrEmail(ctx, "nobody", "nobody@x.com")
	if err != nil || exists {
		t.Fatalf("expected no collision: %v %v", exists, err)
	}
}

func TestHouseholdMembershipCounting(t *testing.T) {
	st := storetest.Open(t)
	ctx := context.Background()

	owner := newUser("owner", "o@x.com")
	if err := st.Users().Create(ctx, owner); err != nil {
		t.Fatalf("create owner: %v", err)
	}
	h := &domain.Household{Name: "Smiths", InviteCode: "ABCD-1234", CreatedBy: owner.ID, IsActive: true}
	if err := st.Households().Create(ctx, h); err != nil {
		t.Fatalf("create household: %v", err)
	}
	if h.MaxMembers != domain.DefaultMaxMembers {
		t.Fatalf("expected default capacity %d, got %d", domain.DefaultMaxMembers, h.MaxMembers)
	}

	if n, err := st.Users().UpdateHouseholdID(ctx, owner.ID, &h.ID); err != nil || n != 1 {
		t.Fatalf("stamp owner: %d %v", n, err)
	}
	member := newUser("member", "m@x.com")
	member.HouseholdID = &h.ID
	if err := st.Users().Create(ctx, member); err != nil {
		t.Fatalf("create member: %v", err)
	}
	inactive := newUser("gone", "g@x.com")
	inactive.HouseholdID = &h.ID
	if err := st.Users().Create(ctx, inactive); err != nil {
		t.Fatalf("create inactive: %v", err)
	}
	if err := st.DB.Model(&domain.User{}).Where("id = ?", inactive.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	count, err := st.Households().CountActiveMembers(ctx, h.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 active members, got %d", count)
	}

	members, err := st.Users().ListActiveByHousehold(ctx, h.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(members) != 2 || members[0].ID != owner.ID || members[1].ID != member.ID {
		t.Fatalf("unexpected members: %+v", members)
	}

	if n, err := st.Users().UpdateHouseholdID(ctx, member.ID, nil); err != nil || n != 1 {
		t.Fatalf("clear member: %d %v", n, err)
	}
	got, err := st.Users().GetByID(ctx, member.ID)
	if err != nil {
		t.Fatalf("reload member: %v", err)
	}
	if got.HouseholdID != nil {
		t.Fatalf("expected household to be cleared, got %v", *got.HouseholdID)
	}

	released, err := st.Users().ClearHousehold(ctx, h.ID)
	if err != nil {
		t.Fatalf("clear household: %v", err)
	}
	if released != 2 {
		t.Fatalf("expected owner and inactive user to be released, got %d", released)
	}
}

func TestHouseholdStoreLookups(t *testing.T) {
	st := storetest.Open(t)
	ctx := context.Background()

	first := &domain.Household{Name: "First", InviteCode: "AAAA-1111", CreatedBy: 7, IsActive: true}
	second := &domain.Household{Name: "Second", InviteCode: "BBBB-2222", CreatedBy: 7, IsActive: true}
	for _, h := range []*domain.Household{first, second} {
		if err := st.Households().Create(ctx, h); err != nil {
			t.Fatalf("create %s: %v", h.Name, err)
		}
	}

	dup := &domain.Household{Name: "Dup", InviteCode: "AAAA-1111", CreatedBy: 8, IsActive: true}
	if err := st.Households().Create(ctx, dup); !errors.Is(err, store.ErrDuplicateKey) {
		t.Fatalf("expected duplicate invite code to be rejected, got %v", err)
	}

	got, err := st.Households().GetByInviteCode(ctx, "BBBB-2222")
	if err != nil || got.ID != second.ID {
		t.Fatalf("get by invite code: %+v %v", got, err)
	}
	latest, err := st.Households().GetByCreatedBy(ctx, 7)
	if err != nil || latest.ID != second.ID {
		t.Fatalf("expected most recent household for creator: %+v %v", latest, err)
	}
	if _, err := st.Households().GetByInviteCode(ctx, "ZZZZ-0000"); !errors.Is(err, store.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	err = st.WithTx(ctx, func(tx *store.Store) error {
		locked, err := tx.Households().GetByIDForUpdate(ctx, first.ID)
		if err != nil {
			return err
		}
		return tx.Households().SetActive(ctx, locked.ID, false)
	})
	if err != nil {
		t.Fatalf("deactivate in tx: %v", err)
	}
	reloaded, err := st.Households().GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("expected household to be inactive")
	}
}

func TestWithTxRollsBack(t *testing.T) {
	st := storetest.Open(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.Users().Create(ctx, newUser("temp", "t@x.com")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected tx error to surface, got %v", err)
	}
	if _, err := st.Users().GetByUsername(ctx, "temp"); !errors.Is(err, store.ErrRecordNotFound) {
		t.Fatalf("expected insert to be rolled back, got %v", err)
	}
}
