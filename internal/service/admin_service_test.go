package service

import (
	"context"
	"errors"
	"testing"

	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/pkg/apperror"
)

func TestWingAdminIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alpha := strPtr("ALPHA WING")
	beta := strPtr("BETA WING")

	f.seedUser(t, "JOHN", "ALPHA WING", nil)
	f.seedUser(t, "JANE", "BETA WING", nil)

	// No filter: a wing admin still only sees its own wing.
	users, err := f.admin.ListUsers(ctx, TierWing, alpha, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 1 || users[0].Name != "JOHN" {
		t.Fatalf("wing admin saw foreign users: %v", users)
	}

	// A foreign filter is overridden, never honored.
	users, err = f.admin.ListUsers(ctx, TierWing, alpha, beta)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 1 || users[0].Name != "JOHN" {
		t.Fatalf("wing admin filter override failed: %v", users)
	}

	// OCS with no filter sees everyone.
	users, err = f.admin.ListUsers(ctx, TierOCS, nil, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("ocs admin should see all users, got %d", len(users))
	}
}

func TestWingAdminCannotAssignForeignWing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alpha := strPtr("ALPHA WING")

	_, err := f.admin.CreateUser(ctx, TierWing, alpha, dto.AdminCreateUserInput{
		Name: "JOHN", Wing: strPtr("BETA WING"),
	})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	user, err := f.admin.CreateUser(ctx, TierWing, alpha, dto.AdminCreateUserInput{Name: "JOHN"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Wing == nil || *user.Wing != "ALPHA WING" {
		t.Fatalf("wing admin create should default to own wing, got %v", user.Wing)
	}

	_, err = f.admin.UpdateUser(ctx, TierWing, alpha, user.ID, dto.AdminUpdateUserInput{
		Wing: strPtr("BETA WING"),
	})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on wing change, got %v", err)
	}
}

func TestWingAdminCannotClearWing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alpha := strPtr("ALPHA WING")

	user := f.seedUser(t, "JOHN", "ALPHA WING", nil)

	// Clearing the wing would move the user outside the admin's scope.
	_, err := f.admin.UpdateUser(ctx, TierWing, alpha, user.ID, dto.AdminUpdateUserInput{
		Wing: strPtr(""),
	})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on wing clear, got %v", err)
	}

	stored, err := f.users.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.Wing == nil || *stored.Wing != "ALPHA WING" {
		t.Fatalf("wing changed after rejected clear: %v", stored.Wing)
	}
	entries, _ := f.roster.FindByWing(ctx, "ALPHA WING")
	if len(entries) != 1 {
		t.Fatal("roster entry lost on rejected clear")
	}

	// A global admin may still unassign.
	updated, err := f.admin.UpdateUser(ctx, TierOCS, nil, user.ID, dto.AdminUpdateUserInput{
		Wing: strPtr(""),
	})
	if err != nil {
		t.Fatalf("ocs wing clear failed: %v", err)
	}
	if updated.Wing != nil {
		t.Fatalf("ocs clear should unassign the wing, got %v", updated.Wing)
	}
}

func TestUnboundWingAdminDeniedListAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedUser(t, "JOHN", "ALPHA WING", nil)

	// The generic wing secret resolves to the wing tier with no bound wing;
	// that scopes to nothing, not to everything.
	if _, err := f.admin.ListUsers(ctx, TierWing, nil, nil); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected ErrForbidden from user list, got %v", err)
	}
	if _, err := f.conflict.List(ctx, TierWing, nil, nil); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected ErrForbidden from conflict list, got %v", err)
	}
	if _, err := f.report.List(ctx, TierWing, nil, nil, nil); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected ErrForbidden from report list, got %v", err)
	}
}

func TestWingAdminCannotTouchForeignUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alpha := strPtr("ALPHA WING")

	foreign := f.seedUser(t, "JANE", "BETA WING", nil)

	if err := f.admin.ResetUser(ctx, TierWing, alpha, foreign.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on reset, got %v", err)
	}
	if err := f.admin.BanUser(ctx, TierWing, alpha, foreign.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on ban, got %v", err)
	}
}

func TestResetVersusBan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.seedUser(t, "JOHN", "ALPHA WING", strPtr("abcd"))
	pushups := f.seedExercise(t, "PUSHUPS")
	if err := f.scores.Accumulate(ctx, user.ID, pushups.ID, 10); err != nil {
		t.Fatalf("score failed: %v", err)
	}

	// Reset: scores and password gone, account and roster entry stay.
	if err := f.admin.ResetUser(ctx, TierOCS, nil, user.ID); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	stored, err := f.users.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("user gone after reset: %v", err)
	}
	if stored.HasPassword() || stored.PasswordChangedAt != nil {
		t.Fatal("reset should clear password and timestamp")
	}
	scores, err := f.scores.FindByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("score lookup failed: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("reset should delete scores, found %d", len(scores))
	}
	entries, _ := f.roster.FindByWing(ctx, "ALPHA WING")
	if len(entries) != 1 {
		t.Fatal("reset should keep the roster entry")
	}

	// Reset is idempotent.
	if err := f.admin.ResetUser(ctx, TierOCS, nil, user.ID); err != nil {
		t.Fatalf("second reset failed: %v", err)
	}

	// Ban: everything gone.
	if err := f.admin.BanUser(ctx, TierOCS, nil, user.ID); err != nil {
		t.Fatalf("ban failed: %v", err)
	}
	if _, err := f.users.FindByID(ctx, user.ID); err == nil {
		t.Fatal("user row survived ban")
	}
	entries, _ = f.roster.FindByWing(ctx, "ALPHA WING")
	if len(entries) != 0 {
		t.Fatal("roster entry survived ban")
	}
}

func TestUpdateUserPasswordSemantics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "JOHN", "ALPHA WING", nil)

	// Setting a password stamps PasswordChangedAt.
	updated, err := f.admin.UpdateUser(ctx, TierOCS, nil, user.ID, dto.AdminUpdateUserInput{
		Password: strPtr("abcd"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	stored, _ := f.users.FindByID(ctx, updated.ID)
	if !stored.HasPassword() || stored.PasswordChangedAt == nil {
		t.Fatal("password update should hash and stamp")
	}
	stamp := *stored.PasswordChangedAt

	// Explicitly clearing the password removes the credential without
	// touching the stamp: "removed" is not "changed".
	if _, err := f.admin.UpdateUser(ctx, TierOCS, nil, user.ID, dto.AdminUpdateUserInput{
		Password: strPtr(""),
	}); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	stored, _ = f.users.FindByID(ctx, user.ID)
	if stored.HasPassword() {
		t.Fatal("clear should remove the credential")
	}
	if stored.PasswordChangedAt == nil || !stored.PasswordChangedAt.Equal(stamp) {
		t.Fatalf("clear must not move PasswordChangedAt: %v", stored.PasswordChangedAt)
	}

	// Nil leaves the credential alone.
	if _, err := f.admin.UpdateUser(ctx, TierOCS, nil, user.ID, dto.AdminUpdateUserInput{
		Name: strPtr("JOHN B"),
	}); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	stored, _ = f.users.FindByID(ctx, user.ID)
	if stored.Name != "JOHN B" || stored.HasPassword() {
		t.Fatalf("rename should not touch credential: %+v", stored)
	}
}
