package service

import (
	"context"
	"testing"

	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/model"
)

func TestAuditTrailRecordsLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "JOHN", "ALPHA WING", strPtr("abcd"))

	if _, err := f.account.Login(ctx, dto.LoginInput{
		Name: "JOHN", Wing: "ALPHA WING", Password: "abcd",
	}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	actions, err := f.audit.Recent(ctx, nil, 10)
	if err != nil {
		t.Fatalf("audit lookup failed: %v", err)
	}
	if len(actions) == 0 {
		t.Fatal("login left no audit entry")
	}
	if actions[0].Action != model.ActionLogin {
		t.Fatalf("action = %s, want login", actions[0].Action)
	}
	if actions[0].UserName == nil || *actions[0].UserName != "JOHN" {
		t.Fatalf("audit entry missing name snapshot: %+v", actions[0])
	}
}

func TestAuditSurvivesUserDeletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "JOHN", "ALPHA WING", strPtr("abcd"))

	if err := f.account.DeleteAccount(ctx, user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	actions, err := f.audit.Recent(ctx, nil, 10)
	if err != nil {
		t.Fatalf("audit lookup failed: %v", err)
	}
	if len(actions) == 0 {
		t.Fatal("deletion left no audit entry")
	}
	if actions[0].Action != model.ActionAccountDeleted {
		t.Fatalf("action = %s, want account_deleted", actions[0].Action)
	}
	if actions[0].UserName == nil || *actions[0].UserName != "JOHN" {
		t.Fatal("history should keep the name snapshot after deletion")
	}
}

// Audit writes are fire-and-forget: a broken audit store must never fail the
// primary operation.
func TestAuditFailureDoesNotBlockOperation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "JOHN", "ALPHA WING", strPtr("abcd"))

	if err := f.db.Exec("DROP TABLE account_actions").Error; err != nil {
		t.Fatalf("failed to break audit table: %v", err)
	}

	if _, err := f.account.Login(ctx, dto.LoginInput{
		Name: "JOHN", Wing: "ALPHA WING", Password: "abcd",
	}); err != nil {
		t.Fatalf("login must succeed despite audit failure: %v", err)
	}
}
