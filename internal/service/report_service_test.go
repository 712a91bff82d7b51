package service

import (
	"context"
	"errors"
	"testing"

	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/model"
	"github.com/wingops/wingscore/pkg/apperror"
)

func TestApproveConflictReportAppliesPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// An impersonator claimed JOHN's account first.
	f.seedUser(t, "JOHN", "ALPHA WING", strPtr("impostor-pw"))

	report, err := f.report.Submit(ctx, dto.SubmitReportInput{
		Name: "JOHN", Wing: "ALPHA WING",
		Type:     model.ReportTypeAccountConflict,
		Password: strPtr("real-owner-pw"),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := f.report.Approve(ctx, TierOCS, nil, report.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// The reclaim swaps the stored credential over to the reporter's password.
	if _, err := f.account.Login(ctx, dto.LoginInput{
		Name: "JOHN", Wing: "ALPHA WING", Password: "real-owner-pw",
	}); err != nil {
		t.Fatalf("owner login after approve failed: %v", err)
	}
	if _, err := f.account.Login(ctx, dto.LoginInput{
		Name: "JOHN", Wing: "ALPHA WING", Password: "impostor-pw",
	}); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("impostor password should no longer authenticate, got %v", err)
	}

	stored, err := f.reports.FindByID(ctx, report.ID)
	if err != nil {
		t.Fatalf("report lookup failed: %v", err)
	}
	if stored.Status != model.ReportStatusResolved {
		t.Fatalf("report status = %s, want RESOLVED", stored.Status)
	}
}

func TestCreateAccountFromReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	report, err := f.report.Submit(ctx, dto.SubmitReportInput{
		Name: "JANE", Wing: "BETA WING",
		Type:     model.ReportTypeNewAccountRequest,
		Password: strPtr("abcd"),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	user, err := f.report.CreateAccount(ctx, TierOCS, nil, report.ID)
	if err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	if user.Name != "JANE" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := f.account.Login(ctx, dto.LoginInput{
		Name: "JANE", Wing: "BETA WING", Password: "abcd",
	}); err != nil {
		t.Fatalf("login with reported password failed: %v", err)
	}

	entries, _ := f.roster.FindByWing(ctx, "BETA WING")
	if len(entries) != 1 {
		t.Fatal("created account missing from roster")
	}
}

func TestReportTypeMismatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	report, err := f.report.Submit(ctx, dto.SubmitReportInput{
		Name: "JANE", Wing: "BETA WING",
		Type: model.ReportTypeNewAccountRequest,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Approve is only meaningful for conflict reports.
	if err := f.report.Approve(ctx, TierOCS, nil, report.ID); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReportWingScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alphaReport, err := f.report.Submit(ctx, dto.SubmitReportInput{
		Name: "JOHN", Wing: "ALPHA WING", Type: model.ReportTypeNewAccountRequest,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := f.report.Submit(ctx, dto.SubmitReportInput{
		Name: "JANE", Wing: "BETA WING", Type: model.ReportTypeNewAccountRequest,
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	reports, err := f.report.List(ctx, TierWing, strPtr("ALPHA WING"), nil, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reports) != 1 || reports[0].Wing != "ALPHA WING" {
		t.Fatalf("wing admin saw foreign reports: %v", reports)
	}

	// A beta-wing admin may not act on an alpha-wing report.
	if err := f.report.Dismiss(ctx, TierWing, strPtr("BETA WING"), alphaReport.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := f.report.Dismiss(ctx, TierWing, strPtr("ALPHA WING"), alphaReport.ID); err != nil {
		t.Fatalf("dismiss failed: %v", err)
	}
	stored, _ := f.reports.FindByID(ctx, alphaReport.ID)
	if stored.Status != model.ReportStatusDismissed {
		t.Fatalf("status = %s, want DISMISSED", stored.Status)
	}
}
