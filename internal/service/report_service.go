package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/model"
	"github.com/wingops/wingscore/internal/repository"
	"github.com/wingops/wingscore/pkg/apperror"
	"gorm.io/gorm"
)

type ReportService interface {
	Submit(ctx context.Context, input dto.SubmitReportInput) (*model.Report, error)
	List(ctx context.Context, tier Tier, adminWing, requestedWing, status *string) ([]*model.Report, error)
	// Approve resolves an ACCOUNT_CONFLICT report: if the report carried a
	// replacement password it is applied to the existing (name, wing) account,
	// which is how a legitimate owner reclaims an impersonated identity.
	Approve(ctx context.Context, tier Tier, adminWing *string, reportID uint) error
	// CreateAccount resolves a NEW_ACCOUNT_REQUEST by creating the user.
	CreateAccount(ctx context.Context, tier Tier, adminWing *string, reportID uint) (*model.User, error)
	Dismiss(ctx context.Context, tier Tier, adminWing *string, reportID uint) error
}

type reportService struct {
	reports repository.ReportRepository
	users   repository.UserRepository
	roster  repository.RosterRepository
	hasher  passwordHasher
	audit   AuditService
}

// passwordHasher is the slice of auth.Hasher the report flows need.
type passwordHasher interface {
	Hash(plaintext string) string
}

func NewReportService(
	reports repository.ReportRepository,
	users repository.UserRepository,
	roster repository.RosterRepository,
	hasher passwordHasher,
	audit AuditService,
) ReportService {
	return &reportService{
		reports: reports,
		users:   users,
		roster:  roster,
		hasher:  hasher,
		audit:   audit,
	}
}

func (s *reportService) Submit(ctx context.Context, input dto.SubmitReportInput) (*model.Report, error) {
	name := normalizeName(input.Name)
	wing := strings.TrimSpace(input.Wing)
	if name == "" || wing == "" {
		return nil, apperror.ErrInvalidInput
	}

	report := &model.Report{
		Name:   name,
		Wing:   wing,
		Type:   input.Type,
		Email:  input.Email,
		Phone:  input.Phone,
		Notes:  input.Notes,
		Status: model.ReportStatusPending,
	}
	if input.Password != nil && *input.Password != "" {
		// Stored hashed so the raw password never sits in the reports table.
		hashed := s.hasher.Hash(*input.Password)
		report.Password = &hashed
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *reportService) List(ctx context.Context, tier Tier, adminWing, requestedWing, status *string) ([]*model.Report, error) {
	wing := requestedWing
	if tier == TierWing {
		if adminWing == nil {
			return nil, apperror.ErrForbidden
		}
		wing = adminWing
	}
	return s.reports.FindAll(ctx, wing, status)
}

func (s *reportService) Approve(ctx context.Context, tier Tier, adminWing *string, reportID uint) error {
	report, err := s.findScoped(ctx, tier, adminWing, reportID)
	if err != nil {
		return err
	}
	if report.Type != model.ReportTypeAccountConflict {
		return apperror.ErrInvalidInput
	}

	user, err := s.users.FindByNameAndWing(ctx, report.Name, report.Wing)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if report.Password != nil {
		// Forces the stored credential over to the reporter's password.
		// Circulating tokens still verify (they are self-contained); the real
		// lockout is that the old password no longer authenticates.
		now := time.Now()
		user.PasswordHash = report.Password
		user.PasswordChangedAt = &now
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
		s.audit.Record(ctx, user, model.ActionPasswordChanged, "applied from conflict report")
	}

	return s.resolve(ctx, report)
}

func (s *reportService) CreateAccount(ctx context.Context, tier Tier, adminWing *string, reportID uint) (*model.User, error) {
	report, err := s.findScoped(ctx, tier, adminWing, reportID)
	if err != nil {
		return nil, err
	}
	if report.Type != model.ReportTypeNewAccountRequest {
		return nil, apperror.ErrInvalidInput
	}

	if _, err := s.users.FindByNameAndWing(ctx, report.Name, report.Wing); err == nil {
		return nil, apperror.ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	wing := report.Wing
	user := &model.User{
		Name: report.Name,
		Wing: &wing,
	}
	if report.Password != nil {
		now := time.Now()
		user.PasswordHash = report.Password
		user.PasswordChangedAt = &now
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.roster.Upsert(ctx, report.Name, report.Wing); err != nil {
		return nil, err
	}

	if err := s.resolve(ctx, report); err != nil {
		return nil, err
	}

	user.PasswordHash = nil
	return user, nil
}

func (s *reportService) Dismiss(ctx context.Context, tier Tier, adminWing *string, reportID uint) error {
	report, err := s.findScoped(ctx, tier, adminWing, reportID)
	if err != nil {
		return err
	}

	now := time.Now()
	report.Status = model.ReportStatusDismissed
	report.ResolvedAt = &now
	tierStr := string(tier)
	report.ResolvedBy = &tierStr
	return s.reports.Update(ctx, report)
}

func (s *reportService) resolve(ctx context.Context, report *model.Report) error {
	now := time.Now()
	report.Status = model.ReportStatusResolved
	report.ResolvedAt = &now
	return s.reports.Update(ctx, report)
}

func (s *reportService) findScoped(ctx context.Context, tier Tier, adminWing *string, reportID uint) (*model.Report, error) {
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if tier == TierWing {
		if adminWing == nil || report.Wing != *adminWing {
			return nil, apperror.ErrForbidden
		}
	}

	return report, nil
}
