package service

import (
	"context"
	"log"

	"github.com/wingops/wingscore/internal/model"
	"github.com/wingops/wingscore/internal/repository"
)

// AuditService appends account actions to the audit trail. Recording is
// best-effort: a failed write is logged and discarded so it can never fail or
// roll back the operation being audited.
type AuditService interface {
	Record(ctx context.Context, user *model.User, action string, details string)
	RecordSnapshot(ctx context.Context, name, wing *string, action string, details string)
	Recent(ctx context.Context, wing *string, limit int) ([]*model.AccountAction, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Record(ctx context.Context, user *model.User, action string, details string) {
	entry := &model.AccountAction{
		Action: action,
	}
	if user != nil {
		id := user.ID
		name := user.Name
		entry.UserID = &id
		entry.UserName = &name
		entry.UserWing = user.Wing
	}
	if details != "" {
		entry.Details = &details
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		log.Printf("audit write failed (action=%s): %v", action, err)
	}
}

// RecordSnapshot audits an action for an account that no longer exists,
// keeping only the name/wing snapshot.
func (s *auditService) RecordSnapshot(ctx context.Context, name, wing *string, action string, details string) {
	entry := &model.AccountAction{
		Action:   action,
		UserName: name,
		UserWing: wing,
	}
	if details != "" {
		entry.Details = &details
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		log.Printf("audit write failed (action=%s): %v", action, err)
	}
}

func (s *auditService) Recent(ctx context.Context, wing *string, limit int) ([]*model.AccountAction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.FindRecent(ctx, wing, limit)
}
