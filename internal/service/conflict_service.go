package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/model"
	"github.com/wingops/wingscore/internal/repository"
	"github.com/wingops/wingscore/pkg/apperror"
	"gorm.io/gorm"
)

// ConflictService surfaces and resolves duplicate-name accounts. A conflict is
// two or more users sharing a name under differing wings (null wing counts as
// its own value), usually a duplicate or an impersonation.
type ConflictService interface {
	List(ctx context.Context, tier Tier, adminWing, requestedWing *string) ([]dto.ConflictEntry, error)
	// Merge reassigns every score from source to target, then removes the
	// source account. Target identity and wing are unchanged.
	Merge(ctx context.Context, tier Tier, adminWing *string, targetID, sourceID uint) error
}

type conflictService struct {
	db        *gorm.DB
	users     repository.UserRepository
	scores    repository.ScoreRepository
	adminAuth AdminAuthService
	audit     AuditService
}

func NewConflictService(
	db *gorm.DB,
	users repository.UserRepository,
	scores repository.ScoreRepository,
	adminAuth AdminAuthService,
	audit AuditService,
) ConflictService {
	return &conflictService{
		db:        db,
		users:     users,
		scores:    scores,
		adminAuth: adminAuth,
		audit:     audit,
	}
}

func (s *conflictService) List(ctx context.Context, tier Tier, adminWing, requestedWing *string) ([]dto.ConflictEntry, error) {
	if tier == TierWing && adminWing == nil {
		return nil, apperror.ErrForbidden
	}

	wing := s.adminAuth.EffectiveWing(tier, adminWing, requestedWing)

	rows, err := s.users.FindConflicts(ctx, wing)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.ConflictEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.ConflictEntry{
			UserID:      row.ID,
			Name:        row.Name,
			Wing:        row.Wing,
			HasPassword: row.PasswordHash != nil && *row.PasswordHash != "",
			Others:      row.Others,
		})
	}

	return entries, nil
}

func (s *conflictService) Merge(ctx context.Context, tier Tier, adminWing *string, targetID, sourceID uint) error {
	if targetID == sourceID {
		return apperror.ErrInvalidInput
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	source, err := s.users.FindByID(ctx, sourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	// A wing-tier admin may only merge accounts implicating its own wing.
	if tier == TierWing {
		if adminWing == nil || !userInWing(target, adminWing) && !userInWing(source, adminWing) {
			return apperror.ErrForbidden
		}
	}

	// Reassign-then-delete is one logical unit; a crash in between must not
	// leave scores orphaned or double-owned.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.scores.ReassignOwner(tx, sourceID, targetID); err != nil {
			return err
		}
		if source.Wing != nil {
			if err := tx.Delete(&model.RosterEntry{},
				"name = ? AND wing = ?", source.Name, *source.Wing).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.User{}, "id = ?", sourceID).Error
	})
	if err != nil {
		return err
	}

	details := fmt.Sprintf("merged user %d into %d", sourceID, targetID)
	s.audit.Record(ctx, target, model.ActionAccountMerged, details)
	return nil
}

func userInWing(user *model.User, wing *string) bool {
	return user.Wing != nil && wing != nil && *user.Wing == *wing
}
