package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wingops/wingscore/internal/auth"
	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/model"
	"github.com/wingops/wingscore/internal/repository"
	"github.com/wingops/wingscore/pkg/apperror"
	"gorm.io/gorm"
)

// AdminService is the admin-side account CRUD. Every operation takes the
// caller's resolved tier and wing; wing-scoped admins are confined to their
// own wing no matter what the request asks for.
type AdminService interface {
	ListUsers(ctx context.Context, tier Tier, adminWing, requestedWing *string) ([]*model.User, error)
	CreateUser(ctx context.Context, tier Tier, adminWing *string, input dto.AdminCreateUserInput) (*model.User, error)
	UpdateUser(ctx context.Context, tier Tier, adminWing *string, userID uint, input dto.AdminUpdateUserInput) (*model.User, error)
	ResetUser(ctx context.Context, tier Tier, adminWing *string, userID uint) error
	BanUser(ctx context.Context, tier Tier, adminWing *string, userID uint) error
	DeleteScore(ctx context.Context, scoreID uint) error
}

type adminService struct {
	users     repository.UserRepository
	scores    repository.ScoreRepository
	roster    repository.RosterRepository
	adminAuth AdminAuthService
	hasher    *auth.Hasher
	audit     AuditService
}

func NewAdminService(
	users repository.UserRepository,
	scores repository.ScoreRepository,
	roster repository.RosterRepository,
	adminAuth AdminAuthService,
	hasher *auth.Hasher,
	audit AuditService,
) AdminService {
	return &adminService{
		users:     users,
		scores:    scores,
		roster:    roster,
		adminAuth: adminAuth,
		hasher:    hasher,
		audit:     audit,
	}
}

func (s *adminService) ListUsers(ctx context.Context, tier Tier, adminWing, requestedWing *string) ([]*model.User, error) {
	// A wing-tier credential with no bound wing scopes to nothing, not to
	// everything.
	if tier == TierWing && adminWing == nil {
		return nil, apperror.ErrForbidden
	}

	wing := s.adminAuth.EffectiveWing(tier, adminWing, requestedWing)
	users, err := s.users.FindAll(ctx, wing)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		u.PasswordHash = nil
	}
	return users, nil
}

func (s *adminService) CreateUser(ctx context.Context, tier Tier, adminWing *string, input dto.AdminCreateUserInput) (*model.User, error) {
	wing := input.Wing
	if err := s.checkWingAssignment(tier, adminWing, wing); err != nil {
		return nil, err
	}
	if tier == TierWing && wing == nil {
		wing = adminWing
	}

	name := normalizeName(input.Name)
	if name == "" {
		return nil, apperror.ErrInvalidInput
	}

	user := &model.User{Name: name, Wing: wing}
	if input.Password != nil && *input.Password != "" {
		if err := checkPasswordLength(*input.Password); err != nil {
			return nil, err
		}
		now := time.Now()
		hashed := s.hasher.Hash(*input.Password)
		user.PasswordHash = &hashed
		user.PasswordChangedAt = &now
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if wing != nil {
		if err := s.roster.Upsert(ctx, name, *wing); err != nil {
			return nil, err
		}
	}

	user.PasswordHash = nil
	return user, nil
}

func (s *adminService) UpdateUser(ctx context.Context, tier Tier, adminWing *string, userID uint, input dto.AdminUpdateUserInput) (*model.User, error) {
	user, err := s.findScoped(ctx, tier, adminWing, userID)
	if err != nil {
		return nil, err
	}

	if input.Wing != nil {
		w := strings.TrimSpace(*input.Wing)
		if err := s.checkWingAssignment(tier, adminWing, &w); err != nil {
			return nil, err
		}
	}

	oldName, oldWing := user.Name, user.Wing

	if input.Name != nil {
		name := normalizeName(*input.Name)
		if name == "" {
			return nil, apperror.ErrInvalidInput
		}
		user.Name = name
	}
	if input.Wing != nil {
		w := strings.TrimSpace(*input.Wing)
		if w == "" {
			user.Wing = nil
		} else {
			user.Wing = &w
		}
	}

	columns := []string{"name", "wing"}
	if input.Password != nil {
		if *input.Password == "" {
			// Explicit clear: credential removed, but this is not a password
			// change, so PasswordChangedAt is left alone.
			user.PasswordHash = nil
		} else {
			if err := checkPasswordLength(*input.Password); err != nil {
				return nil, err
			}
			now := time.Now()
			hashed := s.hasher.Hash(*input.Password)
			user.PasswordHash = &hashed
			user.PasswordChangedAt = &now
			columns = append(columns, "password_changed_at")
		}
		columns = append(columns, "password_hash")
	}

	if err := s.users.Select(ctx, user, columns...); err != nil {
		return nil, err
	}

	// Keep the roster index in step with the identity change.
	if oldName != user.Name || !wingsEqual(oldWing, user.Wing) {
		if oldWing != nil {
			if err := s.roster.Remove(ctx, oldName, *oldWing); err != nil {
				return nil, err
			}
		}
		if user.Wing != nil {
			if err := s.roster.Upsert(ctx, user.Name, *user.Wing); err != nil {
				return nil, err
			}
		}
	}

	if input.Password != nil && *input.Password != "" {
		s.audit.Record(ctx, user, model.ActionPasswordChanged, "changed by admin")
	}

	user.PasswordHash = nil
	return user, nil
}

// ResetUser is the soft tier: scores and password go, the account and its
// roster entry stay selectable.
func (s *adminService) ResetUser(ctx context.Context, tier Tier, adminWing *string, userID uint) error {
	user, err := s.findScoped(ctx, tier, adminWing, userID)
	if err != nil {
		return err
	}

	if err := s.scores.DeleteByUser(ctx, userID); err != nil {
		return err
	}

	user.PasswordHash = nil
	user.PasswordChangedAt = nil
	if err := s.users.Select(ctx, user, "password_hash", "password_changed_at"); err != nil {
		return err
	}

	s.audit.Record(ctx, user, model.ActionAccountReset, "reset by admin")
	return nil
}

// BanUser is the hard tier: the account disappears from every selection list.
func (s *adminService) BanUser(ctx context.Context, tier Tier, adminWing *string, userID uint) error {
	user, err := s.findScoped(ctx, tier, adminWing, userID)
	if err != nil {
		return err
	}

	if err := s.users.Purge(ctx, user); err != nil {
		return err
	}

	name := user.Name
	s.audit.RecordSnapshot(ctx, &name, user.Wing, model.ActionAccountBanned, "banned by admin")
	return nil
}

func (s *adminService) DeleteScore(ctx context.Context, scoreID uint) error {
	return s.scores.Delete(ctx, scoreID)
}

// findScoped loads the target user and enforces the wing boundary for
// wing-tier callers.
func (s *adminService) findScoped(ctx context.Context, tier Tier, adminWing *string, userID uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if tier == TierWing {
		if adminWing == nil || user.Wing == nil || *user.Wing != *adminWing {
			return nil, apperror.ErrForbidden
		}
	}

	return user, nil
}

// checkWingAssignment rejects a wing-tier admin assigning or clearing any
// wing other than its own.
func (s *adminService) checkWingAssignment(tier Tier, adminWing, target *string) error {
	if tier != TierWing {
		return nil
	}
	if target == nil {
		return nil
	}
	// An empty target clears the wing, moving the user outside every wing
	// scope. Only a global admin may unassign.
	if adminWing == nil || *target != *adminWing {
		return apperror.ErrForbidden
	}
	return nil
}

func wingsEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
