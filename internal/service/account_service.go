package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wingops/wingscore/internal/auth"
	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/model"
	"github.com/wingops/wingscore/internal/repository"
	"github.com/wingops/wingscore/pkg/apperror"
	"github.com/wingops/wingscore/pkg/token"
	"gorm.io/gorm"
)

const minPasswordLength = 4

type AccountService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	SetPassword(ctx context.Context, input dto.SetPasswordInput) (*dto.AuthResponse, error)
	ChangePassword(ctx context.Context, userID uint, input dto.ChangePasswordInput) error
	Logout(ctx context.Context, userID uint)
	DeleteAccount(ctx context.Context, userID uint) error
}

type accountService struct {
	users  repository.UserRepository
	roster repository.RosterRepository
	hasher *auth.Hasher
	codec  token.Codec
	audit  AuditService

	sessionTTL    time.Duration
	rememberMeTTL time.Duration
}

func NewAccountService(
	users repository.UserRepository,
	roster repository.RosterRepository,
	hasher *auth.Hasher,
	codec token.Codec,
	audit AuditService,
	sessionTTL, rememberMeTTL time.Duration,
) AccountService {
	return &accountService{
		users:         users,
		roster:        roster,
		hasher:        hasher,
		codec:         codec,
		audit:         audit,
		sessionTTL:    sessionTTL,
		rememberMeTTL: rememberMeTTL,
	}
}

// Register creates an account for (name, wing) or claims an existing
// passwordless one. A row that already has a password is the "should login"
// outcome, not a hard failure.
func (s *accountService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	name := normalizeName(input.Name)
	wing := strings.TrimSpace(input.Wing)
	if name == "" || wing == "" {
		return nil, apperror.ErrInvalidInput
	}
	if err := checkPasswordLength(input.Password); err != nil {
		return nil, err
	}

	now := time.Now()
	hashed := s.hasher.Hash(input.Password)

	existing, err := s.users.FindByNameAndWing(ctx, name, wing)
	switch {
	case err == nil:
		if existing.HasPassword() {
			return nil, apperror.ErrAlreadyRegistered
		}
		// Claim the roster-imported row: same identity, password attached.
		existing.PasswordHash = &hashed
		existing.HasLoggedIn = true
		existing.PasswordChangedAt = &now
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.audit.Record(ctx, existing, model.ActionAccountClaimed, "claimed via registration")
		return s.buildAuthResponse(existing, input.RememberMe)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to create
	default:
		return nil, err
	}

	user := &model.User{
		Name:              name,
		Wing:              &wing,
		PasswordHash:      &hashed,
		HasLoggedIn:       true,
		PasswordChangedAt: &now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.roster.Upsert(ctx, name, wing); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, user, model.ActionLogin, "self-registration")
	return s.buildAuthResponse(user, input.RememberMe)
}

func (s *accountService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	name := normalizeName(input.Name)
	wing := strings.TrimSpace(input.Wing)

	user, err := s.users.FindByNameAndWing(ctx, name, wing)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.HasPassword() {
		return nil, apperror.ErrNeedsPassword
	}
	if !s.hasher.Verify(input.Password, *user.PasswordHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	if !user.HasLoggedIn {
		user.HasLoggedIn = true
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, user, model.ActionLogin, "")
	return s.buildAuthResponse(user, input.RememberMe)
}

// SetPassword is the claim path for roster-imported rows that have no
// password yet. Accounts that already hold one must go through login and
// change-password instead.
func (s *accountService) SetPassword(ctx context.Context, input dto.SetPasswordInput) (*dto.AuthResponse, error) {
	if input.Password != input.ConfirmPassword {
		return nil, apperror.New(0, "password confirmation does not match", apperror.ErrInvalidInput)
	}
	if err := checkPasswordLength(input.Password); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if user.HasPassword() {
		return nil, apperror.ErrAlreadyRegistered
	}

	now := time.Now()
	hashed := s.hasher.Hash(input.Password)
	user.PasswordHash = &hashed
	user.HasLoggedIn = true
	user.PasswordChangedAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, user, model.ActionAccountClaimed, "")
	return s.buildAuthResponse(user, false)
}

func (s *accountService) ChangePassword(ctx context.Context, userID uint, input dto.ChangePasswordInput) error {
	if err := checkPasswordLength(input.NewPassword); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	if !user.HasPassword() || !s.hasher.Verify(input.CurrentPassword, *user.PasswordHash) {
		return apperror.ErrInvalidCredentials
	}

	now := time.Now()
	hashed := s.hasher.Hash(input.NewPassword)
	user.PasswordHash = &hashed
	user.PasswordChangedAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.audit.Record(ctx, user, model.ActionPasswordChanged, "")
	return nil
}

func (s *accountService) Logout(ctx context.Context, userID uint) {
	// Tokens are stateless so there is nothing to revoke; logout exists for
	// the audit trail.
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return
	}
	s.audit.Record(ctx, user, model.ActionLogout, "")
}

// DeleteAccount is the self-service equivalent of an admin ban: scores,
// roster entry and the user row are all removed.
func (s *accountService) DeleteAccount(ctx context.Context, userID uint) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.users.Purge(ctx, user); err != nil {
		return err
	}

	name := user.Name
	s.audit.RecordSnapshot(ctx, &name, user.Wing, model.ActionAccountDeleted, "self-service deletion")
	return nil
}

func (s *accountService) buildAuthResponse(user *model.User, rememberMe bool) (*dto.AuthResponse, error) {
	ttl := s.sessionTTL
	if rememberMe {
		ttl = s.rememberMeTTL
	}

	signed, err := s.codec.Issue(token.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Wing:   user.Wing,
	}, ttl)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = nil

	return &dto.AuthResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		User:        user,
	}, nil
}

func checkPasswordLength(password string) error {
	if len(password) < minPasswordLength {
		return apperror.New(0, fmt.Sprintf("password must be at least %d characters", minPasswordLength), apperror.ErrInvalidInput)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
