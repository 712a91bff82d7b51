package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/model"
	"github.com/wingops/wingscore/internal/repository"
	"github.com/wingops/wingscore/pkg/apperror"
	"gorm.io/gorm"
)

type RosterService interface {
	Wings(ctx context.Context) ([]*model.Wing, error)
	Names(ctx context.Context, wing string) ([]*model.RosterEntry, error)
	// Upload imports a CSV of names under the given wing. Rows are processed
	// independently: a bad row lands in the error list, the rest go through.
	Upload(ctx context.Context, wing string, file io.Reader) (*dto.RosterUploadResult, error)
}

type rosterService struct {
	roster repository.RosterRepository
	users  repository.UserRepository
}

func NewRosterService(roster repository.RosterRepository, users repository.UserRepository) RosterService {
	return &rosterService{roster: roster, users: users}
}

func (s *rosterService) Wings(ctx context.Context) ([]*model.Wing, error) {
	return s.roster.FindWings(ctx)
}

func (s *rosterService) Names(ctx context.Context, wing string) ([]*model.RosterEntry, error) {
	if strings.TrimSpace(wing) == "" {
		return nil, apperror.ErrInvalidInput
	}
	return s.roster.FindByWing(ctx, wing)
}

func (s *rosterService) Upload(ctx context.Context, wing string, file io.Reader) (*dto.RosterUploadResult, error) {
	wing = strings.TrimSpace(wing)
	if wing == "" {
		return nil, apperror.ErrInvalidInput
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &dto.RosterUploadResult{Errors: []string{}}
	line := 0
	wingRegistered := false
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		// Register the wing in the selection dropdowns once the file is known
		// to be non-empty; a rejected empty upload must leave no trace.
		if !wingRegistered {
			if err := s.roster.CreateWing(ctx, wing); err != nil {
				return nil, err
			}
			wingRegistered = true
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if len(record) == 0 {
			continue
		}

		name := normalizeName(record[0])
		if name == "" {
			continue
		}
		// Tolerate an optional header row.
		if line == 1 && strings.EqualFold(name, "name") {
			continue
		}

		created, err := s.importRow(ctx, name, wing)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d (%s): %v", line, name, err))
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	if line == 0 {
		return nil, apperror.New(0, "uploaded file is empty", apperror.ErrInvalidInput)
	}

	return result, nil
}

// importRow provisions one roster name: a passwordless user plus the roster
// index entry. Existing users are left untouched.
func (s *rosterService) importRow(ctx context.Context, name, wing string) (created bool, err error) {
	_, err = s.users.FindByNameAndWing(ctx, name, wing)
	switch {
	case err == nil:
		if err := s.roster.Upsert(ctx, name, wing); err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to create
	default:
		return false, err
	}

	w := wing
	user := &model.User{Name: name, Wing: &w}
	if err := s.users.Create(ctx, user); err != nil {
		return false, err
	}
	if err := s.roster.Upsert(ctx, name, wing); err != nil {
		return false, err
	}

	return true, nil
}
