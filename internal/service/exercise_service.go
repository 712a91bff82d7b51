package service

import (
	"context"
	"errors"
	"strings"

	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/model"
	"github.com/wingops/wingscore/internal/repository"
	"github.com/wingops/wingscore/pkg/apperror"
	"gorm.io/gorm"
)

type ExerciseService interface {
	Create(ctx context.Context, input dto.ExerciseInput) (*model.Exercise, error)
	Update(ctx context.Context, id uint, input dto.ExerciseInput) (*model.Exercise, error)
	List(ctx context.Context) ([]*model.Exercise, error)
	// Delete removes the exercise and cascades its scores.
	Delete(ctx context.Context, id uint) error
}

type exerciseService struct {
	repo repository.ExerciseRepository
}

func NewExerciseService(repo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{repo: repo}
}

func (s *exerciseService) Create(ctx context.Context, input dto.ExerciseInput) (*model.Exercise, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.ErrInvalidInput
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, apperror.ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	exType := input.Type
	if exType == "" {
		exType = model.ExerciseTypeRep
	}

	exercise := &model.Exercise{Name: name, Type: exType}
	if err := s.repo.Create(ctx, exercise); err != nil {
		return nil, err
	}

	return exercise, nil
}

func (s *exerciseService) Update(ctx context.Context, id uint, input dto.ExerciseInput) (*model.Exercise, error) {
	exercise, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.ErrInvalidInput
	}
	if other, err := s.repo.FindByName(ctx, name); err == nil && other.ID != id {
		return nil, apperror.ErrConflict
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	exercise.Name = name
	if input.Type != "" {
		exercise.Type = input.Type
	}
	if err := s.repo.Update(ctx, exercise); err != nil {
		return nil, err
	}

	return exercise, nil
}

func (s *exerciseService) List(ctx context.Context) ([]*model.Exercise, error) {
	return s.repo.FindAll(ctx)
}

func (s *exerciseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
