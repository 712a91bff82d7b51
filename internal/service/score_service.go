package service

import (
	"context"
	"errors"

	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/model"
	"github.com/wingops/wingscore/internal/repository"
	"github.com/wingops/wingscore/pkg/apperror"
	"gorm.io/gorm"
)

type ScoreService interface {
	// Submit adds value to the caller's running total for the exercise.
	// Re-submitting accumulates; that is the intended "total reps across
	// sessions" semantic, not a bug.
	Submit(ctx context.Context, userID uint, input dto.SubmitScoreInput) error
	MyScores(ctx context.Context, userID uint) ([]*model.Score, error)
	Leaderboard(ctx context.Context, exerciseID uint, wing *string) ([]dto.LeaderboardEntry, error)
	Summary(ctx context.Context, wing *string) ([]dto.SummaryEntry, error)
}

type scoreService struct {
	scores    repository.ScoreRepository
	exercises repository.ExerciseRepository
}

func NewScoreService(scores repository.ScoreRepository, exercises repository.ExerciseRepository) ScoreService {
	return &scoreService{scores: scores, exercises: exercises}
}

func (s *scoreService) Submit(ctx context.Context, userID uint, input dto.SubmitScoreInput) error {
	if input.Value < 0 {
		return apperror.ErrInvalidInput
	}

	if _, err := s.exercises.FindByID(ctx, input.ExerciseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	return s.scores.Accumulate(ctx, userID, input.ExerciseID, input.Value)
}

func (s *scoreService) MyScores(ctx context.Context, userID uint) ([]*model.Score, error) {
	return s.scores.FindByUser(ctx, userID)
}

func (s *scoreService) Leaderboard(ctx context.Context, exerciseID uint, wing *string) ([]dto.LeaderboardEntry, error) {
	return s.scores.Leaderboard(ctx, exerciseID, wing)
}

func (s *scoreService) Summary(ctx context.Context, wing *string) ([]dto.SummaryEntry, error) {
	return s.scores.Summary(ctx, wing)
}
