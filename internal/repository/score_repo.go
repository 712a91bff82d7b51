package repository

import (
	"context"

	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreRepository interface {
	// Accumulate atomically adds value to the (user, exercise) score, creating
	// the row if absent. Concurrent submissions must not lose updates, so the
	// increment happens in the upsert itself, never read-modify-write.
	Accumulate(ctx context.Context, userID, exerciseID uint, value int) error
	FindByUser(ctx context.Context, userID uint) ([]*model.Score, error)
	Delete(ctx context.Context, id uint) error
	DeleteByUser(ctx context.Context, userID uint) error
	Leaderboard(ctx context.Context, exerciseID uint, wing *string) ([]dto.LeaderboardEntry, error)
	Summary(ctx context.Context, wing *string) ([]dto.SummaryEntry, error)
	ReassignOwner(tx *gorm.DB, sourceID, targetID uint) error
}

type scoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Accumulate(ctx context.Context, userID, exerciseID uint, value int) error {
	score := model.Score{
		UserID:     userID,
		ExerciseID: exerciseID,
		Value:      value,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "exercise_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value": gorm.Expr("scores.value + excluded.value"),
		}),
	}).Create(&score).Error
}

func (r *scoreRepository) FindByUser(ctx context.Context, userID uint) ([]*model.Score, error) {
	var scores []*model.Score
	if err := r.db.WithContext(ctx).
		Preload("Exercise").
		Where("user_id = ?", userID).
		Find(&scores).Error; err != nil {
		return nil, err
	}

	return scores, nil
}

func (r *scoreRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Score{}, "id = ?", id).Error
}

func (r *scoreRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Delete(&model.Score{}, "user_id = ?", userID).Error
}

func (r *scoreRepository) Leaderboard(ctx context.Context, exerciseID uint, wing *string) ([]dto.LeaderboardEntry, error) {
	var entries []dto.LeaderboardEntry

	query := r.db.WithContext(ctx).
		Table("scores").
		Select("scores.user_id, users.name, users.wing, scores.value").
		Joins("JOIN users ON users.id = scores.user_id").
		Where("scores.exercise_id = ?", exerciseID)
	if wing != nil {
		query = query.Where("users.wing = ?", *wing)
	}
	if err := query.Order("scores.value DESC, users.name").Scan(&entries).Error; err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Position = i + 1
	}

	return entries, nil
}

// Summary ranks users by total reps across exercises. The aggregation takes
// the max per (user, exercise) before summing, which is the read-time
// counterpart of the accumulate-on-write submission semantic.
func (r *scoreRepository) Summary(ctx context.Context, wing *string) ([]dto.SummaryEntry, error) {
	var entries []dto.SummaryEntry

	query := `
		SELECT m.user_id, users.name, users.wing,
		       SUM(m.best) AS total, COUNT(*) AS exercises
		FROM (
			SELECT user_id, exercise_id, MAX(value) AS best
			FROM scores
			GROUP BY user_id, exercise_id
		) m
		JOIN users ON users.id = m.user_id`
	args := []interface{}{}

	if wing != nil {
		query += ` WHERE users.wing = ?`
		args = append(args, *wing)
	}
	query += `
		GROUP BY m.user_id, users.name, users.wing
		ORDER BY total DESC, users.name`

	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&entries).Error; err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Position = i + 1
	}

	return entries, nil
}

// ReassignOwner moves every score from source to target within the caller's
// transaction. When both sides hold a score for the same exercise the values
// are summed, consistent with the accumulate submission semantic.
func (r *scoreRepository) ReassignOwner(tx *gorm.DB, sourceID, targetID uint) error {
	var scores []model.Score
	if err := tx.Where("user_id = ?", sourceID).Find(&scores).Error; err != nil {
		return err
	}

	for _, s := range scores {
		moved := model.Score{
			UserID:     targetID,
			ExerciseID: s.ExerciseID,
			Value:      s.Value,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "exercise_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value": gorm.Expr("scores.value + excluded.value"),
			}),
		}).Create(&moved).Error; err != nil {
			return err
		}
	}

	return tx.Delete(&model.Score{}, "user_id = ?", sourceID).Error
}
