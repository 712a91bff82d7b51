package repository

import (
	"context"

	"github.com/wingops/wingscore/internal/model"
	"gorm.io/gorm"
)

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *model.Exercise) error
	FindByID(ctx context.Context, id uint) (*model.Exercise, error)
	FindByName(ctx context.Context, name string) (*model.Exercise, error)
	FindAll(ctx context.Context) ([]*model.Exercise, error)
	Update(ctx context.Context, exercise *model.Exercise) error
	Delete(ctx context.Context, id uint) error
}

type exerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *model.Exercise) error {
	return r.db.WithContext(ctx).Create(exercise).Error
}

func (r *exerciseRepository) FindByID(ctx context.Context, id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&exercise).Error; err != nil {
		return nil, err
	}

	return &exercise, nil
}

func (r *exerciseRepository) FindByName(ctx context.Context, name string) (*model.Exercise, error) {
	var exercise model.Exercise
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&exercise).Error; err != nil {
		return nil, err
	}

	return &exercise, nil
}

func (r *exerciseRepository) FindAll(ctx context.Context) ([]*model.Exercise, error) {
	var exercises []*model.Exercise
	if err := r.db.WithContext(ctx).Order("name").Find(&exercises).Error; err != nil {
		return nil, err
	}

	return exercises, nil
}

func (r *exerciseRepository) Update(ctx context.Context, exercise *model.Exercise) error {
	return r.db.WithContext(ctx).Save(exercise).Error
}

// Delete removes the exercise and its scores in one transaction.
func (r *exerciseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Score{}, "exercise_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Exercise{}, "id = ?", id).Error
	})
}
