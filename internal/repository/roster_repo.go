package repository

import (
	"context"

	"github.com/wingops/wingscore/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RosterRepository interface {
	Upsert(ctx context.Context, name, wing string) error
	Remove(ctx context.Context, name, wing string) error
	FindByWing(ctx context.Context, wing string) ([]*model.RosterEntry, error)
	FindWings(ctx context.Context) ([]*model.Wing, error)
	CreateWing(ctx context.Context, name string) error
}

type rosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) RosterRepository {
	return &rosterRepository{db: db}
}

func (r *rosterRepository) Upsert(ctx context.Context, name, wing string) error {
	entry := model.RosterEntry{Name: name, Wing: wing}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "wing"}},
		DoNothing: true,
	}).Create(&entry).Error
}

func (r *rosterRepository) Remove(ctx context.Context, name, wing string) error {
	return r.db.WithContext(ctx).
		Delete(&model.RosterEntry{}, "name = ? AND wing = ?", name, wing).Error
}

func (r *rosterRepository) FindByWing(ctx context.Context, wing string) ([]*model.RosterEntry, error) {
	var entries []*model.RosterEntry
	if err := r.db.WithContext(ctx).
		Where("wing = ?", wing).
		Order("name").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *rosterRepository) FindWings(ctx context.Context) ([]*model.Wing, error) {
	var wings []*model.Wing
	if err := r.db.WithContext(ctx).Order("name").Find(&wings).Error; err != nil {
		return nil, err
	}

	return wings, nil
}

func (r *rosterRepository) CreateWing(ctx context.Context, name string) error {
	wing := model.Wing{Name: name}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&wing).Error
}
