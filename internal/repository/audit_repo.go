package repository

import (
	"context"

	"github.com/wingops/wingscore/internal/model"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Append(ctx context.Context, action *model.AccountAction) error
	FindRecent(ctx context.Context, wing *string, limit int) ([]*model.AccountAction, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(ctx context.Context, action *model.AccountAction) error {
	return r.db.WithContext(ctx).Create(action).Error
}

func (r *auditRepository) FindRecent(ctx context.Context, wing *string, limit int) ([]*model.AccountAction, error) {
	var actions []*model.AccountAction
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if wing != nil {
		query = query.Where("user_wing = ?", *wing)
	}
	if err := query.Find(&actions).Error; err != nil {
		return nil, err
	}

	return actions, nil
}
