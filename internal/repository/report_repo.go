package repository

import (
	"context"

	"github.com/wingops/wingscore/internal/model"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	FindByID(ctx context.Context, id uint) (*model.Report, error)
	FindAll(ctx context.Context, wing *string, status *string) ([]*model.Report, error)
	Update(ctx context.Context, report *model.Report) error
	Delete(ctx context.Context, id uint) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uint) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *reportRepository) FindAll(ctx context.Context, wing *string, status *string) ([]*model.Report, error) {
	var reports []*model.Report
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if wing != nil {
		query = query.Where("wing = ?", *wing)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *reportRepository) Update(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Report{}, "id = ?", id).Error
}
