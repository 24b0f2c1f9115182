package repositories

import (
	"context"
	"errors"

	"martylabs/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IFlowRepository interface {
	GetByID(ctx context.Context, flowID uuid.UUID) (*db_models.Flow, error)
	GetBySlug(ctx context.Context, slug string) (*db_models.Flow, error)
	ListActive(ctx context.Context, category string) ([]db_models.Flow, error)
	Count(ctx context.Context) (int64, error)
	Upsert(ctx context.Context, flow *db_models.Flow) error
}

type FlowRepository struct {
	db *gorm.DB
}

func NewFlowRepository(db *gorm.DB) IFlowRepository {
	return &FlowRepository{db: db}
}

func (f *FlowRepository) GetByID(ctx context.Context, flowID uuid.UUID) (*db_models.Flow, error) {
	var flow db_models.Flow
	err := f.db.WithContext(ctx).First(&flow, "id = ?", flowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flow, nil
}

func (f *FlowRepository) GetBySlug(ctx context.Context, slug string) (*db_models.Flow, error) {
	var flow db_models.Flow
	err := f.db.WithContext(ctx).First(&flow, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flow, nil
}

func (f *FlowRepository) ListActive(ctx context.Context, category string) ([]db_models.Flow, error) {
	q := f.db.WithContext(ctx).Where("is_active = TRUE")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var flows []db_models.Flow
	if err := q.Order("sort_order ASC").Find(&flows).Error; err != nil {
		return nil, err
	}
	return flows, nil
}

func (f *FlowRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := f.db.WithContext(ctx).Model(&db_models.Flow{}).Count(&count).Error
	return count, err
}

func (f *FlowRepository) Upsert(ctx context.Context, flow *db_models.Flow) error {
	existing, err := f.GetBySlug(ctx, flow.Slug)
	if err != nil {
		return err
	}
	if existing != nil {
		flow.ID = existing.ID
		flow.CreatedAt = existing.CreatedAt
		return f.db.WithContext(ctx).Save(flow).Error
	}
	return f.db.WithContext(ctx).Create(flow).Error
}
