package repositories

import (
	"context"
	"errors"
	"time"

	"martylabs/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IGenerationRepository interface {
	Create(ctx context.Context, gen *db_models.Generation) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Generation, error)
	GetByIDWithFlow(ctx context.Context, id uuid.UUID) (*db_models.Generation, error)
	Update(ctx context.Context, gen *db_models.Generation) error
	ListByUser(ctx context.Context, userID string, status string, flowID *uuid.UUID, limit int) ([]db_models.Generation, error)
	CountActiveByUser(ctx context.Context, userID string) (int64, error)
	ListStuckProcessing(ctx context.Context, olderThan time.Duration) ([]db_models.Generation, error)
}

type GenerationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) IGenerationRepository {
	return &GenerationRepository{db: db}
}

func (g *GenerationRepository) Create(ctx context.Context, gen *db_models.Generation) error {
	return g.db.WithContext(ctx).Create(gen).Error
}

func (g *GenerationRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Generation, error) {
	var gen db_models.Generation
	err := g.db.WithContext(ctx).First(&gen, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &gen, nil
}

func (g *GenerationRepository) GetByIDWithFlow(ctx context.Context, id uuid.UUID) (*db_models.Generation, error) {
	var gen db_models.Generation
	err := g.db.WithContext(ctx).Preload("Flow").First(&gen, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &gen, nil
}

func (g *GenerationRepository) Update(ctx context.Context, gen *db_models.Generation) error {
	return g.db.WithContext(ctx).Save(gen).Error
}

func (g *GenerationRepository) ListByUser(ctx context.Context, userID string, status string, flowID *uuid.UUID, limit int) ([]db_models.Generation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := g.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if flowID != nil {
		q = q.Where("flow_id = ?", *flowID)
	}

	var gens []db_models.Generation
	err := q.Order("created_at DESC").Limit(limit).Find(&gens).Error
	if err != nil {
		return nil, err
	}
	return gens, nil
}

func (g *GenerationRepository) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).
		Model(&db_models.Generation{}).
		Where("user_id = ? AND status IN ?", userID,
			[]db_models.GenerationStatus{db_models.GenQueued, db_models.GenProcessing}).
		Count(&count).Error
	return count, err
}

func (g *GenerationRepository) ListStuckProcessing(ctx context.Context, olderThan time.Duration) ([]db_models.Generation, error) {
	cutoff := time.Now().Add(-olderThan).Unix()

	var gens []db_models.Generation
	err := g.db.WithContext(ctx).
		Where("status = ? AND processing_started_at IS NOT NULL AND processing_started_at < ?",
			db_models.GenProcessing, cutoff).
		Find(&gens).Error
	if err != nil {
		return nil, err
	}
	return gens, nil
}
