package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	"fleet-mileage-monitor/internal/infrastructure/database/postgres/models"
)

// RangeRepository implements domainMileage.RangeRepository
type RangeRepository struct {
	db *DB
}

func NewRangeRepository(db *DB) domainMileage.RangeRepository {
	return &RangeRepository{db: db}
}

func (r *RangeRepository) ListRanges(ctx context.Context, category domainMileage.Category) ([]domainMileage.ClassificationRange, error) {
	var dbModels []models.ClassificationRangeModel
	err := r.db.DB.WithContext(ctx).
		Where("category = ?", string(category)).
		Order("sort_order ASC").
		Order("id ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list classification ranges: %w", err)
	}

	ranges := make([]domainMileage.ClassificationRange, len(dbModels))
	for i := range dbModels {
		ranges[i] = toRangeEntity(&dbModels[i])
	}
	return ranges, nil
}

// ReplaceRanges deletes every row of category and inserts the normalised
// inputs in one transaction.
func (r *RangeRepository) ReplaceRanges(ctx context.Context, category domainMileage.Category, inputs []domainMileage.RangeInput) ([]domainMileage.ClassificationRange, error) {
	ranges := domainMileage.NormalizeRanges(category, inputs)
	now := time.Now()

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category = ?", string(category)).
			Delete(&models.ClassificationRangeModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear classification ranges: %w", err)
		}

		for i := range ranges {
			dbModel := &models.ClassificationRangeModel{
				Category:  string(category),
				Name:      ranges[i].Label,
				Min:       ranges[i].Min,
				Max:       ranges[i].Max,
				SortOrder: ranges[i].Order,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(dbModel).Error; err != nil {
				return fmt.Errorf("failed to insert classification range %q: %w", ranges[i].Label, err)
			}
			ranges[i].ID = dbModel.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ranges, nil
}

func toRangeEntity(m *models.ClassificationRangeModel) domainMileage.ClassificationRange {
	return domainMileage.ClassificationRange{
		ID:       m.ID,
		Category: domainMileage.Category(m.Category),
		Label:    m.Name,
		Min:      m.Min,
		Max:      m.Max,
		Order:    m.SortOrder,
	}
}
