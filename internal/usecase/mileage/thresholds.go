package mileage

import (
	"context"

	"go.uber.org/zap"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	"fleet-mileage-monitor/internal/logger"
	appErrors "fleet-mileage-monitor/pkg/errors"
	"fleet-mileage-monitor/pkg/utils"
)

// ThresholdPublisher tells peer instances that a range table changed.
type ThresholdPublisher interface {
	PublishThresholdsUpdated(ctx context.Context, category domainMileage.Category) error
}

// ThresholdService administers the classification range tables.
type ThresholdService struct {
	repo       domainMileage.RangeRepository
	classifier *Classifier
	cache      *RangeCache
	publisher  ThresholdPublisher
}

func NewThresholdService(repo domainMileage.RangeRepository, classifier *Classifier, cache *RangeCache, publisher ThresholdPublisher) *ThresholdService {
	return &ThresholdService{
		repo:       repo,
		classifier: classifier,
		cache:      cache,
		publisher:  publisher,
	}
}

// GetThresholds returns the effective table, materialising defaults if needed.
func (s *ThresholdService) GetThresholds(ctx context.Context, rawCategory string) (*ThresholdsResponse, error) {
	category, err := domainMileage.ParseCategory(rawCategory)
	if err != nil {
		return nil, err
	}
	return ToThresholdsResponse(category, s.classifier.Ranges(ctx, category)), nil
}

// UpdateThresholds replaces a whole table in one transaction and drops the
// cached copy before returning.
func (s *ThresholdService) UpdateThresholds(ctx context.Context, rawCategory string, req *UpdateThresholdsRequest) (*ThresholdsResponse, error) {
	category, err := domainMileage.ParseCategory(rawCategory)
	if err != nil {
		return nil, err
	}
	if !category.Configurable() {
		return nil, domainMileage.ErrCategoryNotConfigurable
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}
	for i := range req.Ranges {
		req.Ranges[i].Name = utils.SanitizeString(req.Ranges[i].Name)
	}

	ranges, err := s.repo.ReplaceRanges(ctx, category, req.Ranges)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(category)

	logger.Info("Classification ranges replaced",
		zap.String("category", string(category)),
		zap.Int("ranges", len(ranges)),
		zap.String("event", "thresholds_updated"),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishThresholdsUpdated(ctx, category); err != nil {
			logger.Warn("Failed to broadcast threshold update",
				zap.String("category", string(category)),
				zap.Error(err),
			)
		}
	}

	return ToThresholdsResponse(category, ranges), nil
}
