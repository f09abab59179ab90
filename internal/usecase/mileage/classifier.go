package mileage

import (
	"context"
	"math"
	"sort"
	"sync"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	"fleet-mileage-monitor/internal/logger"

	"go.uber.org/zap"
)

// DefaultRanges returns the built-in bands for a range table.
func DefaultRanges(category domainMileage.Category) []domainMileage.RangeInput {
	switch category.RangeTable() {
	case domainMileage.CategoryMonthlyTotal:
		return []domainMileage.RangeInput{
			{Name: "low use", Min: 0, Max: 1500, Order: 1},
			{Name: "medium use", Min: 1500.01, Max: 3500, Order: 2},
			{Name: "high use", Min: 3500.01, Max: 5500, Order: 3},
		}
	default:
		return []domainMileage.RangeInput{
			{Name: "low use", Min: 0, Max: 375, Order: 1},
			{Name: "medium use", Min: 375.01, Max: 750, Order: 2},
			{Name: "high use", Min: 750.01, Max: 1375, Order: 3},
		}
	}
}

// RangeCache keeps range tables in memory per process. It is shared between
// the classifier and the threshold service, which invalidates it on update.
// Every invalidation bumps the table's generation; a load that started under
// an older generation is not cached.
type RangeCache struct {
	mu          sync.RWMutex
	tables      map[domainMileage.Category][]domainMileage.ClassificationRange
	generations map[domainMileage.Category]uint64
}

func NewRangeCache() *RangeCache {
	return &RangeCache{
		tables:      make(map[domainMileage.Category][]domainMileage.ClassificationRange),
		generations: make(map[domainMileage.Category]uint64),
	}
}

func (c *RangeCache) Get(category domainMileage.Category) ([]domainMileage.ClassificationRange, bool) {
	ranges, _, ok := c.lookup(category)
	return ranges, ok
}

// lookup returns the cached table together with the generation it belongs
// to. On a miss the generation is the one a subsequent load must match.
func (c *RangeCache) lookup(category domainMileage.Category) ([]domainMileage.ClassificationRange, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ranges, ok := c.tables[category]
	return ranges, c.generations[category], ok
}

func (c *RangeCache) Generation(category domainMileage.Category) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[category.RangeTable()]
}

func (c *RangeCache) Set(category domainMileage.Category, ranges []domainMileage.ClassificationRange) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[category] = ranges
}

// SetIfGeneration stores ranges only if category has not been invalidated
// since generation was read.
func (c *RangeCache) SetIfGeneration(category domainMileage.Category, generation uint64, ranges []domainMileage.ClassificationRange) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[category] != generation {
		return false
	}
	c.tables[category] = ranges
	return true
}

func (c *RangeCache) Invalidate(category domainMileage.Category) {
	table := category.RangeTable()
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tables, table)
	c.generations[table]++
}

// Classifier resolves usage bands against the stored range tables.
type Classifier struct {
	repo  domainMileage.RangeRepository
	cache *RangeCache
}

func NewClassifier(repo domainMileage.RangeRepository, cache *RangeCache) *Classifier {
	if cache == nil {
		cache = NewRangeCache()
	}
	return &Classifier{repo: repo, cache: cache}
}

// Ranges returns the effective table for category, seeding the defaults the
// first time a table is found empty. Storage failures fall back to the
// in-memory defaults without caching them.
func (c *Classifier) Ranges(ctx context.Context, category domainMileage.Category) []domainMileage.ClassificationRange {
	table := category.RangeTable()
	cached, generation, ok := c.cache.lookup(table)
	if ok {
		return cached
	}

	ranges, err := c.repo.ListRanges(ctx, table)
	if err != nil {
		logger.Warn("Failed to load classification ranges, using defaults",
			zap.String("category", string(table)),
			zap.Error(err),
		)
		return domainMileage.NormalizeRanges(table, DefaultRanges(table))
	}

	if len(ranges) == 0 {
		ranges, err = c.repo.ReplaceRanges(ctx, table, DefaultRanges(table))
		if err != nil {
			logger.Warn("Failed to persist default classification ranges",
				zap.String("category", string(table)),
				zap.Error(err),
			)
			return domainMileage.NormalizeRanges(table, DefaultRanges(table))
		}
		logger.Info("Default classification ranges created",
			zap.String("category", string(table)),
			zap.String("event", "ranges_seeded"),
		)
	}

	ranges = sortedRanges(ranges)
	if !c.cache.SetIfGeneration(table, generation, ranges) {
		logger.Debug("Classification ranges changed while loading, not caching",
			zap.String("category", string(table)),
		)
	}
	return ranges
}

// Classify labels value under category. It never fails.
func (c *Classifier) Classify(ctx context.Context, category domainMileage.Category, value float64) string {
	return ClassifyValue(c.Ranges(ctx, category), value)
}

// snapshotAttempts bounds how often Snapshot rereads when a table is
// replaced while it is being read.
const snapshotAttempts = 3

// Snapshot freezes the tables of every category for one report generation,
// so threshold updates made while it runs are not observed. Both tables are
// read under unchanged generations; after snapshotAttempts tries the last
// read is used as is.
func (c *Classifier) Snapshot(ctx context.Context) *RangeSnapshot {
	var snapshot *RangeSnapshot
	for attempt := 1; attempt <= snapshotAttempts; attempt++ {
		weeklyGen := c.cache.Generation(domainMileage.CategoryWeekly)
		monthlyGen := c.cache.Generation(domainMileage.CategoryMonthlyTotal)

		snapshot = &RangeSnapshot{
			weekly:       c.Ranges(ctx, domainMileage.CategoryWeekly),
			monthlyTotal: c.Ranges(ctx, domainMileage.CategoryMonthlyTotal),
		}

		if c.cache.Generation(domainMileage.CategoryWeekly) == weeklyGen &&
			c.cache.Generation(domainMileage.CategoryMonthlyTotal) == monthlyGen {
			return snapshot
		}
		logger.Debug("Classification ranges changed during snapshot, rereading",
			zap.Int("attempt", attempt),
		)
	}
	return snapshot
}

type RangeSnapshot struct {
	weekly       []domainMileage.ClassificationRange
	monthlyTotal []domainMileage.ClassificationRange
}

func (s *RangeSnapshot) Classify(category domainMileage.Category, value float64) string {
	if category.RangeTable() == domainMileage.CategoryMonthlyTotal {
		return ClassifyValue(s.monthlyTotal, value)
	}
	return ClassifyValue(s.weekly, value)
}

// ClassifyValue clamps negatives to zero, rounds to two decimals and returns
// the label of the first range containing the value.
func ClassifyValue(ranges []domainMileage.ClassificationRange, value float64) string {
	if value < 0 || math.IsNaN(value) {
		value = 0
	}
	value = math.Round(value*100) / 100

	for _, r := range ranges {
		if r.Contains(value) {
			return r.Label
		}
	}
	return domainMileage.LabelUnclassified
}

func sortedRanges(ranges []domainMileage.ClassificationRange) []domainMileage.ClassificationRange {
	out := make([]domainMileage.ClassificationRange, len(ranges))
	copy(out, ranges)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
