package mileage

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Category names a classification range table.
type Category string

const (
	CategoryWeekly         Category = "weekly"
	CategoryMonthlyTotal   Category = "monthly-total"
	CategoryMonthlyAverage Category = "monthly-average"
)

// LabelUnclassified is returned when no configured range contains a value.
const LabelUnclassified = "unclassified"

func ParseCategory(raw string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(raw))); c {
	case CategoryWeekly, CategoryMonthlyTotal, CategoryMonthlyAverage:
		return c, nil
	default:
		return "", ErrInvalidCategory
	}
}

// RangeTable returns the category whose table is used to classify c.
// Monthly averages are judged against the weekly bands.
func (c Category) RangeTable() Category {
	if c == CategoryMonthlyAverage {
		return CategoryWeekly
	}
	return c
}

// Configurable reports whether c owns a range table of its own.
func (c Category) Configurable() bool {
	return c == CategoryWeekly || c == CategoryMonthlyTotal
}

// ClassificationRange is one named band of a category table.
type ClassificationRange struct {
	ID       int64
	Category Category
	Label    string
	Min      float64
	Max      float64
	Order    int
}

func (r ClassificationRange) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

// RangeInput is a row submitted to replace a category table.
type RangeInput struct {
	Name  string  `json:"name" validate:"max=50"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Order int     `json:"order" validate:"min=0"`
}

// NormalizeRanges drops rows with blank or repeated names, swaps inverted
// bounds and returns the rows ordered by Order (input position breaks ties).
func NormalizeRanges(category Category, inputs []RangeInput) []ClassificationRange {
	ranges := make([]ClassificationRange, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		lo, hi := in.Min, in.Max
		if lo > hi {
			lo, hi = hi, lo
		}

		ranges = append(ranges, ClassificationRange{
			Category: category,
			Label:    name,
			Min:      lo,
			Max:      hi,
			Order:    in.Order,
		})
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].Order < ranges[j].Order
	})

	return ranges
}

// WeekWindow is one logical reporting week inside a requested range.
type WeekWindow struct {
	Start    time.Time
	End      time.Time
	Sequence int
}

// Days counts the calendar days touched by the window, both ends inclusive.
func (w WeekWindow) Days() int {
	return CalendarDays(w.Start, w.End)
}

// CalendarDays returns the number of calendar dates between start and end,
// inclusive of both endpoints.
func CalendarDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Floor(e.Sub(s).Hours()/24)) + 1
}

// DeviceDistanceRecord is one device's distance for one provider query.
type DeviceDistanceRecord struct {
	DeviceID    int64
	DistanceKm  float64
	DisplayName *string
}

// ReportMode selects weekly detail or a single monthly aggregate.
type ReportMode string

const (
	ModeWeekly  ReportMode = "weekly"
	ModeMonthly ReportMode = "monthly"
)

// WeekDistance is the per-window part of a weekly report row.
type WeekDistance struct {
	Number     int       `json:"number"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	DistanceKm float64   `json:"distance_km"`
	Label      string    `json:"classification"`
}

// VehicleReportRow is the unit consumed by the export layer.
type VehicleReportRow struct {
	DeviceID         int64   `json:"device_id"`
	Code             *int64  `json:"code"`
	DisplayName      *string `json:"display_name"`
	Brand            *string `json:"brand"`
	Class            *string `json:"class"`
	Model            *string `json:"model"`
	Type             *string `json:"type"`
	Year             *int    `json:"year"`
	Plate            *string `json:"plate"`
	Area             *string `json:"area"`
	ResponsibleParty *string `json:"responsible_party"`
	ManagementGroup  *string `json:"management_group"`
	MonthLabel       string  `json:"month_label"`

	Weeks []WeekDistance `json:"weeks,omitempty"`

	MonthlyTotalKm      float64 `json:"monthly_total_km"`
	MonthlyTotalLabel   string  `json:"monthly_total_classification"`
	MonthlyAverageKm    float64 `json:"monthly_average_km"`
	MonthlyAverageLabel string  `json:"monthly_average_classification"`
	Conclusion          string  `json:"conclusion"`
}
