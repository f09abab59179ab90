package mileage

import "context"

//go:generate mockgen -destination=../../mocks/mock_mileage.go -package=mocks fleet-mileage-monitor/internal/domain/mileage DistanceProvider,RangeRepository

// ReportRequest is one distance report query sent to the provider.
type ReportRequest struct {
	DeviceIDs []int64
	DateFrom  string // YYYY-MM-DD
	DateTo    string // YYYY-MM-DD
	TimeFrom  string // HH:MM:SS
	TimeTo    string // HH:MM:SS
	Title     string
	Extra     map[string]any
}

// ReportItem is one raw per-device entry of a provider report, still textual.
type ReportItem struct {
	DeviceIDRaw string
	DeviceName  string
	DistanceRaw string
}

type ReportResponse struct {
	Items []ReportItem
}

// DistanceProvider is the transport to the GPS tracking provider.
type DistanceProvider interface {
	GenerateKmReport(ctx context.Context, req ReportRequest) (*ReportResponse, error)
}

// RangeRepository stores classification range tables.
type RangeRepository interface {
	ListRanges(ctx context.Context, category Category) ([]ClassificationRange, error)
	// ReplaceRanges atomically swaps the full table of category.
	ReplaceRanges(ctx context.Context, category Category, inputs []RangeInput) ([]ClassificationRange, error)
}
