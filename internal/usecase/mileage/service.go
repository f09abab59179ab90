package mileage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	domainVehicle "fleet-mileage-monitor/internal/domain/vehicle"
	"fleet-mileage-monitor/internal/logger"
	"fleet-mileage-monitor/internal/observability"
)

// Service builds per-vehicle mileage reports.
type Service struct {
	vehicleRepo  domainVehicle.Repository
	gateway      *Gateway
	classifier   *Classifier
	metrics      *observability.Metrics
	maxRangeDays int
}

func NewService(vehicleRepo domainVehicle.Repository, gateway *Gateway, classifier *Classifier, metrics *observability.Metrics, maxRangeDays int) *Service {
	if maxRangeDays <= 0 {
		maxRangeDays = DefaultMaxRangeDays
	}
	return &Service{
		vehicleRepo:  vehicleRepo,
		gateway:      gateway,
		classifier:   classifier,
		metrics:      metrics,
		maxRangeDays: maxRangeDays,
	}
}

// Query is a validated report generation input.
type Query struct {
	DeviceIDs []int64
	From      time.Time
	To        time.Time
	Title     string
}

// GenerateWeekly queries the provider once per logical week and returns one
// row per requested device in input order.
func (s *Service) GenerateWeekly(ctx context.Context, q Query) (rows []domainMileage.VehicleReportRow, err error) {
	started := time.Now()
	defer func() { s.metrics.ObserveReport(domainMileage.ModeWeekly, started, err) }()

	if len(q.DeviceIDs) == 0 {
		return []domainMileage.VehicleReportRow{}, nil
	}

	windows, err := Partition(q.From, q.To)
	if err != nil {
		return nil, err
	}

	logger.Info("Generating weekly mileage report",
		zap.String("title", q.Title),
		zap.Int("devices", len(q.DeviceIDs)),
		zap.Int("windows", len(windows)),
		zap.String("event", "report_started"),
	)

	snapshot := s.classifier.Snapshot(ctx)
	index, err := s.loadIndex(ctx, q.DeviceIDs)
	if err != nil {
		return nil, err
	}

	perWindow := make([]map[int64]domainMileage.DeviceDistanceRecord, len(windows))
	for i, w := range windows {
		dateFrom, dateTo, timeFrom, timeTo := providerBounds(w)
		records, err := s.gateway.FetchDistances(ctx, FetchQuery{
			DeviceIDs: q.DeviceIDs,
			DateFrom:  dateFrom,
			DateTo:    dateTo,
			TimeFrom:  timeFrom,
			TimeTo:    timeTo,
			Label:     fmt.Sprintf("%s - week %d", q.Title, w.Sequence),
		}, index)
		if err != nil {
			logger.Error("Weekly report aborted by provider failure",
				zap.Int("week", w.Sequence),
				zap.Error(err),
			)
			return nil, fmt.Errorf("week %d: %w", w.Sequence, err)
		}
		perWindow[i] = records
	}

	monthLabel := MonthLabel(q.From)
	rows = make([]domainMileage.VehicleReportRow, 0, len(q.DeviceIDs))
	for _, deviceID := range q.DeviceIDs {
		var providerName *string
		weeks := make([]domainMileage.WeekDistance, len(windows))
		total := 0.0

		for i, w := range windows {
			distance := 0.0
			if rec, ok := perWindow[i][deviceID]; ok {
				distance = rec.DistanceKm
				if providerName == nil {
					providerName = rec.DisplayName
				}
			}
			total += distance
			weeks[i] = domainMileage.WeekDistance{
				Number:     w.Sequence,
				From:       w.Start,
				To:         w.End,
				DistanceKm: distance,
				Label:      snapshot.Classify(domainMileage.CategoryWeekly, distance),
			}
		}

		row := MergeMetadata(deviceID, providerName, index.Vehicle(deviceID))
		row.MonthLabel = monthLabel
		row.Weeks = weeks
		fillMonthly(&row, snapshot, total, len(windows))
		rows = append(rows, row)
	}

	logger.Info("Weekly mileage report generated",
		zap.String("title", q.Title),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(started)),
		zap.String("event", "report_generated"),
	)

	return rows, nil
}

// GenerateMonthly issues a single chunked provider query over the whole range.
// The logical week count is only used as the divisor of the average.
func (s *Service) GenerateMonthly(ctx context.Context, q Query) (rows []domainMileage.VehicleReportRow, err error) {
	started := time.Now()
	defer func() { s.metrics.ObserveReport(domainMileage.ModeMonthly, started, err) }()

	if len(q.DeviceIDs) == 0 {
		return []domainMileage.VehicleReportRow{}, nil
	}

	windows, err := Partition(q.From, q.To)
	if err != nil {
		return nil, err
	}

	logger.Info("Generating monthly mileage report",
		zap.String("title", q.Title),
		zap.Int("devices", len(q.DeviceIDs)),
		zap.Int("windows", len(windows)),
		zap.String("event", "report_started"),
	)

	snapshot := s.classifier.Snapshot(ctx)
	index, err := s.loadIndex(ctx, q.DeviceIDs)
	if err != nil {
		return nil, err
	}

	records, err := s.gateway.FetchDistances(ctx, FetchQuery{
		DeviceIDs: q.DeviceIDs,
		DateFrom:  q.From.Format(time.DateOnly),
		DateTo:    q.To.Format(time.DateOnly),
		TimeFrom:  q.From.Format(time.TimeOnly),
		TimeTo:    q.To.Format(time.TimeOnly),
		Label:     q.Title,
	}, index)
	if err != nil {
		logger.Error("Monthly report aborted by provider failure", zap.Error(err))
		return nil, err
	}

	monthLabel := MonthLabel(q.From)
	rows = make([]domainMileage.VehicleReportRow, 0, len(q.DeviceIDs))
	for _, deviceID := range q.DeviceIDs {
		rec, ok := records[deviceID]
		var providerName *string
		if ok {
			providerName = rec.DisplayName
		}

		row := MergeMetadata(deviceID, providerName, index.Vehicle(deviceID))
		row.MonthLabel = monthLabel
		fillMonthly(&row, snapshot, rec.DistanceKm, len(windows))
		rows = append(rows, row)
	}

	logger.Info("Monthly mileage report generated",
		zap.String("title", q.Title),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(started)),
		zap.String("event", "report_generated"),
	)

	return rows, nil
}

// Generate validates a report request and dispatches on its mode.
func (s *Service) Generate(ctx context.Context, req *GenerateReportRequest) (*ReportResponse, error) {
	q, err := ParseReportRequest(req, s.maxRangeDays)
	if err != nil {
		return nil, err
	}

	mode := domainMileage.ReportMode(req.Mode)
	var rows []domainMileage.VehicleReportRow
	if mode == domainMileage.ModeMonthly {
		rows, err = s.GenerateMonthly(ctx, *q)
	} else {
		rows, err = s.GenerateWeekly(ctx, *q)
	}
	if err != nil {
		return nil, err
	}

	return &ReportResponse{
		Title:       q.Title,
		Mode:        mode,
		From:        q.From,
		To:          q.To,
		WindowCount: WindowCount(q.From, q.To),
		Rows:        rows,
	}, nil
}

func (s *Service) loadIndex(ctx context.Context, deviceIDs []int64) (*DeviceIndex, error) {
	vehicles, err := s.vehicleRepo.ListByDeviceIDs(ctx, deviceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle metadata: %w", err)
	}
	return NewDeviceIndex(vehicles), nil
}

func fillMonthly(row *domainMileage.VehicleReportRow, snapshot *RangeSnapshot, total float64, windowCount int) {
	average := total / float64(max(1, windowCount))

	row.MonthlyTotalKm = total
	row.MonthlyTotalLabel = snapshot.Classify(domainMileage.CategoryMonthlyTotal, total)
	row.MonthlyAverageKm = average
	row.MonthlyAverageLabel = snapshot.Classify(domainMileage.CategoryMonthlyAverage, average)
	row.Conclusion = row.MonthlyAverageLabel
}

// MonthLabel is the upper-case English month name of t.
func MonthLabel(t time.Time) string {
	return strings.ToUpper(t.Month().String())
}
