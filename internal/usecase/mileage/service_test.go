package mileage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	domainVehicle "fleet-mileage-monitor/internal/domain/vehicle"
	"fleet-mileage-monitor/internal/mocks"
	appErrors "fleet-mileage-monitor/pkg/errors"
)

type serviceFixture struct {
	vehicles *mocks.MockRepository
	provider *mocks.MockDistanceProvider
	ranges   *mocks.MockRangeRepository
	service  *Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	ctrl := gomock.NewController(t)
	f := &serviceFixture{
		vehicles: mocks.NewMockRepository(ctrl),
		provider: mocks.NewMockDistanceProvider(ctrl),
		ranges:   mocks.NewMockRangeRepository(ctrl),
	}
	f.service = NewService(
		f.vehicles,
		NewGateway(f.provider, 100, 1, nil),
		NewClassifier(f.ranges, NewRangeCache()),
		nil,
		31,
	)
	return f
}

func (f *serviceFixture) expectDefaultRanges() {
	f.ranges.EXPECT().ListRanges(gomock.Any(), domainMileage.CategoryWeekly).
		Return(defaultTable(domainMileage.CategoryWeekly), nil).AnyTimes()
	f.ranges.EXPECT().ListRanges(gomock.Any(), domainMileage.CategoryMonthlyTotal).
		Return(defaultTable(domainMileage.CategoryMonthlyTotal), nil).AnyTimes()
}

func TestGenerateWeekly_TenDayRange(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDefaultRanges()

	f.vehicles.EXPECT().ListByDeviceIDs(gomock.Any(), []int64{1, 2}).
		Return([]*domainVehicle.Vehicle{
			{DeviceID: ptr(int64(2)), DisplayName: ptr("Stored name"), Plate: ptr("PEC9829"), Area: ptr("North")},
		}, nil).
		Times(1)

	distances := map[string]map[string]string{
		"2025-03-01": {"1": "100", "2": "50"},
		"2025-03-08": {"1": "20", "2": "10"},
	}
	f.provider.EXPECT().GenerateKmReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domainMileage.ReportRequest) (*domainMileage.ReportResponse, error) {
			resp := &domainMileage.ReportResponse{}
			for id, km := range distances[req.DateFrom] {
				item := domainMileage.ReportItem{DeviceIDRaw: id, DistanceRaw: km}
				if id == "1" && req.DateFrom == "2025-03-08" {
					item.DeviceName = "Truck-964"
				}
				resp.Items = append(resp.Items, item)
			}
			return resp, nil
		}).
		Times(2)

	rows, err := f.service.GenerateWeekly(context.Background(), Query{
		DeviceIDs: []int64{1, 2},
		From:      day(2025, time.March, 1, 0, 0, 0),
		To:        day(2025, time.March, 10, 23, 59, 59),
		Title:     "March",
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, int64(1), first.DeviceID)
	require.Len(t, first.Weeks, 2)
	assert.Equal(t, 100.0, first.Weeks[0].DistanceKm)
	assert.Equal(t, 20.0, first.Weeks[1].DistanceKm)
	assert.Equal(t, 120.0, first.MonthlyTotalKm)
	assert.Equal(t, 60.0, first.MonthlyAverageKm)
	assert.Equal(t, "low use", first.Conclusion)
	assert.Equal(t, "MARCH", first.MonthLabel)
	require.NotNil(t, first.DisplayName)
	assert.Equal(t, "Truck-964", *first.DisplayName)

	second := rows[1]
	assert.Equal(t, int64(2), second.DeviceID)
	assert.Equal(t, 60.0, second.MonthlyTotalKm)
	assert.Equal(t, 30.0, second.MonthlyAverageKm)
	assert.Equal(t, "Stored name", *second.DisplayName)
	assert.Equal(t, "PEC9829", *second.Plate)
	assert.Equal(t, "North", *second.Area)
}

func TestGenerateWeekly_FullMonthUsesFourWindows(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDefaultRanges()
	f.vehicles.EXPECT().ListByDeviceIDs(gomock.Any(), gomock.Any()).Return(nil, nil)

	var ranges [][2]string
	f.provider.EXPECT().GenerateKmReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domainMileage.ReportRequest) (*domainMileage.ReportResponse, error) {
			ranges = append(ranges, [2]string{req.DateFrom, req.DateTo})
			return &domainMileage.ReportResponse{Items: []domainMileage.ReportItem{
				{DeviceIDRaw: "3", DistanceRaw: "400"},
			}}, nil
		}).
		Times(4)

	rows, err := f.service.GenerateWeekly(context.Background(), Query{
		DeviceIDs: []int64{3},
		From:      day(2025, time.January, 1, 0, 0, 0),
		To:        day(2025, time.January, 31, 23, 59, 59),
		Title:     "January",
	})
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{"2025-01-01", "2025-01-07"},
		{"2025-01-08", "2025-01-14"},
		{"2025-01-15", "2025-01-21"},
		{"2025-01-22", "2025-01-31"},
	}, ranges)

	row := rows[0]
	assert.Len(t, row.Weeks, 4)
	assert.Equal(t, 1600.0, row.MonthlyTotalKm)
	assert.Equal(t, 400.0, row.MonthlyAverageKm)
	assert.Equal(t, "medium use", row.MonthlyTotalLabel)
	assert.Equal(t, "medium use", row.MonthlyAverageLabel)
	assert.Equal(t, "medium use", row.Weeks[3].Label)
}

func TestGenerateWeekly_MissingDevicesDefaultToZero(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDefaultRanges()
	f.vehicles.EXPECT().ListByDeviceIDs(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.provider.EXPECT().GenerateKmReport(gomock.Any(), gomock.Any()).
		Return(&domainMileage.ReportResponse{}, nil)

	rows, err := f.service.GenerateWeekly(context.Background(), Query{
		DeviceIDs: []int64{8, 4},
		From:      day(2025, time.June, 2, 0, 0, 0),
		To:        day(2025, time.June, 4, 0, 0, 0),
	})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(8), rows[0].DeviceID)
	assert.Equal(t, int64(4), rows[1].DeviceID)
	assert.Equal(t, 0.0, rows[0].MonthlyTotalKm)
	assert.Nil(t, rows[0].DisplayName)
	assert.Equal(t, "low use", rows[0].Weeks[0].Label)
}

func TestGenerate_EmptyDevicesSkipsProvider(t *testing.T) {
	f := newServiceFixture(t)

	weekly, err := f.service.GenerateWeekly(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, weekly)

	monthly, err := f.service.GenerateMonthly(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, monthly)
}

func TestGenerate_InvalidRangeFailsBeforeProvider(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.GenerateWeekly(context.Background(), Query{
		DeviceIDs: []int64{1},
		From:      day(2025, time.March, 10, 0, 0, 0),
		To:        day(2025, time.March, 1, 0, 0, 0),
	})

	var rangeErr *domainMileage.InvalidRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestGenerateWeekly_ProviderFailureAbortsReport(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDefaultRanges()
	f.vehicles.EXPECT().ListByDeviceIDs(gomock.Any(), gomock.Any()).Return(nil, nil)

	gomock.InOrder(
		f.provider.EXPECT().GenerateKmReport(gomock.Any(), gomock.Any()).
			Return(&domainMileage.ReportResponse{}, nil),
		f.provider.EXPECT().GenerateKmReport(gomock.Any(), gomock.Any()).
			Return(nil, &domainMileage.ProviderError{Method: "POST", Path: "/generate_report", Status: 503}),
	)

	rows, err := f.service.GenerateWeekly(context.Background(), Query{
		DeviceIDs: []int64{1},
		From:      day(2025, time.March, 1, 0, 0, 0),
		To:        day(2025, time.March, 20, 0, 0, 0),
	})
	assert.Nil(t, rows)

	var providerErr *domainMileage.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, 503, providerErr.Status)
	assert.Equal(t, []int64{1}, providerErr.DeviceIDs)
}

func TestGenerateMonthly_SingleCallAveragedByWeeks(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDefaultRanges()
	f.vehicles.EXPECT().ListByDeviceIDs(gomock.Any(), gomock.Any()).
		Return([]*domainVehicle.Vehicle{{DeviceID: ptr(int64(1)), DisplayName: ptr("Truck-1"), Brand: ptr("Hino")}}, nil)

	f.provider.EXPECT().GenerateKmReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domainMileage.ReportRequest) (*domainMileage.ReportResponse, error) {
			assert.Equal(t, "2025-01-01", req.DateFrom)
			assert.Equal(t, "2025-01-31", req.DateTo)
			assert.Equal(t, "06:00:00", req.TimeFrom)
			assert.Equal(t, "22:00:00", req.TimeTo)
			return &domainMileage.ReportResponse{Items: []domainMileage.ReportItem{
				{DeviceIDRaw: "1", DistanceRaw: "4000 km"},
			}}, nil
		}).
		Times(1)

	rows, err := f.service.GenerateMonthly(context.Background(), Query{
		DeviceIDs: []int64{1},
		From:      day(2025, time.January, 1, 6, 0, 0),
		To:        day(2025, time.January, 31, 22, 0, 0),
		Title:     "January",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Empty(t, row.Weeks)
	assert.Equal(t, 4000.0, row.MonthlyTotalKm)
	assert.Equal(t, 1000.0, row.MonthlyAverageKm)
	assert.Equal(t, "high use", row.MonthlyTotalLabel)
	assert.Equal(t, "high use", row.Conclusion)
	assert.Equal(t, "Truck-1", *row.DisplayName)
	assert.Equal(t, "Hino", *row.Brand)
}

func TestGenerate_ValidatesRequest(t *testing.T) {
	f := newServiceFixture(t)

	cases := []struct {
		name string
		req  *GenerateReportRequest
	}{
		{name: "missing title", req: &GenerateReportRequest{Mode: "weekly", DateFrom: "2025-01-01", DateTo: "2025-01-02", DeviceIDs: []int64{1}}},
		{name: "bad mode", req: &GenerateReportRequest{Title: "x", Mode: "daily", DateFrom: "2025-01-01", DateTo: "2025-01-02", DeviceIDs: []int64{1}}},
		{name: "reversed dates", req: &GenerateReportRequest{Title: "x", Mode: "weekly", DateFrom: "2025-01-05", DateTo: "2025-01-02", DeviceIDs: []int64{1}}},
		{name: "too long", req: &GenerateReportRequest{Title: "x", Mode: "weekly", DateFrom: "2025-01-01", DateTo: "2025-02-01", DeviceIDs: []int64{1}}},
		{name: "no devices", req: &GenerateReportRequest{Title: "x", Mode: "weekly", DateFrom: "2025-01-01", DateTo: "2025-01-02"}},
		{name: "duplicate devices", req: &GenerateReportRequest{Title: "x", Mode: "weekly", DateFrom: "2025-01-01", DateTo: "2025-01-02", DeviceIDs: []int64{1, 1}}},
		{name: "bad time", req: &GenerateReportRequest{Title: "x", Mode: "weekly", DateFrom: "2025-01-01", DateTo: "2025-01-02", TimeFrom: "25:00", DeviceIDs: []int64{1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Generate(context.Background(), tc.req)

			var appErr *appErrors.AppError
			require.True(t, errors.As(err, &appErr), "got %v", err)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestParseReportRequest_DefaultTimes(t *testing.T) {
	q, err := ParseReportRequest(&GenerateReportRequest{
		Title:     "  <i>Fleet</i> ",
		Mode:      "monthly",
		DateFrom:  "2025-02-01",
		DateTo:    "2025-02-28",
		DeviceIDs: []int64{4, 2},
	}, 31)
	require.NoError(t, err)

	assert.Equal(t, "Fleet", q.Title)
	assert.Equal(t, "2025-02-01 00:00:00", q.From.Format(time.DateTime))
	assert.Equal(t, "2025-02-28 23:59:59", q.To.Format(time.DateTime))
	assert.Equal(t, []int64{4, 2}, q.DeviceIDs)
}
