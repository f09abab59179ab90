package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	domainVehicle "fleet-mileage-monitor/internal/domain/vehicle"
	"fleet-mileage-monitor/internal/mocks"
	"fleet-mileage-monitor/internal/usecase/mileage"
	"fleet-mileage-monitor/internal/usecase/vehicle"
	"fleet-mileage-monitor/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerFixture struct {
	vehicles *mocks.MockRepository
	catalog  *mocks.MockDeviceCatalog
	provider *mocks.MockDistanceProvider
	ranges   *mocks.MockRangeRepository
	router   *gin.Engine
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	ctrl := gomock.NewController(t)
	f := &handlerFixture{
		vehicles: mocks.NewMockRepository(ctrl),
		catalog:  mocks.NewMockDeviceCatalog(ctrl),
		provider: mocks.NewMockDistanceProvider(ctrl),
		ranges:   mocks.NewMockRangeRepository(ctrl),
	}

	cache := mileage.NewRangeCache()
	classifier := mileage.NewClassifier(f.ranges, cache)
	reportService := mileage.NewService(f.vehicles, mileage.NewGateway(f.provider, 100, 1, nil), classifier, nil, 31)

	f.router = gin.New()
	api := f.router.Group("/api/v1")
	NewReportHandler(reportService).RegisterRoutes(api)
	thresholds := NewThresholdHandler(mileage.NewThresholdService(f.ranges, classifier, cache, nil))
	thresholds.RegisterRoutes(api)
	thresholds.RegisterAdminRoutes(api)
	vehicles := NewVehicleHandler(vehicle.NewService(f.vehicles), vehicle.NewSyncService(f.catalog, f.vehicles))
	vehicles.RegisterRoutes(api)
	vehicles.RegisterAdminRoutes(api.Group("/admin"))
	return f
}

func (f *handlerFixture) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func (f *handlerFixture) expectDefaultRanges() {
	for _, category := range []domainMileage.Category{domainMileage.CategoryWeekly, domainMileage.CategoryMonthlyTotal} {
		f.ranges.EXPECT().ListRanges(gomock.Any(), category).
			Return(domainMileage.NormalizeRanges(category, mileage.DefaultRanges(category)), nil).
			AnyTimes()
	}
}

func reportBody() map[string]any {
	return map[string]any{
		"title":      "March fleet",
		"mode":       "monthly",
		"date_from":  "2025-03-01",
		"date_to":    "2025-03-31",
		"device_ids": []int64{1, 2},
	}
}

func TestGenerateMileageReport_Monthly(t *testing.T) {
	f := newHandlerFixture(t)
	f.expectDefaultRanges()
	f.vehicles.EXPECT().ListByDeviceIDs(gomock.Any(), []int64{1, 2}).Return(nil, nil)
	f.provider.EXPECT().GenerateKmReport(gomock.Any(), gomock.Any()).
		Return(&domainMileage.ReportResponse{Items: []domainMileage.ReportItem{
			{DeviceIDRaw: "1", DeviceName: "Truck-1", DistanceRaw: "2000"},
		}}, nil)

	w, resp := f.do(t, http.MethodPost, "/api/v1/reports/mileage", reportBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, resp.Success)

	var report mileage.ReportResponse
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &report))

	require.Len(t, report.Rows, 2)
	assert.Equal(t, 4, report.WindowCount)
	assert.Equal(t, 2000.0, report.Rows[0].MonthlyTotalKm)
	assert.Equal(t, "medium use", report.Rows[0].MonthlyTotalLabel)
	assert.Equal(t, 500.0, report.Rows[0].MonthlyAverageKm)
	assert.Equal(t, "medium use", report.Rows[0].Conclusion)
	assert.Equal(t, 0.0, report.Rows[1].MonthlyTotalKm)
}

func TestGenerateMileageReport_ValidationError(t *testing.T) {
	f := newHandlerFixture(t)

	body := reportBody()
	body["device_ids"] = []int64{}
	body["mode"] = "daily"

	w, resp := f.do(t, http.MethodPost, "/api/v1/reports/mileage", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Details)
}

func TestGenerateMileageReport_RangeTooLong(t *testing.T) {
	f := newHandlerFixture(t)

	body := reportBody()
	body["date_to"] = "2025-04-15"

	w, _ := f.do(t, http.MethodPost, "/api/v1/reports/mileage", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateMileageReport_InvertedTimes(t *testing.T) {
	f := newHandlerFixture(t)

	body := reportBody()
	body["mode"] = "weekly"
	body["date_to"] = "2025-03-01"
	body["time_from"] = "10:00"
	body["time_to"] = "08:00"

	w, _ := f.do(t, http.MethodPost, "/api/v1/reports/mileage", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGenerateMileageReport_ProviderFailure(t *testing.T) {
	f := newHandlerFixture(t)
	f.expectDefaultRanges()
	f.vehicles.EXPECT().ListByDeviceIDs(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.provider.EXPECT().GenerateKmReport(gomock.Any(), gomock.Any()).
		Return(nil, &domainMileage.ProviderError{Method: http.MethodPost, Path: "/generate_report", Status: 500, Body: "secret upstream detail"})

	w, resp := f.do(t, http.MethodPost, "/api/v1/reports/mileage", reportBody())
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, providerFailureMessage, resp.Error)
	assert.NotContains(t, w.Body.String(), "secret upstream detail")
}

func TestGenerateMileageReport_StorageFailure(t *testing.T) {
	f := newHandlerFixture(t)
	f.expectDefaultRanges()
	f.vehicles.EXPECT().ListByDeviceIDs(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

	w, resp := f.do(t, http.MethodPost, "/api/v1/reports/mileage", reportBody())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", resp.Error)
}

func TestGetThresholds_MonthlyAverageUsesWeeklyTable(t *testing.T) {
	f := newHandlerFixture(t)
	f.expectDefaultRanges()

	w, resp := f.do(t, http.MethodGet, "/api/v1/thresholds/monthly-average", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "monthly-average", data["category"])
	assert.Equal(t, "weekly", data["range_table"])
	assert.Len(t, data["ranges"], 3)
}

func TestThresholds_Errors(t *testing.T) {
	f := newHandlerFixture(t)

	w, _ := f.do(t, http.MethodGet, "/api/v1/thresholds/daily", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := map[string]any{"ranges": []map[string]any{{"name": "low", "min": 0, "max": 10}}}
	w, _ = f.do(t, http.MethodPut, "/api/v1/thresholds/monthly-average", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateThresholds(t *testing.T) {
	f := newHandlerFixture(t)
	f.ranges.EXPECT().ReplaceRanges(gomock.Any(), domainMileage.CategoryWeekly, gomock.Len(2)).
		DoAndReturn(func(_ context.Context, category domainMileage.Category, in []domainMileage.RangeInput) ([]domainMileage.ClassificationRange, error) {
			return domainMileage.NormalizeRanges(category, in), nil
		})

	body := map[string]any{"ranges": []map[string]any{
		{"name": "idle", "min": 0, "max": 100, "order": 1},
		{"name": "busy", "min": 100.01, "max": 2000, "order": 2},
	}}
	w, resp := f.do(t, http.MethodPut, "/api/v1/thresholds/weekly", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, resp.Data.(map[string]any)["ranges"], 2)
}

func TestVehicleHandler_GetNotFound(t *testing.T) {
	f := newHandlerFixture(t)
	f.vehicles.EXPECT().GetByID(gomock.Any(), int64(42)).Return(nil, domainVehicle.ErrVehicleNotFound)

	w, _ := f.do(t, http.MethodGet, "/api/v1/vehicles/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = f.do(t, http.MethodGet, "/api/v1/vehicles/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVehicleHandler_CreateConflict(t *testing.T) {
	f := newHandlerFixture(t)
	f.vehicles.EXPECT().GetByDeviceID(gomock.Any(), int64(5)).
		Return(&domainVehicle.Vehicle{ID: 1}, nil)

	w, _ := f.do(t, http.MethodPost, "/api/v1/vehicles", map[string]any{"device_id": 5})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestVehicleHandler_SyncDryRun(t *testing.T) {
	f := newHandlerFixture(t)
	f.catalog.EXPECT().GetDevices(gomock.Any()).Return([]domainVehicle.ProviderDevice{
		{ID: nil, Name: "ghost"},
	}, nil)

	w, resp := f.do(t, http.MethodPost, "/api/v1/admin/vehicles/sync?dry_run=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, 1.0, data["skipped"])
	assert.Equal(t, true, data["dry_run"])
}
