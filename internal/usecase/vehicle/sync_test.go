package vehicle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainVehicle "fleet-mileage-monitor/internal/domain/vehicle"
	"fleet-mileage-monitor/internal/mocks"
)

func TestDeviceCode(t *testing.T) {
	cases := map[string]*int64{
		"TRK-0042-North": ptr(int64(42)),
		"964":            ptr(int64(964)),
		"Truck 12-A":     nil,
		"A-B-C":          nil,
		"Van- 17 -x":     ptr(int64(17)),
		"":               nil,
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, DeviceCode(name))
		})
	}
}

func syncCatalog() []domainVehicle.ProviderDevice {
	return []domainVehicle.ProviderDevice{
		{ID: ptr(int64(1)), Name: "TRK-001", IMEI: ptr("861234"), Plate: ptr("pbc 1234")},
		{ID: ptr(int64(2)), Name: "TRK-002-East", GroupID: ptr(int64(9)), GroupTitle: ptr("East")},
		{ID: ptr(int64(3)), Name: "TRK-003"},
		{ID: nil, Name: "ghost"},
		{ID: ptr(int64(4)), Name: "   "},
	}
}

func expectSyncLookups(repo *mocks.MockRepository) {
	repo.EXPECT().GetByDeviceID(gomock.Any(), int64(1)).Return(nil, domainVehicle.ErrVehicleNotFound)
	repo.EXPECT().GetByDeviceID(gomock.Any(), int64(2)).Return(&domainVehicle.Vehicle{
		ID:          20,
		DeviceID:    ptr(int64(2)),
		DisplayName: ptr("TRK-002"),
		Code:        ptr(int64(2)),
		Area:        ptr("Warehouse"),
	}, nil)
	repo.EXPECT().GetByDeviceID(gomock.Any(), int64(3)).Return(&domainVehicle.Vehicle{
		ID:          30,
		DeviceID:    ptr(int64(3)),
		DisplayName: ptr("TRK-003"),
		Code:        ptr(int64(3)),
	}, nil)
}

func TestSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockDeviceCatalog(ctrl)
	repo := mocks.NewMockRepository(ctrl)
	svc := NewSyncService(catalog, repo)

	catalog.EXPECT().GetDevices(gomock.Any()).Return(syncCatalog(), nil)
	expectSyncLookups(repo)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, v *domainVehicle.Vehicle) error {
			assert.Equal(t, int64(1), *v.DeviceID)
			assert.Equal(t, int64(1), *v.Code)
			assert.Equal(t, "TRK-001", *v.DisplayName)
			assert.Equal(t, "861234", *v.IMEI)
			assert.Equal(t, "PBC1234", *v.Plate)
			return nil
		})
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, v *domainVehicle.Vehicle) error {
			assert.Equal(t, int64(20), v.ID)
			assert.Equal(t, "TRK-002-East", *v.DisplayName)
			assert.Equal(t, int64(9), *v.GroupID)
			assert.Equal(t, "East", *v.GroupTitle)
			assert.Equal(t, "Warehouse", *v.Area)
			return nil
		})

	result, err := svc.Sync(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, &SyncResult{Created: 1, Updated: 1, Skipped: 2}, result)
}

func TestSync_DryRunWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockDeviceCatalog(ctrl)
	repo := mocks.NewMockRepository(ctrl)
	svc := NewSyncService(catalog, repo)

	catalog.EXPECT().GetDevices(gomock.Any()).Return(syncCatalog(), nil)
	expectSyncLookups(repo)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

	result, err := svc.Sync(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, &SyncResult{Created: 1, Updated: 1, Skipped: 2, DryRun: true}, result)
}

func TestSync_CatalogFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockDeviceCatalog(ctrl)
	svc := NewSyncService(catalog, mocks.NewMockRepository(ctrl))

	boom := errors.New("provider down")
	catalog.EXPECT().GetDevices(gomock.Any()).Return(nil, boom)

	_, err := svc.Sync(context.Background(), false)
	assert.ErrorIs(t, err, boom)
}
