package vehicle

import "context"

//go:generate mockgen -destination=../../mocks/mock_vehicle_repository.go -package=mocks fleet-mileage-monitor/internal/domain/vehicle Repository,DeviceCatalog

// Repository defines the persistence operations for vehicle metadata.
type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	GetByID(ctx context.Context, id int64) (*Vehicle, error)
	GetByDeviceID(ctx context.Context, deviceID int64) (*Vehicle, error)
	Update(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter *Filter) ([]*Vehicle, int64, error)
	// ListByDeviceIDs loads every vehicle bound to one of deviceIDs in a single query.
	ListByDeviceIDs(ctx context.Context, deviceIDs []int64) ([]*Vehicle, error)
}

// Filter represents filtering options for listing vehicles
type Filter struct {
	Search   string
	Page     int
	PageSize int
}

// ProviderDevice is a device as listed by the GPS tracking provider.
type ProviderDevice struct {
	ID         *int64
	Name       string
	IMEI       *string
	Plate      *string
	GroupID    *int64
	GroupTitle *string
}

// DeviceCatalog lists the devices known to the tracking provider.
type DeviceCatalog interface {
	GetDevices(ctx context.Context) ([]ProviderDevice, error)
}
