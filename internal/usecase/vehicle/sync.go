package vehicle

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	domainVehicle "fleet-mileage-monitor/internal/domain/vehicle"
	"fleet-mileage-monitor/internal/logger"
	"fleet-mileage-monitor/pkg/utils"
)

// SyncService mirrors the provider device catalog into the vehicles table.
type SyncService struct {
	catalog domainVehicle.DeviceCatalog
	repo    domainVehicle.Repository
}

func NewSyncService(catalog domainVehicle.DeviceCatalog, repo domainVehicle.Repository) *SyncService {
	return &SyncService{catalog: catalog, repo: repo}
}

// Sync creates a vehicle for every unknown provider device and refreshes the
// provider-sourced fields of known ones. Manual metadata is never touched.
// With dryRun set nothing is written, but the counts are the same.
func (s *SyncService) Sync(ctx context.Context, dryRun bool) (*SyncResult, error) {
	devices, err := s.catalog.GetDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list provider devices: %w", err)
	}

	result := &SyncResult{DryRun: dryRun}
	for _, d := range devices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := strings.TrimSpace(d.Name)
		if d.ID == nil || name == "" {
			logger.Warn("Skipping provider device without id or name",
				zap.String("name", name),
				zap.String("event", "vehicle_sync_skipped"),
			)
			result.Skipped++
			continue
		}

		existing, err := s.repo.GetByDeviceID(ctx, *d.ID)
		if err != nil && !errors.Is(err, domainVehicle.ErrVehicleNotFound) {
			return nil, fmt.Errorf("load vehicle for device %d: %w", *d.ID, err)
		}

		if existing == nil {
			result.Created++
			if dryRun {
				continue
			}
			if err := s.repo.Create(ctx, newFromDevice(d, name)); err != nil {
				return nil, fmt.Errorf("create vehicle for device %d: %w", *d.ID, err)
			}
			continue
		}

		if !refresh(existing, d, name) {
			continue
		}
		result.Updated++
		if dryRun {
			continue
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update vehicle for device %d: %w", *d.ID, err)
		}
	}

	logger.Info("Vehicle sync finished",
		zap.Int("devices", len(devices)),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Bool("dry_run", dryRun),
		zap.String("event", "vehicle_sync_finished"),
	)

	return result, nil
}

// DeviceCode extracts the fleet code from a provider device name: the first
// dash-separated segment made only of digits, e.g. "TRK-0042-North" -> 42.
func DeviceCode(name string) *int64 {
	for _, segment := range strings.Split(name, "-") {
		segment = strings.TrimSpace(segment)
		if segment == "" || strings.TrimLeft(segment, "0123456789") != "" {
			continue
		}
		code, err := strconv.ParseInt(segment, 10, 64)
		if err != nil {
			continue
		}
		return &code
	}
	return nil
}

func newFromDevice(d domainVehicle.ProviderDevice, name string) *domainVehicle.Vehicle {
	id := *d.ID
	return &domainVehicle.Vehicle{
		DeviceID:    &id,
		Code:        DeviceCode(name),
		DisplayName: &name,
		IMEI:        utils.SanitizeOptional(d.IMEI),
		Plate:       sanitizePlate(d.Plate),
		GroupID:     d.GroupID,
		GroupTitle:  utils.SanitizeOptional(d.GroupTitle),
	}
}

// refresh copies provider fields onto v and reports whether anything changed.
// Absent provider values keep what is stored.
func refresh(v *domainVehicle.Vehicle, d domainVehicle.ProviderDevice, name string) bool {
	changed := setString(&v.DisplayName, &name)
	changed = setInt64(&v.Code, DeviceCode(name)) || changed
	changed = setString(&v.IMEI, utils.SanitizeOptional(d.IMEI)) || changed
	changed = setString(&v.Plate, sanitizePlate(d.Plate)) || changed
	changed = setInt64(&v.GroupID, d.GroupID) || changed
	changed = setString(&v.GroupTitle, utils.SanitizeOptional(d.GroupTitle)) || changed
	return changed
}

func setString(dst **string, value *string) bool {
	if value == nil || (*dst != nil && **dst == *value) {
		return false
	}
	v := *value
	*dst = &v
	return true
}

func setInt64(dst **int64, value *int64) bool {
	if value == nil || (*dst != nil && **dst == *value) {
		return false
	}
	v := *value
	*dst = &v
	return true
}
