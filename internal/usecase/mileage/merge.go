package mileage

import (
	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	domainVehicle "fleet-mileage-monitor/internal/domain/vehicle"
)

// MergeMetadata builds the identity part of a report row. Values fetched from
// the provider win when present; otherwise the stored vehicle is used.
// Manual metadata only ever comes from storage.
func MergeMetadata(deviceID int64, providerName *string, stored *domainVehicle.Vehicle) domainMileage.VehicleReportRow {
	row := domainMileage.VehicleReportRow{DeviceID: deviceID}
	if stored == nil {
		row.DisplayName = providerName
		return row
	}

	row.DisplayName = coalesce(providerName, stored.DisplayName)
	row.Code = stored.Code
	row.Brand = stored.Brand
	row.Class = stored.Class
	row.Model = stored.Model
	row.Type = stored.Type
	row.Year = stored.Year
	row.Plate = stored.Plate
	row.Area = stored.Area
	row.ResponsibleParty = stored.ResponsibleParty
	row.ManagementGroup = stored.ManagementGroup
	return row
}

func coalesce[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
