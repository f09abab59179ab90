package vehicle

import (
	"time"

	domainVehicle "fleet-mileage-monitor/internal/domain/vehicle"
)

type CreateVehicleRequest struct {
	DeviceID         int64   `json:"device_id" validate:"required,gt=0"`
	Code             *int64  `json:"code" validate:"omitempty,gte=0"`
	IMEI             *string `json:"imei" validate:"omitempty,max=50"`
	DisplayName      *string `json:"display_name" validate:"omitempty,max=255"`
	Brand            *string `json:"brand" validate:"omitempty,max=100"`
	Class            *string `json:"class" validate:"omitempty,max=100"`
	Model            *string `json:"model" validate:"omitempty,max=100"`
	Type             *string `json:"type" validate:"omitempty,max=100"`
	Year             *int    `json:"year" validate:"omitempty,min=1900,max=2100"`
	Plate            *string `json:"plate" validate:"omitempty,max=50"`
	Area             *string `json:"area" validate:"omitempty,max=150"`
	ResponsibleParty *string `json:"responsible_party" validate:"omitempty,max=150"`
	ManagementGroup  *string `json:"management_group" validate:"omitempty,max=150"`
}

// UpdateVehicleRequest only touches the fields that are present.
type UpdateVehicleRequest struct {
	DeviceID         *int64  `json:"device_id" validate:"omitempty,gt=0"`
	Code             *int64  `json:"code" validate:"omitempty,gte=0"`
	IMEI             *string `json:"imei" validate:"omitempty,max=50"`
	DisplayName      *string `json:"display_name" validate:"omitempty,max=255"`
	Brand            *string `json:"brand" validate:"omitempty,max=100"`
	Class            *string `json:"class" validate:"omitempty,max=100"`
	Model            *string `json:"model" validate:"omitempty,max=100"`
	Type             *string `json:"type" validate:"omitempty,max=100"`
	Year             *int    `json:"year" validate:"omitempty,min=1900,max=2100"`
	Plate            *string `json:"plate" validate:"omitempty,max=50"`
	Area             *string `json:"area" validate:"omitempty,max=150"`
	ResponsibleParty *string `json:"responsible_party" validate:"omitempty,max=150"`
	ManagementGroup  *string `json:"management_group" validate:"omitempty,max=150"`
}

type VehicleFilterRequest struct {
	Search   string `form:"search" validate:"omitempty,max=100"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type VehicleResponse struct {
	ID               int64     `json:"id"`
	DeviceID         *int64    `json:"device_id"`
	Code             *int64    `json:"code"`
	GroupID          *int64    `json:"group_id"`
	GroupTitle       *string   `json:"group_title"`
	IMEI             *string   `json:"imei"`
	DisplayName      *string   `json:"display_name"`
	Brand            *string   `json:"brand"`
	Class            *string   `json:"class"`
	Model            *string   `json:"model"`
	Type             *string   `json:"type"`
	Year             *int      `json:"year"`
	Plate            *string   `json:"plate"`
	Area             *string   `json:"area"`
	ResponsibleParty *string   `json:"responsible_party"`
	ManagementGroup  *string   `json:"management_group"`
	Label            string    `json:"label"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type VehicleListResponse struct {
	Vehicles   []VehicleResponse `json:"vehicles"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

type SyncResult struct {
	Created int  `json:"created"`
	Updated int  `json:"updated"`
	Skipped int  `json:"skipped"`
	DryRun  bool `json:"dry_run"`
}

func ToVehicleResponse(v *domainVehicle.Vehicle) *VehicleResponse {
	if v == nil {
		return nil
	}
	return &VehicleResponse{
		ID:               v.ID,
		DeviceID:         v.DeviceID,
		Code:             v.Code,
		GroupID:          v.GroupID,
		GroupTitle:       v.GroupTitle,
		IMEI:             v.IMEI,
		DisplayName:      v.DisplayName,
		Brand:            v.Brand,
		Class:            v.Class,
		Model:            v.Model,
		Type:             v.Type,
		Year:             v.Year,
		Plate:            v.Plate,
		Area:             v.Area,
		ResponsibleParty: v.ResponsibleParty,
		ManagementGroup:  v.ManagementGroup,
		Label:            v.SelectLabel(),
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func ToDomainFilter(req *VehicleFilterRequest) *domainVehicle.Filter {
	if req == nil {
		return &domainVehicle.Filter{}
	}
	return &domainVehicle.Filter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
}
