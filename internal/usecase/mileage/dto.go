package mileage

import (
	"time"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
)

type GenerateReportRequest struct {
	Title     string  `json:"title" validate:"required,max=255"`
	Mode      string  `json:"mode" validate:"required,oneof=weekly monthly"`
	DateFrom  string  `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo    string  `json:"date_to" validate:"required,datetime=2006-01-02"`
	TimeFrom  string  `json:"time_from" validate:"omitempty,datetime=15:04"`
	TimeTo    string  `json:"time_to" validate:"omitempty,datetime=15:04"`
	DeviceIDs []int64 `json:"device_ids" validate:"required,min=1,unique,dive,gt=0"`
}

type ReportResponse struct {
	Title       string                           `json:"title"`
	Mode        domainMileage.ReportMode         `json:"mode"`
	From        time.Time                        `json:"from"`
	To          time.Time                        `json:"to"`
	WindowCount int                              `json:"window_count"`
	Rows        []domainMileage.VehicleReportRow `json:"rows"`
}

type UpdateThresholdsRequest struct {
	Ranges []domainMileage.RangeInput `json:"ranges" validate:"required,min=1,dive"`
}

type RangeResponse struct {
	Label string  `json:"name"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Order int     `json:"order"`
}

type ThresholdsResponse struct {
	Category   domainMileage.Category `json:"category"`
	RangeTable domainMileage.Category `json:"range_table"`
	Ranges     []RangeResponse        `json:"ranges"`
}

func ToThresholdsResponse(category domainMileage.Category, ranges []domainMileage.ClassificationRange) *ThresholdsResponse {
	out := make([]RangeResponse, len(ranges))
	for i, r := range ranges {
		out[i] = RangeResponse{
			Label: r.Label,
			Min:   r.Min,
			Max:   r.Max,
			Order: r.Order,
		}
	}
	return &ThresholdsResponse{
		Category:   category,
		RangeTable: category.RangeTable(),
		Ranges:     out,
	}
}
