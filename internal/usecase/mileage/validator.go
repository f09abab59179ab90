package mileage

import (
	"fmt"
	"time"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	appErrors "fleet-mileage-monitor/pkg/errors"
	"fleet-mileage-monitor/pkg/utils"
)

const (
	DefaultMaxRangeDays = 31

	defaultTimeFrom = "00:00"
	defaultTimeTo   = "23:59"
)

// ParseReportRequest validates req and resolves it into a Query in the
// server's local time zone.
func ParseReportRequest(req *GenerateReportRequest, maxRangeDays int) (*Query, error) {
	if req == nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", appErrors.ErrInvalidInput)
	}

	req.Title = utils.SanitizeString(req.Title)
	if req.TimeFrom == "" {
		req.TimeFrom = defaultTimeFrom
	}
	if req.TimeTo == "" {
		req.TimeTo = defaultTimeTo
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	from, err := time.ParseInLocation("2006-01-02 15:04", req.DateFrom+" "+req.TimeFrom, time.Local)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid start date", err)
	}
	to, err := time.ParseInLocation("2006-01-02 15:04", req.DateTo+" "+req.TimeTo, time.Local)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid end date", err)
	}
	to = to.Add(59 * time.Second)

	if req.DateTo < req.DateFrom {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "date_to must be on or after date_from", nil)
	}
	if days := domainMileage.CalendarDays(from, to); days > maxRangeDays {
		return nil, appErrors.NewAppError("VALIDATION_ERROR",
			fmt.Sprintf("Date range spans %d days, at most %d are allowed", days, maxRangeDays), nil)
	}

	return &Query{
		DeviceIDs: req.DeviceIDs,
		From:      from,
		To:        to,
		Title:     req.Title,
	}, nil
}
