package mileage

import (
	"time"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
)

const (
	daysPerWindow = 7
	maxWindows    = 4
)

// Partition splits [start, end] into one to four logical weeks. The first
// windows are seven calendar days long and the last one absorbs whatever is
// left, so a 31-day month yields 7, 7, 7 and 10 days.
func Partition(start, end time.Time) ([]domainMileage.WeekWindow, error) {
	if start.After(end) {
		return nil, &domainMileage.InvalidRangeError{Start: start, End: end}
	}

	count := WindowCount(start, end)
	windows := make([]domainMileage.WeekWindow, 0, count)

	for i := 0; i < count; i++ {
		day := startOfDay(start).AddDate(0, 0, i*daysPerWindow)

		winStart := day
		if i == 0 {
			winStart = start
		}
		if winStart.After(end) {
			break
		}

		winEnd := end
		if i < count-1 {
			winEnd = endOfDay(day.AddDate(0, 0, daysPerWindow-1))
			if winEnd.After(end) {
				winEnd = end
			}
		}

		windows = append(windows, domainMileage.WeekWindow{
			Start:    winStart,
			End:      winEnd,
			Sequence: i + 1,
		})
	}

	return windows, nil
}

// WindowCount returns the nominal number of windows for the range.
func WindowCount(start, end time.Time) int {
	days := domainMileage.CalendarDays(start, end)
	switch {
	case days <= daysPerWindow:
		return 1
	case days <= 2*daysPerWindow:
		return 2
	case days <= 3*daysPerWindow:
		return 3
	default:
		return maxWindows
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// providerBounds renders a window as the date and time-of-day pairs the
// provider expects. Interior windows fall on day boundaries, so only the
// outer windows carry the requested time of day.
func providerBounds(w domainMileage.WeekWindow) (dateFrom, dateTo, timeFrom, timeTo string) {
	return w.Start.Format(time.DateOnly), w.End.Format(time.DateOnly),
		w.Start.Format(time.TimeOnly), w.End.Format(time.TimeOnly)
}
