package vehicle

import (
	"strconv"
	"strings"
	"time"
)

// Vehicle is a fleet unit bound 1:1 to a GPS tracking device. Provider-sourced
// fields (DisplayName, Code, IMEI, Group*) are refreshed by the sync; the rest
// is manual metadata maintained by operators.
type Vehicle struct {
	ID               int64
	DeviceID         *int64
	Code             *int64
	GroupID          *int64
	GroupTitle       *string
	IMEI             *string
	DisplayName      *string
	Brand            *string
	Class            *string
	Model            *string
	Type             *string
	Year             *int
	Plate            *string
	Area             *string
	ResponsibleParty *string
	ManagementGroup  *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SelectLabel builds a human friendly label for pickers and listings.
func (v *Vehicle) SelectLabel() string {
	var parts []string

	if v.DisplayName != nil && *v.DisplayName != "" {
		parts = append(parts, *v.DisplayName)
	}
	if v.Plate != nil && *v.Plate != "" {
		parts = append(parts, "Plate: "+*v.Plate)
	}

	brandModel := strings.TrimSpace(deref(v.Brand) + " " + deref(v.Model))
	if brandModel != "" {
		parts = append(parts, brandModel)
	}
	if v.Area != nil && *v.Area != "" {
		parts = append(parts, "Area: "+*v.Area)
	}

	if len(parts) == 0 {
		return "Vehicle #" + strconv.FormatInt(v.ID, 10)
	}
	return strings.Join(parts, " · ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
