package ecuatracker

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	domainVehicle "fleet-mileage-monitor/internal/domain/vehicle"
)

func decodeReportItems(payload map[string]any) []domainMileage.ReportItem {
	entries, _ := payload["items"].([]any)
	items := make([]domainMileage.ReportItem, 0, len(entries))

	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		idRaw, _ := text(m["device_id"])
		if idRaw == "" {
			idRaw, _ = text(lookup(m, "meta", "device.id", "value"))
		}
		name, _ := text(lookup(m, "meta", "device.name", "value"))
		distance, _ := text(lookup(m, "totals", "distance", "value"))

		items = append(items, domainMileage.ReportItem{
			DeviceIDRaw: idRaw,
			DeviceName:  name,
			DistanceRaw: distance,
		})
	}
	return items
}

// flattenDevices expands `{id, title, items: [...]}` groups into their
// children, which inherit the group id and title.
func flattenDevices(entries []any) []domainVehicle.ProviderDevice {
	var devices []domainVehicle.ProviderDevice

	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		children, isGroup := m["items"].([]any)
		if !isGroup {
			devices = append(devices, decodeDevice(m, nil, nil))
			continue
		}

		groupID := int64Value(m["id"])
		var groupTitle *string
		if title, ok := text(m["title"]); ok {
			groupTitle = &title
		}
		for _, child := range children {
			if cm, ok := child.(map[string]any); ok {
				devices = append(devices, decodeDevice(cm, groupID, groupTitle))
			}
		}
	}
	return devices
}

func decodeDevice(m map[string]any, groupID *int64, groupTitle *string) domainVehicle.ProviderDevice {
	d := domainVehicle.ProviderDevice{
		ID:         firstInt64(m["id"], m["device_id"]),
		GroupID:    groupID,
		GroupTitle: groupTitle,
	}
	if name, ok := firstText(m["name"], m["device_name"]); ok {
		d.Name = name
	}
	if imei, ok := firstText(m["imei"], m["device_imei"]); ok {
		d.IMEI = &imei
	}
	if plate, ok := firstText(m["plate_number"], lookup(m, "device_data", "plate_number")); ok {
		d.Plate = &plate
	}
	return d
}

func lookup(m map[string]any, path ...string) any {
	var cur any = m
	for _, key := range path {
		next, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = next[key]
	}
	return cur
}

// text renders strings and numbers; anything else is absent. Blank strings
// count as absent.
func text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}

func firstText(values ...any) (string, bool) {
	for _, v := range values {
		if s, ok := text(v); ok {
			return s, true
		}
	}
	return "", false
}

func int64Value(v any) *int64 {
	s, ok := text(v)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func firstInt64(values ...any) *int64 {
	for _, v := range values {
		if n := int64Value(v); n != nil {
			return n
		}
	}
	return nil
}

func intValue(v any) int {
	if n := int64Value(v); n != nil {
		return int(*n)
	}
	return 0
}
