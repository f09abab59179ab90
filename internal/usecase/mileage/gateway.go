package mileage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"go.uber.org/zap"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	domainVehicle "fleet-mileage-monitor/internal/domain/vehicle"
	"fleet-mileage-monitor/internal/logger"
	"fleet-mileage-monitor/internal/observability"
)

const (
	DefaultChunkSize = 100

	providerMethod = "POST"
	providerPath   = "/generate_report"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// MatchKind tells how a provider item was tied to a requested device.
type MatchKind int

const (
	Unmatched MatchKind = iota
	MatchedByID
	MatchedByName
)

func (k MatchKind) String() string {
	switch k {
	case MatchedByID:
		return "matched-by-id"
	case MatchedByName:
		return "matched-by-name"
	default:
		return "unmatched"
	}
}

type MatchResult struct {
	Kind     MatchKind
	DeviceID int64
}

// DeviceIndex is the id and display-name lookup over stored vehicles, built
// once per report from a single batch query.
type DeviceIndex struct {
	byID   map[int64]*domainVehicle.Vehicle
	byName map[string]int64
}

func NewDeviceIndex(vehicles []*domainVehicle.Vehicle) *DeviceIndex {
	idx := &DeviceIndex{
		byID:   make(map[int64]*domainVehicle.Vehicle, len(vehicles)),
		byName: make(map[string]int64, len(vehicles)),
	}
	ambiguous := make(map[string]struct{})
	for _, v := range vehicles {
		if v == nil || v.DeviceID == nil {
			continue
		}
		idx.byID[*v.DeviceID] = v
		if v.DisplayName == nil {
			continue
		}
		name := strings.TrimSpace(*v.DisplayName)
		if name == "" {
			continue
		}
		if _, dup := ambiguous[name]; dup {
			continue
		}
		if other, taken := idx.byName[name]; taken && other != *v.DeviceID {
			// Shared names cannot identify a device; items carrying them
			// only match by id.
			logger.Warn("Display name shared by several devices, name matching disabled for it",
				zap.String("display_name", name),
				zap.Int64("device_id", other),
				zap.Int64("other_device_id", *v.DeviceID),
			)
			delete(idx.byName, name)
			ambiguous[name] = struct{}{}
			continue
		}
		idx.byName[name] = *v.DeviceID
	}
	return idx
}

// Vehicle returns the stored metadata for deviceID, or nil.
func (i *DeviceIndex) Vehicle(deviceID int64) *domainVehicle.Vehicle {
	if i == nil {
		return nil
	}
	return i.byID[deviceID]
}

// Match resolves a provider item against the requested ids: the item's own
// numeric id first, then its display name.
func (i *DeviceIndex) Match(item domainMileage.ReportItem, requested map[int64]struct{}) MatchResult {
	if id, err := strconv.ParseInt(strings.TrimSpace(item.DeviceIDRaw), 10, 64); err == nil {
		if _, ok := requested[id]; ok {
			return MatchResult{Kind: MatchedByID, DeviceID: id}
		}
	}

	if i != nil {
		if id, ok := i.byName[strings.TrimSpace(item.DeviceName)]; ok {
			if _, ok := requested[id]; ok {
				return MatchResult{Kind: MatchedByName, DeviceID: id}
			}
		}
	}

	return MatchResult{Kind: Unmatched}
}

// ParseDistance strips everything but digits, dots and minus signs and parses
// the rest. Anything unparsable is 0.
func ParseDistance(raw string) float64 {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// FetchQuery is one distance query over a device list.
type FetchQuery struct {
	DeviceIDs []int64
	DateFrom  string
	DateTo    string
	TimeFrom  string
	TimeTo    string
	Label     string
	Extra     map[string]any
}

// Gateway splits device lists into bounded chunks for the provider and
// merges the answers into one record per device.
type Gateway struct {
	provider    domainMileage.DistanceProvider
	chunkSize   int
	concurrency int
	metrics     *observability.Metrics
}

func NewGateway(provider domainMileage.DistanceProvider, chunkSize, concurrency int, metrics *observability.Metrics) *Gateway {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Gateway{
		provider:    provider,
		chunkSize:   chunkSize,
		concurrency: concurrency,
		metrics:     metrics,
	}
}

// FetchDistances queries the provider once per chunk. Chunk results are
// merged in chunk order whatever order they complete in, so a device reported
// by two chunks keeps the later chunk's value. Any chunk failure aborts the
// whole fetch with a *ProviderError.
func (g *Gateway) FetchDistances(ctx context.Context, q FetchQuery, index *DeviceIndex) (map[int64]domainMileage.DeviceDistanceRecord, error) {
	out := make(map[int64]domainMileage.DeviceDistanceRecord, len(q.DeviceIDs))
	if len(q.DeviceIDs) == 0 {
		return out, nil
	}

	requested := make(map[int64]struct{}, len(q.DeviceIDs))
	for _, id := range q.DeviceIDs {
		requested[id] = struct{}{}
	}

	chunks := ChunkIDs(q.DeviceIDs, g.chunkSize)
	responses := make([]*domainMileage.ReportResponse, len(chunks))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i, chunk := range chunks {
		eg.Go(func() error {
			resp, err := g.callChunk(egCtx, q, chunk, i, len(chunks))
			if err != nil {
				return err
			}
			responses[i] = resp
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i, resp := range responses {
		if resp == nil {
			continue
		}
		for _, item := range resp.Items {
			match := index.Match(item, requested)
			if match.Kind == Unmatched {
				g.metrics.IncUnmatched()
				warning := &domainMileage.UnmatchedDeviceWarning{
					DeviceIDRaw: item.DeviceIDRaw,
					DeviceName:  item.DeviceName,
					Label:       chunkLabel(q.Label, i, len(chunks)),
				}
				logger.Warn("Provider item dropped",
					zap.Error(warning),
					zap.String("event", "provider_item_unmatched"),
				)
				continue
			}

			record := domainMileage.DeviceDistanceRecord{
				DeviceID:   match.DeviceID,
				DistanceKm: ParseDistance(item.DistanceRaw),
			}
			if name := strings.TrimSpace(item.DeviceName); name != "" {
				record.DisplayName = &name
			}
			out[match.DeviceID] = record
		}
	}

	return out, nil
}

func (g *Gateway) callChunk(ctx context.Context, q FetchQuery, chunk []int64, index, total int) (*domainMileage.ReportResponse, error) {
	label := chunkLabel(q.Label, index, total)

	logger.Debug("Requesting provider distances",
		zap.String("label", label),
		zap.Int("devices", len(chunk)),
		zap.String("date_from", q.DateFrom+" "+q.TimeFrom),
		zap.String("date_to", q.DateTo+" "+q.TimeTo),
	)

	resp, err := g.provider.GenerateKmReport(ctx, domainMileage.ReportRequest{
		DeviceIDs: chunk,
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
		TimeFrom:  q.TimeFrom,
		TimeTo:    q.TimeTo,
		Title:     label,
		Extra:     q.Extra,
	})
	if err != nil {
		var providerErr *domainMileage.ProviderError
		if errors.As(err, &providerErr) {
			if len(providerErr.DeviceIDs) == 0 {
				providerErr.DeviceIDs = chunk
			}
			return nil, providerErr
		}
		return nil, &domainMileage.ProviderError{
			Method:    providerMethod,
			Path:      providerPath,
			DeviceIDs: chunk,
			Err:       err,
		}
	}
	if resp == nil {
		resp = &domainMileage.ReportResponse{}
	}
	return resp, nil
}

// ChunkIDs splits ids into ordered slices of at most size elements.
func ChunkIDs(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = DefaultChunkSize
	}
	chunks := make([][]int64, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

func chunkLabel(label string, index, total int) string {
	if total <= 1 {
		return label
	}
	return fmt.Sprintf("%s (part %d/%d)", label, index+1, total)
}
