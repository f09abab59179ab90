package ecuatracker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	domainVehicle "fleet-mileage-monitor/internal/domain/vehicle"
	"fleet-mileage-monitor/internal/logger"
	"fleet-mileage-monitor/internal/observability"
)

const (
	pathGenerateReport = "/generate_report"
	pathGetDevices     = "/get_devices"

	statusReportReady = 3
	maxLoggedBody     = 1000
)

var (
	ErrMissingAPIHash = errors.New("provider user api hash is not configured")
	errForeignHost    = errors.New("generated report url points to a different host")

	apiHashParam = regexp.MustCompile(`(?i)(user_api_hash=)[^&]+`)
)

type Config struct {
	BaseURL     string
	UserAPIHash string
	Timeout     time.Duration
	ReportType  int
	Lang        string
}

// Client talks to the GPS tracking provider API.
type Client struct {
	baseURL    string
	baseHost   string
	apiHash    string
	lang       string
	reportType int
	httpClient *http.Client
	metrics    *observability.Metrics
}

func NewClient(cfg Config, metrics *observability.Metrics) (*Client, error) {
	if strings.TrimSpace(cfg.UserAPIHash) == "" {
		return nil, ErrMissingAPIHash
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	parsed, err := url.Parse(base)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid provider base url %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	lang := cfg.Lang
	if lang == "" {
		lang = "en"
	}
	reportType := cfg.ReportType
	if reportType <= 0 {
		reportType = 1
	}

	return &Client{
		baseURL:    base,
		baseHost:   parsed.Host,
		apiHash:    cfg.UserAPIHash,
		lang:       lang,
		reportType: reportType,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
	}, nil
}

// GenerateKmReport requests a distance report. When the provider answers
// with a finished job the generated report is fetched from its url.
func (c *Client) GenerateKmReport(ctx context.Context, req domainMileage.ReportRequest) (resp *domainMileage.ReportResponse, err error) {
	started := time.Now()
	defer func() { c.metrics.ObserveProviderCall(observability.OperationGenerateReport, started, err) }()

	body, err := json.Marshal(c.reportPayload(req))
	if err != nil {
		return nil, &domainMileage.ProviderError{Method: http.MethodPost, Path: pathGenerateReport, DeviceIDs: req.DeviceIDs, Err: err}
	}

	query := url.Values{}
	query.Set("user_api_hash", c.apiHash)
	query.Set("lang", c.lang)

	initial, err := c.do(ctx, http.MethodPost, pathGenerateReport, c.baseURL+pathGenerateReport+"?"+query.Encode(), body)
	if err != nil {
		setDeviceIDs(err, req.DeviceIDs)
		return nil, err
	}

	payload, _ := initial.(map[string]any)
	if jobURL, ok := payload["url"].(string); ok && intValue(payload["status"]) == statusReportReady {
		target, err := c.resolveReportURL(jobURL)
		if err != nil {
			return nil, &domainMileage.ProviderError{Method: http.MethodGet, Path: maskURL(jobURL), DeviceIDs: req.DeviceIDs, Err: err}
		}

		logger.Debug("Fetching generated provider report", zap.String("url", maskURL(target)))

		generated, err := c.do(ctx, http.MethodGet, maskURL(target), target, nil)
		if err != nil {
			setDeviceIDs(err, req.DeviceIDs)
			return nil, err
		}
		payload, _ = generated.(map[string]any)
	}

	return &domainMileage.ReportResponse{Items: decodeReportItems(payload)}, nil
}

// GetDevices lists provider devices, flattening device groups.
func (c *Client) GetDevices(ctx context.Context) (devices []domainVehicle.ProviderDevice, err error) {
	started := time.Now()
	defer func() { c.metrics.ObserveProviderCall(observability.OperationGetDevices, started, err) }()

	query := url.Values{}
	query.Set("lang", c.lang)
	query.Set("user_api_hash", c.apiHash)

	decoded, err := c.do(ctx, http.MethodGet, pathGetDevices, c.baseURL+pathGetDevices+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var entries []any
	switch v := decoded.(type) {
	case []any:
		entries = v
	case map[string]any:
		entries, _ = v["items"].([]any)
	}

	return flattenDevices(entries), nil
}

func (c *Client) reportPayload(req domainMileage.ReportRequest) map[string]any {
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Report %s to %s", req.DateFrom, req.DateTo)
	}
	timeFrom := req.TimeFrom
	if timeFrom == "" {
		timeFrom = "00:00:00"
	}
	timeTo := req.TimeTo
	if timeTo == "" {
		timeTo = "23:59:59"
	}
	devices := req.DeviceIDs
	if devices == nil {
		devices = []int64{}
	}

	payload := map[string]any{
		"title":          title,
		"type":           c.reportType,
		"format":         "json",
		"speed_limit":    0,
		"devices":        devices,
		"geofences":      []any{},
		"daily":          0,
		"weekly":         0,
		"send_to_email":  "",
		"date_from":      req.DateFrom,
		"date_to":        req.DateTo,
		"from_time":      timeFrom,
		"to_time":        timeTo,
		"show_addresses": false,
		"zones_instead":  false,
		"stops":          0,
	}
	for k, v := range req.Extra {
		payload[k] = v
	}
	return payload
}

// resolveReportURL makes a job url absolute and refuses hosts other than the
// configured provider.
func (c *Client) resolveReportURL(raw string) (string, error) {
	target := raw
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(raw, "/")
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid generated report url: %w", err)
	}
	if parsed.Host != c.baseHost {
		logger.Warn("Generated report url host does not match provider",
			zap.String("base_host", c.baseHost),
			zap.String("target_host", parsed.Host),
		)
		return "", errForeignHost
	}
	return target, nil
}

// do sends the request and decodes the JSON body. path is what ends up in
// errors and logs, so it must never carry the api hash.
func (c *Client) do(ctx context.Context, method, path, target string, body []byte) (any, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &domainMileage.ProviderError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("Provider request",
		zap.String("method", method),
		zap.String("url", maskURL(target)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Provider request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(errors.New(maskURL(err.Error()))),
		)
		return nil, &domainMileage.ProviderError{Method: method, Path: path, Err: errors.New(maskURL(err.Error()))}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domainMileage.ProviderError{Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := truncate(string(raw), maxLoggedBody)
		logger.Error("Provider returned an unsuccessful response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", snippet),
		)
		return nil, &domainMileage.ProviderError{Method: method, Path: path, Status: resp.StatusCode, Body: snippet}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	var decoded any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, &domainMileage.ProviderError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   truncate(string(raw), maxLoggedBody),
			Err:    fmt.Errorf("malformed provider response: %w", err),
		}
	}
	return decoded, nil
}

func setDeviceIDs(err error, ids []int64) {
	var providerErr *domainMileage.ProviderError
	if errors.As(err, &providerErr) && len(providerErr.DeviceIDs) == 0 {
		providerErr.DeviceIDs = ids
	}
}

func maskURL(s string) string {
	return apiHashParam.ReplaceAllString(s, "${1}[HIDDEN]")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
