package stationapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/fuelshare/internal/config"
)

// Client exposes the station API operations used by the application.
type Client interface {
	Health(ctx context.Context) error
	ListTanks(ctx context.Context, station string) ([]TankRecord, error)
	CreateTank(ctx context.Context, tank TankRecord) error
	UpdateTank(ctx context.Context, id string, tank TankRecord) error
	DeleteTank(ctx context.Context, id string) error
	ListSupply(ctx context.Context, station string) ([]SupplyRecord, error)
	CreateSupply(ctx context.Context, records []SupplyRecord) error
	UpdateSupply(ctx context.Context, id string, record SupplyRecord) error
	DeleteSupply(ctx context.Context, id string) error
	SubmitPriceUpdate(ctx context.Context, req PriceUpdateRequest) (*PriceUpdateResponse, error)
}

type tokenKey struct{}

// WithToken attaches the caller's bearer token to ctx. It takes precedence over
// the configured token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient    *resty.Client
	token         string
	healthTimeout time.Duration
	timeout       time.Duration
	logger        *zap.Logger
}

// NewClient builds a station API client using the provided configuration values.
func NewClient(cfg config.StationAPIConfig, logger *zap.Logger) *APIClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	healthTimeout := cfg.HealthTimeout
	if healthTimeout <= 0 {
		healthTimeout = 2 * time.Second
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &APIClient{
		httpClient:    restyClient,
		token:         cfg.Token,
		healthTimeout: healthTimeout,
		timeout:       timeout,
		logger:        logger,
	}
}

// Health probes GET /health; any 2xx means the API is available.
func (c *APIClient) Health(ctx context.Context) error {
	return c.do(ctx, call{op: "health", method: http.MethodGet, path: "/health", timeout: c.healthTimeout})
}

// ListTanks fetches tanks, optionally filtered by station.
func (c *APIClient) ListTanks(ctx context.Context, station string) ([]TankRecord, error) {
	var tanks []TankRecord
	err := c.do(ctx, call{op: "list tanks", method: http.MethodGet, path: "/tanks", query: stationQuery(station), result: &tanks})
	if err != nil {
		return nil, err
	}
	return tanks, nil
}

// CreateTank registers a new tank.
func (c *APIClient) CreateTank(ctx context.Context, tank TankRecord) error {
	return c.do(ctx, call{op: "create tank", method: http.MethodPost, path: "/tanks", body: tank})
}

// UpdateTank replaces a tank.
func (c *APIClient) UpdateTank(ctx context.Context, id string, tank TankRecord) error {
	return c.do(ctx, call{op: "update tank", method: http.MethodPut, path: "/tanks/{id}", id: id, body: tank})
}

// DeleteTank removes a tank.
func (c *APIClient) DeleteTank(ctx context.Context, id string) error {
	return c.do(ctx, call{op: "delete tank", method: http.MethodDelete, path: "/tanks/{id}", id: id})
}

// ListSupply fetches supply records, optionally filtered by station.
func (c *APIClient) ListSupply(ctx context.Context, station string) ([]SupplyRecord, error) {
	var records []SupplyRecord
	err := c.do(ctx, call{op: "list supply", method: http.MethodGet, path: "/supply", query: stationQuery(station), result: &records})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CreateSupply submits one flattened record per destination.
func (c *APIClient) CreateSupply(ctx context.Context, records []SupplyRecord) error {
	return c.do(ctx, call{op: "create supply", method: http.MethodPost, path: "/supply", body: records})
}

// UpdateSupply replaces a supply record.
func (c *APIClient) UpdateSupply(ctx context.Context, id string, record SupplyRecord) error {
	return c.do(ctx, call{op: "update supply", method: http.MethodPut, path: "/supply/{id}", id: id, body: record})
}

// DeleteSupply removes a supply record.
func (c *APIClient) DeleteSupply(ctx context.Context, id string) error {
	return c.do(ctx, call{op: "delete supply", method: http.MethodDelete, path: "/supply/{id}", id: id})
}

// SubmitPriceUpdate propagates a price change. A 2xx reply with success=false is
// reported as an APIError.
func (c *APIClient) SubmitPriceUpdate(ctx context.Context, req PriceUpdateRequest) (*PriceUpdateResponse, error) {
	result := new(PriceUpdateResponse)
	if err := c.do(ctx, call{op: "submit price update", method: http.MethodPost, path: "/price-updates", body: req, result: result}); err != nil {
		return nil, err
	}
	if !result.Success {
		message := result.Message
		if message == "" {
			message = "price update rejected"
		}
		return nil, &APIError{Op: "submit price update", StatusCode: http.StatusOK, Message: message}
	}
	return result, nil
}

type call struct {
	op      string
	method  string
	path    string
	id      string
	query   map[string]string
	body    any
	result  any
	timeout time.Duration
}

func (c *APIClient) do(ctx context.Context, cl call) error {
	timeout := cl.timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	apiErr := new(errorBody)
	req := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr)

	if token := c.tokenFor(ctx); token != "" {
		req.SetAuthToken(token)
	}
	if cl.id != "" {
		req.SetPathParam("id", cl.id)
	}
	for k, v := range cl.query {
		req.SetQueryParam(k, v)
	}
	if cl.body != nil {
		req.SetBody(cl.body)
	}
	if cl.result != nil {
		req.SetResult(cl.result)
	}

	start := time.Now()
	resp, err := req.Execute(cl.method, cl.path)
	if err != nil {
		if resp == nil || resp.RawResponse == nil {
			c.logger.Debug("station api unreachable", zap.String("op", cl.op), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
			return &TransportError{Op: cl.op, Err: err}
		}
		if !resp.IsError() {
			return fmt.Errorf("%s: decode response: %w", cl.op, err)
		}
	}

	if resp.IsError() {
		message := apiErr.text()
		if message == "" {
			message = strings.TrimSpace(resp.String())
		}
		return &APIError{Op: cl.op, StatusCode: resp.StatusCode(), Message: message}
	}

	c.logger.Debug("station api call completed", zap.String("op", cl.op), zap.Int("status", resp.StatusCode()), zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (c *APIClient) tokenFor(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey{}).(string); ok && token != "" {
		return token
	}
	return c.token
}

func stationQuery(station string) map[string]string {
	if station == "" {
		return nil
	}
	return map[string]string{"station": station}
}
