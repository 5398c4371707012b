// Package api is the HTTP client for the trend prediction service.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/trendscope/internal/model"
)

// Endpoint paths relative to the base URL.
const (
	PredictPath = "/predict_trend_from_image"
	HealthPath  = "/"
)

// Predictor is the contract the controller uses to talk to the prediction service.
type Predictor interface {
	Predict(ctx context.Context, req model.PredictionRequest) (*model.PredictionResponse, error)
	Health(ctx context.Context) error
}

// Config configures the HTTP client.
type Config struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
}

// Client implements Predictor over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Ensure we implement the interface.
var _ Predictor = (*Client)(nil)

// NewClient creates a client for the service at cfg.BaseURL.
// Per-request deadlines come from the caller's context; Timeout only bounds
// the transport when no HTTPClient is supplied.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "trendscope"
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  userAgent,
	}
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}
