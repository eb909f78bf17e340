package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/rshade/feedline/internal/logging"
)

// Defaults applied to zero Config fields.
const (
	DefaultPageSize     = 50
	MaxPageSize         = 200
	DefaultTimeout      = 15 * time.Second
	DefaultRetryMax     = 3
	DefaultRetryWaitMin = 500 * time.Millisecond
	DefaultRetryWaitMax = 10 * time.Second

	maxErrorBody = 64 << 10
	maxBody      = 16 << 20
)

// ErrMissingToken is returned by NewClient without credentials.
var ErrMissingToken = errors.New("api token is required")

// Config configures a Client.
type Config struct {
	BaseURL  string
	Token    string
	PageSize int
	Timeout  time.Duration

	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// RatePerSec and Burst feed the client-side token bucket. A zero rate
	// disables it.
	RatePerSec float64
	Burst      int

	// HTTPClient is the transport retryablehttp wraps. When nil a pooled
	// default with Timeout is used.
	HTTPClient *http.Client
}

// Client is an authenticated API client. It is safe for concurrent use.
type Client struct {
	http     *http.Client
	baseURL  string
	token    string
	pageSize int
	limiter  *rate.Limiter
	log      zerolog.Logger
}

// NewClient builds a client from cfg. log receives retry diagnostics.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}

	log = logging.ComponentLogger(log, "httpapi")

	retryClient := retryablehttp.NewClient()
	if cfg.HTTPClient != nil {
		retryClient.HTTPClient = cfg.HTTPClient
	} else {
		retryClient.HTTPClient.Timeout = orDefault(cfg.Timeout, DefaultTimeout)
	}
	retryClient.RetryMax = DefaultRetryMax
	if cfg.RetryMax > 0 {
		retryClient.RetryMax = cfg.RetryMax
	}
	retryClient.RetryWaitMin = orDefault(cfg.RetryWaitMin, DefaultRetryWaitMin)
	retryClient.RetryWaitMax = orDefault(cfg.RetryWaitMax, DefaultRetryWaitMax)
	retryClient.Logger = retryLogger{log: log}
	// Hand the final response back so its status and body become an APIError.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Client{
		http:     retryClient.StandardClient(),
		baseURL:  strings.TrimSuffix(base.String(), "/"),
		token:    cfg.Token,
		pageSize: min(pageSize, MaxPageSize),
		limiter:  newRateLimiter(cfg.RatePerSec, cfg.Burst),
		log:      log,
	}, nil
}

// PageSize returns the count sent with every timeline request.
func (c *Client) PageSize() int { return c.pageSize }

// do sends one request and returns the body of a 2xx response.
// endpoint is the path without ".json", e.g. "statuses/home_timeline".
func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values) ([]byte, error) {
	log := logging.FromContext(ctx).With().
		Str("component", "httpapi").
		Str("method", method).
		Str("endpoint", endpoint).
		Logger()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s %s: rate limiter: %w", method, endpoint, err)
	}

	target := c.baseURL + "/" + endpoint + ".json"
	var body io.Reader
	if method == http.MethodGet {
		if len(params) > 0 {
			target += "?" + params.Encode()
		}
	} else {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if traceID := logging.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Request-Id", traceID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("request failed")
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{Method: method, Endpoint: endpoint, StatusCode: resp.StatusCode}
		apiErr.Message, apiErr.Code = decodeErrorMessage(raw)
		if apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		log.Warn().Int("status", resp.StatusCode).Int("code", apiErr.Code).Msg(apiErr.Message)
		return nil, apiErr
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading body: %w", method, endpoint, err)
	}
	log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")
	return raw, nil
}

func (c *Client) countParam() string {
	return strconv.Itoa(c.pageSize)
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
