package rowsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// PostgRESTOption configures the PostgREST client.
type PostgRESTOption func(*postgrestClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) PostgRESTOption {
	return func(c *postgrestClient) {
		c.http = hc
	}
}

// WithSchema sets the Accept-Profile schema header.
func WithSchema(schema string) PostgRESTOption {
	return func(c *postgrestClient) {
		c.schema = schema
	}
}

// WithRateLimit caps outbound request rate against the shared data service.
func WithRateLimit(rps float64, burst int) PostgRESTOption {
	return func(c *postgrestClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

type postgrestClient struct {
	baseURL string
	apiKey  string
	schema  string
	http    *http.Client
	limiter *rate.Limiter
}

// NewPostgREST creates a row-source client speaking PostgREST query syntax.
func NewPostgREST(baseURL, apiKey string, opts ...PostgRESTOption) Client {
	c := &postgrestClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// postgrestError is the JSON error body PostgREST returns on failure.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// retryDo executes a request with exponential backoff on transient
// failures. Returns the response body and status code of the last attempt.
func (c *postgrestClient) retryDo(ctx context.Context, req *http.Request) ([]byte, int, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		retryReq := req.Clone(ctx)

		resp, err := c.http.Do(retryReq)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "postgrest: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("postgrest: status %d: %s", resp.StatusCode, string(body))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

func (c *postgrestClient) Select(ctx context.Context, q Query) ([]GenericRow, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "postgrest: rate limiter")
	}

	params := url.Values{}
	params.Set(q.FilterColumn, "eq."+q.FilterValue)
	if q.OrderColumn != "" {
		dir := "desc"
		if q.Ascending {
			dir = "asc"
		}
		params.Set("order", q.OrderColumn+"."+dir)
	}
	if q.Limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", q.Limit))
	}
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(q.Table), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "postgrest: create request")
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if c.schema != "" {
		req.Header.Set("Accept-Profile", c.schema)
	}

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "postgrest: request failed")
	}

	if statusCode < 200 || statusCode >= 300 {
		var pe postgrestError
		if jsonErr := json.Unmarshal(body, &pe); jsonErr == nil && pe.Message != "" {
			return nil, &SourceError{Code: pe.Code, Message: pe.Message}
		}
		return nil, &SourceError{Message: fmt.Sprintf("status %d: %s", statusCode, string(body))}
	}

	var rows []GenericRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, eris.Wrap(err, "postgrest: unmarshal rows")
	}
	return rows, nil
}

func (c *postgrestClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
