package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go-desert-guide/internal/models"

	log "github.com/sirupsen/logrus"
)

// Custom Error Types
var (
	ErrRateLimited    = errors.New("content store rate limit exceeded")
	ErrUnauthorized   = errors.New("content store request unauthorized (check token)")
	ErrNotFound       = errors.New("content store resource not found")
	ErrServerError    = errors.New("content store server error")
	ErrMissingBaseURL = errors.New("content store base URL is not configured")
)

// Client talks to the headless content store. It is constructed explicitly
// and passed to the catalog provider; there is no package-level singleton.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a content store client. Connection parameters are
// validated here so misconfiguration fails at startup instead of surfacing
// as a nil check at every call site.
func NewClient(cfg models.RemoteConfig, httpClient *http.Client, maxRetries int, initialRetryDelay time.Duration) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid content store base URL %q: %w", cfg.BaseURL, err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	if initialRetryDelay <= 0 {
		initialRetryDelay = time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: httpClient,
		maxRetries: maxRetries,
		retryDelay: initialRetryDelay,
	}, nil
}

// GetPlant fetches a single plant entry by slug.
func (c *Client) GetPlant(ctx context.Context, slug string) (models.RemotePlant, error) {
	reqURL := fmt.Sprintf("%s/plants/%s", c.baseURL, url.PathEscape(slug))

	var plant models.RemotePlant
	body, err := c.doGET(ctx, reqURL)
	if err != nil {
		return models.RemotePlant{}, err
	}

	if err := json.Unmarshal(body, &plant); err != nil {
		log.WithError(err).Errorf("Error unmarshalling plant JSON for slug %s", slug)
		return models.RemotePlant{}, fmt.Errorf("error unmarshalling plant JSON: %w", err)
	}
	return plant, nil
}

// GetCatalog fetches the full plant catalog, following cursor pagination
// until the store reports no further pages. Order is the store's order.
func (c *Client) GetCatalog(ctx context.Context) ([]models.RemotePlant, error) {
	var all []models.RemotePlant
	cursor := ""

	for {
		values := url.Values{}
		if cursor != "" {
			values.Set("cursor", cursor)
		}
		reqURL := fmt.Sprintf("%s/plants", c.baseURL)
		if enc := values.Encode(); enc != "" {
			reqURL += "?" + enc
		}

		body, err := c.doGET(ctx, reqURL)
		if err != nil {
			return nil, err
		}

		var page models.CatalogResponse
		if err := json.Unmarshal(body, &page); err != nil {
			log.WithError(err).Error("Error unmarshalling catalog page JSON")
			return nil, fmt.Errorf("error unmarshalling catalog JSON: %w", err)
		}

		all = append(all, page.Items...)
		cursor = page.Metadata.NextCursor
		if cursor == "" {
			return all, nil
		}
		log.Debugf("Following catalog cursor: %s (collected %d entries)", cursor, len(all))
	}
}

// doGET performs a GET with bounded retries. Rate limits and 5xx responses
// are retried with growing backoff; auth failures and 404s are not.
func (c *Client) doGET(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			sleep := time.Duration(attempt) * c.retryDelay
			log.WithError(lastErr).Warnf("Retrying (%d/%d) after %s...", attempt, c.maxRetries-1, sleep)
			select {
			case <-time.After(sleep):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("error creating request for %s: %w", reqURL, err)
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request failed (attempt %d/%d): %w", attempt+1, c.maxRetries, err)
			continue
		}

		switch resp.StatusCode {
		case http.StatusOK:
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				log.WithError(readErr).Error("Error reading response body")
				return nil, fmt.Errorf("error reading response body: %w", readErr)
			}
			return body, nil
		case http.StatusTooManyRequests:
			lastErr = ErrRateLimited
		case http.StatusUnauthorized, http.StatusForbidden:
			drainAndClose(resp)
			return nil, ErrUnauthorized
		case http.StatusNotFound:
			drainAndClose(resp)
			return nil, ErrNotFound
		default:
			if resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("%w (status code %d)", ErrServerError, resp.StatusCode)
			} else {
				drainAndClose(resp)
				return nil, fmt.Errorf("content store request failed with status %d", resp.StatusCode)
			}
		}

		// Retryable path: release the connection before the next attempt.
		drainAndClose(resp)
	}

	log.WithError(lastErr).Errorf("Request failed after %d attempts: %s", c.maxRetries, reqURL)
	return nil, lastErr
}

func drainAndClose(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}
