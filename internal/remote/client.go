// Package remote implements the catalog, review, and auth repositories
// against the hosted catalog API (a PostgREST-style REST surface). It is a
// thin I/O wrapper: no caching, no retries beyond the HTTP client's own
// timeout policy.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/afariz/mediashelf/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "MediaShelf/1.0"
)

// Client implements domain.CatalogRepository, domain.ReviewRepository, and
// domain.Authenticator.
type Client struct {
	baseURL    string
	apiKey     string
	token      string // Session bearer token; falls back to the API key
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a catalog API client.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetToken installs the session bearer token obtained from Authenticate.
func (c *Client) SetToken(token string) {
	c.token = token
}

// apiError is the error body the REST layer returns on rejection.
type apiError struct {
	Message string `json:"message"`
	Details string `json:"details"`
}

// doRequest performs an authenticated request and returns the response
// body. Transport failures map to ErrServerOffline, auth rejections to
// ErrAuthFailed, 404 to ErrNotFound, and payload rejections to a
// ValidationError carrying the server's message.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	reqURL := c.baseURL + path
	if query != nil {
		reqURL += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("apikey", c.apiKey)
	token := c.token
	if token == "" {
		token = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		// Ask the REST layer to echo the stored row back
		req.Header.Set("Prefer", "return=representation")
	}

	c.logger.Debug("catalog request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, &domain.ValidationError{Message: apiErr.Message}
		}
		return nil, fmt.Errorf("request rejected with status %d", resp.StatusCode)
	case resp.StatusCode >= 300:
		c.logger.Error("catalog request error", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return respBody, nil
}

func collectionPath(kind domain.Kind) string {
	return "/rest/v1/" + kind.Plural()
}

func reviewsPath(kind domain.Kind) string {
	return "/rest/v1/" + kind.String() + "_reviews"
}

// ListItems returns the full collection, ordered by rating descending.
func (c *Client) ListItems(ctx context.Context, kind domain.Kind) ([]domain.Item, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "rating.desc")

	body, err := c.doRequest(ctx, http.MethodGet, collectionPath(kind), q, nil)
	if err != nil {
		return nil, err
	}

	var dtos []itemDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("failed to parse collection: %w", err)
	}
	return mapItems(kind, dtos), nil
}

// GetItem returns a single item or ErrNotFound.
func (c *Client) GetItem(ctx context.Context, kind domain.Kind, id string) (domain.Item, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)

	body, err := c.doRequest(ctx, http.MethodGet, collectionPath(kind), q, nil)
	if err != nil {
		return domain.Item{}, err
	}

	var dtos []itemDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return domain.Item{}, fmt.Errorf("failed to parse item: %w", err)
	}
	if len(dtos) == 0 {
		return domain.Item{}, domain.ErrNotFound
	}
	return mapItem(kind, dtos[0]), nil
}

// InsertItem creates a new item and returns the stored record.
func (c *Client) InsertItem(ctx context.Context, kind domain.Kind, fields domain.ItemFields) (domain.Item, error) {
	body, err := c.doRequest(ctx, http.MethodPost, collectionPath(kind), nil, fieldsToDTO(kind, fields))
	if err != nil {
		return domain.Item{}, err
	}
	return parseSingleItem(kind, body)
}

// UpdateItem replaces an item's mutable fields and returns the stored record.
func (c *Client) UpdateItem(ctx context.Context, kind domain.Kind, id string, fields domain.ItemFields) (domain.Item, error) {
	q := url.Values{}
	q.Set("id", "eq."+id)

	body, err := c.doRequest(ctx, http.MethodPatch, collectionPath(kind), q, fieldsToDTO(kind, fields))
	if err != nil {
		return domain.Item{}, err
	}
	return parseSingleItem(kind, body)
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, kind domain.Kind, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)

	_, err := c.doRequest(ctx, http.MethodDelete, collectionPath(kind), q, nil)
	return err
}

// ListReviews returns an item's reviews, newest first.
func (c *Client) ListReviews(ctx context.Context, kind domain.Kind, itemID string) ([]domain.Review, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("item_id", "eq."+itemID)
	q.Set("order", "created_at.desc")

	body, err := c.doRequest(ctx, http.MethodGet, reviewsPath(kind), q, nil)
	if err != nil {
		return nil, err
	}

	var dtos []reviewDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("failed to parse reviews: %w", err)
	}
	return mapReviews(dtos), nil
}

// InsertReview creates a review and returns the stored record.
func (c *Client) InsertReview(ctx context.Context, kind domain.Kind, review domain.Review) (domain.Review, error) {
	payload := reviewPayload{
		ItemID: review.ItemID,
		Author: review.Author,
		Rating: review.Rating,
		Text:   review.Text,
	}

	body, err := c.doRequest(ctx, http.MethodPost, reviewsPath(kind), nil, payload)
	if err != nil {
		return domain.Review{}, err
	}

	var dtos []reviewDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return domain.Review{}, fmt.Errorf("failed to parse review: %w", err)
	}
	if len(dtos) == 0 {
		return domain.Review{}, fmt.Errorf("empty response to review insert")
	}
	return mapReview(dtos[0]), nil
}

func parseSingleItem(kind domain.Kind, body []byte) (domain.Item, error) {
	var dtos []itemDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return domain.Item{}, fmt.Errorf("failed to parse item: %w", err)
	}
	if len(dtos) == 0 {
		return domain.Item{}, fmt.Errorf("empty response to mutation")
	}
	return mapItem(kind, dtos[0]), nil
}
