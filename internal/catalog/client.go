// Package catalog wraps the WooCommerce products API. Every call is
// best-effort: transport and parse failures are logged and surface to the
// caller as an empty result, never as an error.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/panesgr/chatbot-backend/pkg/config"
	"github.com/panesgr/chatbot-backend/pkg/logger"
)

const (
	productsPath          = "/wp-json/wc/v3/products"
	responseBodyReadLimit = 4 << 20
)

// Client fetches products from the remote catalog.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	consumerKey    string
	consumerSecret string
	logg           *logger.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured catalog base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the catalog client from configuration.
func NewClient(cfg config.CatalogConfig, logg *logger.Logger, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		httpClient:     &http.Client{Timeout: timeout},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		logg:           logg,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client
}

// Search returns products matching the free-text query.
func (c *Client) Search(ctx context.Context, query string, limit int) []Product {
	params := url.Values{}
	params.Set("search", query)
	return c.fetch(ctx, params, limit)
}

// Popular returns products ordered by popularity.
func (c *Client) Popular(ctx context.Context, limit int) []Product {
	params := url.Values{}
	params.Set("orderby", "popularity")
	return c.fetch(ctx, params, limit)
}

// OnSale returns products currently on sale.
func (c *Client) OnSale(ctx context.Context, limit int) []Product {
	params := url.Values{}
	params.Set("on_sale", "true")
	return c.fetch(ctx, params, limit)
}

// ByTag returns products carrying the given tag slug.
func (c *Client) ByTag(ctx context.Context, tagSlug string, limit int) []Product {
	params := url.Values{}
	params.Set("tag", tagSlug)
	return c.fetch(ctx, params, limit)
}

func (c *Client) fetch(ctx context.Context, params url.Values, limit int) []Product {
	if c == nil {
		return nil
	}
	if limit > 0 {
		params.Set("per_page", strconv.Itoa(limit))
	}
	if c.consumerKey != "" {
		params.Set("consumer_key", c.consumerKey)
		params.Set("consumer_secret", c.consumerSecret)
	}

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, productsPath, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logError(ctx, "catalog.request.build", err)
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logError(ctx, "catalog.request.execute", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		c.logError(ctx, "catalog.response.read", err)
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		c.logError(ctx, "catalog.response.status", fmt.Errorf("unexpected status %d", resp.StatusCode))
		return nil
	}

	var payloads []productPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		c.logError(ctx, "catalog.response.decode", err)
		return nil
	}

	products := make([]Product, 0, len(payloads))
	for _, payload := range payloads {
		products = append(products, payload.toProduct())
	}
	return products
}

func (c *Client) logError(ctx context.Context, msg string, err error) {
	if c.logg == nil {
		return
	}
	c.logg.Error(ctx, msg, err)
}
