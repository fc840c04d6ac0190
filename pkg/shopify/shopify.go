// Package shopify implements the storefront repository on the Shopify Admin
// REST API.
package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	contractx "github.com/shelook/storebot/agent/contract"
)

const maxResponseSizeBytes = 4 << 20

type Config struct {
	StoreURL   string        `envconfig:"STORE_URL" split_words:"true" required:"true"`
	AdminToken string        `envconfig:"ADMIN_TOKEN" split_words:"true" required:"true"`
	APIVersion string        `envconfig:"API_VERSION" split_words:"true" default:"2024-01"`
	Timeout    time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// Client talks to one store's admin API.
type Client struct {
	baseURL    string
	token      string
	apiVersion string
	httpClient *http.Client
}

var _ contractx.Repository = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	storeURL := strings.TrimRight(strings.TrimSpace(cfg.StoreURL), "/")
	if storeURL == "" {
		return nil, errors.New("shopify store url is required")
	}
	if !strings.Contains(storeURL, "://") {
		storeURL = "https://" + storeURL
	}
	if _, err := url.ParseRequestURI(storeURL); err != nil {
		return nil, fmt.Errorf("invalid shopify store url: %w", err)
	}

	token := strings.TrimSpace(cfg.AdminToken)
	if token == "" {
		return nil, errors.New("shopify admin token is required")
	}

	apiVersion := strings.TrimSpace(cfg.APIVersion)
	if apiVersion == "" {
		apiVersion = "2024-01"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL:    storeURL,
		token:      token,
		apiVersion: apiVersion,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

/* ------------------------------ wire types ------------------------------ */

type productPayload struct {
	Products []wireProduct `json:"products"`
}

type wireProduct struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Image  *struct {
		Src string `json:"src"`
	} `json:"image"`
}

type orderPayload struct {
	Orders []wireOrder `json:"orders"`
}

type wireOrder struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ContactEmail string `json:"contact_email"`
	Customer     *struct {
		Email string `json:"email"`
	} `json:"customer"`
	FulfillmentStatus string `json:"fulfillment_status"`
	FinancialStatus   string `json:"financial_status"`
	Fulfillments      []struct {
		TrackingNumber string `json:"tracking_number"`
		TrackingURL    string `json:"tracking_url"`
	} `json:"fulfillments"`
}

/* ------------------------------ repository ------------------------------ */

// SearchProducts queries the title index for keyword. Results come back in
// the API's native order.
func (c *Client) SearchProducts(ctx context.Context, keyword string) ([]contractx.Product, error) {
	endpoint := fmt.Sprintf("%s/admin/api/%s/products.json?title=%s",
		c.baseURL, c.apiVersion, url.QueryEscape(keyword))

	var payload productPayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	products := make([]contractx.Product, 0, len(payload.Products))
	for _, p := range payload.Products {
		product := contractx.Product{
			ID:     fmt.Sprintf("%d", p.ID),
			Title:  p.Title,
			Handle: p.Handle,
		}
		if p.Image != nil {
			product.ImageURL = p.Image.Src
		}
		products = append(products, product)
	}
	return products, nil
}

// FindOrder looks up one order by display id with status filter "any" so
// cancelled and closed orders still resolve. The first match wins.
func (c *Client) FindOrder(ctx context.Context, displayID string) (*contractx.Order, error) {
	clean := strings.ReplaceAll(displayID, " ", "")
	endpoint := fmt.Sprintf("%s/admin/api/%s/orders.json?name=%s&status=any",
		c.baseURL, c.apiVersion, url.QueryEscape(clean))

	var payload orderPayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if len(payload.Orders) == 0 {
		return nil, fmt.Errorf("%w: order %s", contractx.ErrNotFound, clean)
	}

	w := payload.Orders[0]
	order := &contractx.Order{
		ID:                w.ID,
		DisplayID:         w.Name,
		Email:             w.Email,
		ContactEmail:      w.ContactEmail,
		FulfillmentStatus: w.FulfillmentStatus,
		FinancialStatus:   w.FinancialStatus,
	}
	if w.Customer != nil {
		order.CustomerEmail = w.Customer.Email
	}
	for _, f := range w.Fulfillments {
		order.Fulfillments = append(order.Fulfillments, contractx.Fulfillment{
			TrackingNumber: f.TrackingNumber,
			TrackingURL:    f.TrackingURL,
		})
	}
	return order, nil
}

// CancelOrder issues the cancellation, keyed by the internal numeric id.
// Idempotency is Shopify's concern; the client never retries.
func (c *Client) CancelOrder(ctx context.Context, internalID int64) error {
	endpoint := fmt.Sprintf("%s/admin/api/%s/orders/%d/cancel.json",
		c.baseURL, c.apiVersion, internalID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader("{}"))
	if err != nil {
		return fmt.Errorf("build cancel request: %w", err)
	}

	_, err = c.do(req)
	return err
}

/* -------------------------------- plumbing ------------------------------- */

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build shopify request: %w", err)
	}

	raw, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode shopify response: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("X-Shopify-Access-Token", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read shopify response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: shopify http status=%d body=%s", contractx.ErrTransport, resp.StatusCode, string(raw))
	}
	return raw, nil
}
