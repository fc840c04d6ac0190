// Package pgstore implements the storefront repository on Postgres via bun.
// It backs local development and testing, where pointing the assistant at a
// live Shopify store is not an option.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/shelook/storebot/agent/contract"
)

type Config struct {
	DSN string `envconfig:"DSN" split_words:"true" required:"true"`
}

type Store struct {
	db *bun.DB
}

var _ contractx.Repository = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &Store{db: db}, nil
}

// NewFromDB wraps an existing connection, mainly for tests.
func NewFromDB(db *bun.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

/* --------------------------------- models -------------------------------- */

type productRow struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID       int64  `bun:"id,pk,autoincrement"`
	Title    string `bun:"title,notnull"`
	Handle   string `bun:"handle,notnull"`
	ImageURL string `bun:"image_url,nullzero"`
}

type orderRow struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID                int64     `bun:"id,pk,autoincrement"`
	DisplayID         string    `bun:"display_id,notnull"`
	Email             string    `bun:"email,nullzero"`
	ContactEmail      string    `bun:"contact_email,nullzero"`
	CustomerEmail     string    `bun:"customer_email,nullzero"`
	FulfillmentStatus string    `bun:"fulfillment_status,nullzero"`
	FinancialStatus   string    `bun:"financial_status,nullzero"`
	CancelledAt       time.Time `bun:"cancelled_at,nullzero"`
}

type fulfillmentRow struct {
	bun.BaseModel `bun:"table:fulfillments,alias:f"`

	ID             int64  `bun:"id,pk,autoincrement"`
	OrderID        int64  `bun:"order_id,notnull"`
	TrackingNumber string `bun:"tracking_number,nullzero"`
	TrackingURL    string `bun:"tracking_url,nullzero"`
}

/* ------------------------------- repository ------------------------------ */

func (s *Store) SearchProducts(ctx context.Context, keyword string) ([]contractx.Product, error) {
	var rows []productRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("p.title ILIKE ?", "%"+keyword+"%").
		Order("p.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	products := make([]contractx.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, contractx.Product{
			ID:       fmt.Sprintf("%d", r.ID),
			Title:    r.Title,
			Handle:   r.Handle,
			ImageURL: r.ImageURL,
		})
	}
	return products, nil
}

func (s *Store) FindOrder(ctx context.Context, displayID string) (*contractx.Order, error) {
	clean := strings.ToUpper(strings.ReplaceAll(displayID, " ", ""))

	var row orderRow
	err := s.db.NewSelect().
		Model(&row).
		Where("o.display_id = ?", clean).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %s", contractx.ErrNotFound, clean)
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	var fulfillments []fulfillmentRow
	err = s.db.NewSelect().
		Model(&fulfillments).
		Where("f.order_id = ?", row.ID).
		Order("f.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fulfillments: %w", err)
	}

	order := &contractx.Order{
		ID:                row.ID,
		DisplayID:         row.DisplayID,
		Email:             row.Email,
		ContactEmail:      row.ContactEmail,
		CustomerEmail:     row.CustomerEmail,
		FulfillmentStatus: row.FulfillmentStatus,
		FinancialStatus:   row.FinancialStatus,
	}
	for _, f := range fulfillments {
		order.Fulfillments = append(order.Fulfillments, contractx.Fulfillment{
			TrackingNumber: f.TrackingNumber,
			TrackingURL:    f.TrackingURL,
		})
	}
	return order, nil
}

// CancelOrder is idempotent: re-cancelling an already cancelled order leaves
// the original timestamp untouched.
func (s *Store) CancelOrder(ctx context.Context, internalID int64) error {
	_, err := s.db.NewUpdate().
		Model((*orderRow)(nil)).
		Set("cancelled_at = now()").
		Where("id = ?", internalID).
		Where("cancelled_at IS NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	return nil
}
