// Package format renders orders and product lists into user-presentable
// chat markup.
package format

import (
	"fmt"
	"net/url"
	"strings"

	contractx "github.com/shelook/storebot/agent/contract"
)

type Config struct {
	PublicDomain string `envconfig:"PUBLIC_DOMAIN" split_words:"true" default:"shelook.in"`
}

// Formatter is a pure renderer; the public store domain is fixed at
// construction.
type Formatter struct {
	domain string
}

func New(cfg Config) *Formatter {
	domain := strings.TrimSpace(cfg.PublicDomain)
	if domain == "" {
		domain = "shelook.in"
	}
	return &Formatter{domain: domain}
}

// OrderStatus renders payment, fulfillment, and tracking for one order.
// Tracking priority: URL > number > "Shipped" (fulfillment without tracking)
// > "Processing" (no fulfillment yet).
func (f *Formatter) OrderStatus(order *contractx.Order) string {
	status := order.FulfillmentStatus
	if status == "" {
		status = "Unfulfilled"
	}
	financial := order.FinancialStatus
	if financial == "" {
		financial = "Pending"
	}

	tracking := "Processing"
	if len(order.Fulfillments) > 0 {
		first := order.Fulfillments[0]
		switch {
		case first.TrackingURL != "":
			tracking = fmt.Sprintf("<a href='%s' target='_blank'>Track Shipment</a>", first.TrackingURL)
		case first.TrackingNumber != "":
			tracking = first.TrackingNumber
		default:
			tracking = "Shipped"
		}
	}

	return fmt.Sprintf("📦 **Order %s**<br>Payment: %s<br>Status: %s<br>Tracking: %s",
		order.DisplayID, financial, status, tracking)
}

// ProductResult renders the first product as a card, or a catalog-search
// fallback link when the list is empty. Callers needing best-of-N must
// pre-rank before calling.
func (f *Formatter) ProductResult(query string, products []contractx.Product) string {
	if len(products) == 0 {
		searchURL := fmt.Sprintf("https://%s/search?q=%s", f.domain, url.QueryEscape(query))
		return fmt.Sprintf(
			"I couldn't find an exact match, but you can browse our collection here: <br>"+
				"<a href='%s' target='_blank' style='color:blue;'>View %s Collection</a>",
			searchURL, query)
	}

	p := products[0]
	productURL := fmt.Sprintf("https://%s/products/%s", f.domain, p.Handle)

	var b strings.Builder
	fmt.Fprintf(&b, "I recommend our <b>%s</b>.<br>", p.Title)
	if p.ImageURL != "" {
		fmt.Fprintf(&b, "<img src='%s' style='width:100%%; border-radius:8px; margin:10px 0;'><br>", p.ImageURL)
	}
	fmt.Fprintf(&b, "👉 <a href='%s' target='_blank' style='background:#000; color:#fff; padding:8px 15px; border-radius:20px; text-decoration:none;'>View Product</a>", productURL)
	return b.String()
}
