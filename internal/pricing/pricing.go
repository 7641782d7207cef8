// Package pricing computes order totals. It is pure: no I/O, no clock, no
// hidden state. Client-submitted totals are never trusted; every order is
// re-priced here server-side.
package pricing

import (
	"github.com/soumya813/SwaadGharKa/internal/models"
)

type Config struct {
	TaxRateBps        int64 // basis points, 1800 = 18%
	DeliveryFee       int64
	FreeDeliveryAbove int64
	PackagingFee      int64
}

func DefaultConfig() Config {
	return Config{
		TaxRateBps:        1800,
		DeliveryFee:       30,
		FreeDeliveryAbove: 300,
		PackagingFee:      10,
	}
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// PriceLine prices a single line: unit price plus per-unit customization
// extras, multiplied by quantity.
func (e *Engine) PriceLine(unitPrice int64, quantity int, customizations []models.Customization) int64 {
	perUnit := unitPrice
	for _, c := range customizations {
		if c.ExtraCost > 0 {
			perUnit += c.ExtraCost
		}
	}
	return perUnit * int64(quantity)
}

// PriceOrder computes the full breakdown for a snapshotted line set.
// Identical inputs always yield identical output.
func (e *Engine) PriceOrder(items []models.OrderItem, orderType models.OrderType) models.Pricing {
	var subtotal int64
	for _, item := range items {
		subtotal += e.PriceLine(item.UnitPrice, item.Quantity, item.Customizations)
	}

	tax := roundHalfUpBps(subtotal, e.cfg.TaxRateBps)

	var deliveryFee int64
	if orderType == models.OrderTypeDelivery && subtotal <= e.cfg.FreeDeliveryAbove {
		deliveryFee = e.cfg.DeliveryFee
	}

	p := models.Pricing{
		Subtotal:     subtotal,
		Tax:          tax,
		DeliveryFee:  deliveryFee,
		PackagingFee: e.cfg.PackagingFee,
		Discount:     0,
	}
	p.Total = p.Subtotal + p.Tax + p.DeliveryFee + p.PackagingFee - p.Discount
	return p
}

// roundHalfUpBps applies a basis-point rate with round-half-up on integer
// currency units.
func roundHalfUpBps(amount, bps int64) int64 {
	return (amount*bps + 5000) / 10000
}
