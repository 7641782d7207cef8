// Package gateway abstracts payment providers behind one adapter interface so
// the order code never depends on which provider captured the money.
package gateway

import (
	"context"
	"errors"
)

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

var ErrNotConfigured = errors.New("payment gateway is not configured")

// Intent is the provider-side handle created before the client pays.
type Intent struct {
	TransactionID string `json:"transaction_id"`
	ClientToken   string `json:"client_token"`
}

// Confirmation is the provider's authoritative view of a payment.
type Confirmation struct {
	Status     Status `json:"status"`
	PaidAmount int64  `json:"paid_amount"` // integer currency units
}

type Gateway interface {
	Name() string
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error)
	Confirm(ctx context.Context, reference string) (*Confirmation, error)
	Refund(ctx context.Context, reference string, amount int64) (string, error)
}

// Registry resolves adapters by name, matching the gateway recorded on an
// order's payment info.
type Registry struct {
	gateways map[string]Gateway
}

func NewRegistry() *Registry {
	return &Registry{gateways: make(map[string]Gateway)}
}

func (r *Registry) Register(g Gateway) {
	r.gateways[g.Name()] = g
}

func (r *Registry) Get(name string) (Gateway, bool) {
	g, ok := r.gateways[name]
	return g, ok
}
