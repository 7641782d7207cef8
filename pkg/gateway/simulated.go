package gateway

import (
	"context"
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// SimulatedUPIClient stands in for a UPI provider in development and demo
// environments. It must never be registered in production wiring: outcomes
// are random, not real confirmations.
type SimulatedUPIClient struct {
	SuccessRate float64 // 0..1

	mu       sync.Mutex
	payments map[string]int64 // reference -> amount
}

func NewSimulatedUPIClient(successRate float64) *SimulatedUPIClient {
	return &SimulatedUPIClient{
		SuccessRate: successRate,
		payments:    make(map[string]int64),
	}
}

func (c *SimulatedUPIClient) Name() string {
	return "upi"
}

func (c *SimulatedUPIClient) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	id := "UPI_" + uuid.NewString()

	c.mu.Lock()
	c.payments[id] = amount
	c.mu.Unlock()

	return &Intent{
		TransactionID: id,
		ClientToken:   id,
	}, nil
}

func (c *SimulatedUPIClient) Confirm(ctx context.Context, reference string) (*Confirmation, error) {
	c.mu.Lock()
	amount, ok := c.payments[reference]
	c.mu.Unlock()
	if !ok {
		return &Confirmation{Status: StatusFailed}, nil
	}

	if rand.Float64() < c.SuccessRate {
		return &Confirmation{Status: StatusSucceeded, PaidAmount: amount}, nil
	}
	return &Confirmation{Status: StatusFailed}, nil
}

func (c *SimulatedUPIClient) Refund(ctx context.Context, reference string, amount int64) (string, error) {
	return "REFUND_" + uuid.NewString(), nil
}
