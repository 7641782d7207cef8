package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/soumya813/SwaadGharKa/internal/apperr"
	"github.com/soumya813/SwaadGharKa/internal/models"
	"github.com/soumya813/SwaadGharKa/internal/repository"
	"github.com/soumya813/SwaadGharKa/pkg/gateway"
)

// InitiateResult is what the storefront needs to run the client-side payment
// flow against the chosen provider.
type InitiateResult struct {
	Gateway       string `json:"gateway"`
	TransactionID string `json:"transaction_id"`
	ClientToken   string `json:"client_token"`
	Amount        int64  `json:"amount"`
}

// handshakeTTL bounds how long an initiated-but-unconfirmed handshake stays
// retrievable.
const handshakeTTL = 15 * time.Minute

// HandshakeStore holds the client handshake produced by Initiate until the
// payment is confirmed, so a storefront retry gets the open intent back
// instead of opening a second one at the gateway.
type HandshakeStore interface {
	SetTempData(key string, value interface{}, ttl time.Duration) error
	GetTempData(key string, dest interface{}) error
	DeleteTempData(key string) error
}

// PaymentService reconciles heterogeneous gateway outcomes onto the order's
// uniform payment state.
type PaymentService interface {
	Initiate(actor Actor, orderID uint, gatewayName string, declaredAmount int64) (*InitiateResult, error)
	Confirm(actor Actor, orderID uint, reference string) (*models.Order, error)
	ConfirmCOD(actor Actor, orderID uint) (*models.Order, error)
	Refund(actor Actor, orderID uint, amount int64, reason string) (*models.Order, string, error)
	Status(actor Actor, orderID uint) (*models.PaymentInfo, models.OrderStatus, error)
	VerifySignature(payload, signature string) bool
}

type paymentService struct {
	orderRepo     repository.OrderRepository
	gateways      *gateway.Registry
	handshakes    HandshakeStore
	signingSecret string
	callTimeout   time.Duration
}

func NewPaymentService(orderRepo repository.OrderRepository, gateways *gateway.Registry, handshakes HandshakeStore, signingSecret string, callTimeout time.Duration) PaymentService {
	return &paymentService{
		orderRepo:     orderRepo,
		gateways:      gateways,
		handshakes:    handshakes,
		signingSecret: signingSecret,
		callTimeout:   callTimeout,
	}
}

func (s *paymentService) Initiate(actor Actor, orderID uint, gatewayName string, declaredAmount int64) (*InitiateResult, error) {
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !CanMutateOrder(actor, order) {
		return nil, apperr.New(apperr.Forbidden, "Not authorized to pay for this order")
	}
	if order.PaymentInfo.Status == models.PaymentCompleted {
		return nil, apperr.New(apperr.Conflict, "Order has already been paid")
	}
	if order.PaymentInfo.Method == models.PaymentCOD {
		return nil, apperr.New(apperr.ValidationFailed, "Cash-on-delivery orders do not need a payment intent")
	}

	// The declared amount is only ever compared, never used: the gateway is
	// charged the server-side total.
	if declaredAmount != order.Pricing.Total {
		return nil, apperr.New(apperr.AmountMismatch, "Payment amount does not match order total")
	}

	g, ok := s.gateways.Get(gatewayName)
	if !ok {
		return nil, apperr.Newf(apperr.ValidationFailed, "Unknown payment gateway: %s", gatewayName)
	}

	// A retry while the previous intent is still settling gets the stored
	// handshake back instead of opening a second intent at the gateway.
	if order.PaymentInfo.Status == models.PaymentProcessing {
		var cached InitiateResult
		if err := s.handshakes.GetTempData(handshakeKey(order.ID), &cached); err == nil && cached.Gateway == g.Name() {
			return &cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.callTimeout)
	defer cancel()

	intent, err := g.CreateIntent(ctx, order.Pricing.Total, "INR", map[string]string{
		"order_id":     order.OrderNumber,
		"order_number": order.OrderNumber,
	})
	if err != nil {
		if errors.Is(err, gateway.ErrNotConfigured) {
			return nil, apperr.Wrap(apperr.PaymentGatewayError, "Payment service is not configured", err)
		}
		return nil, apperr.Wrap(apperr.PaymentGatewayError, "Failed to initiate payment", err)
	}

	order.PaymentInfo.Status = models.PaymentProcessing
	order.PaymentInfo.Gateway = g.Name()
	order.PaymentInfo.TransactionID = intent.TransactionID

	if err := s.update(order, nil); err != nil {
		return nil, err
	}

	result := &InitiateResult{
		Gateway:       g.Name(),
		TransactionID: intent.TransactionID,
		ClientToken:   intent.ClientToken,
		Amount:        order.Pricing.Total,
	}
	// Best effort: losing the cache only costs a fresh intent on retry.
	_ = s.handshakes.SetTempData(handshakeKey(order.ID), result, handshakeTTL)

	return result, nil
}

// Confirm asks the gateway for the authoritative payment status; the client's
// claim of success is never trusted.
func (s *paymentService) Confirm(actor Actor, orderID uint, reference string) (*models.Order, error) {
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !CanMutateOrder(actor, order) {
		return nil, apperr.New(apperr.Forbidden, "Not authorized to confirm this payment")
	}
	if order.PaymentInfo.Status == models.PaymentCompleted {
		return nil, apperr.New(apperr.Conflict, "Payment has already been confirmed")
	}

	g, ok := s.gateways.Get(order.PaymentInfo.Gateway)
	if !ok {
		return nil, apperr.Newf(apperr.ValidationFailed, "No gateway recorded for this order")
	}

	if reference == "" {
		reference = order.PaymentInfo.TransactionID
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.callTimeout)
	defer cancel()

	conf, err := g.Confirm(ctx, reference)
	if err != nil {
		return nil, apperr.Wrap(apperr.PaymentGatewayError, "Failed to verify payment with gateway", err)
	}

	now := time.Now()
	switch conf.Status {
	case gateway.StatusSucceeded:
		order.PaymentInfo.Status = models.PaymentCompleted
		order.PaymentInfo.PaidAmount = conf.PaidAmount
		order.PaymentInfo.PaymentDate = &now

		var history *models.OrderStatusChange
		if order.Status == models.StatusPlaced {
			order.Status = models.StatusConfirmed
			history = &models.OrderStatusChange{
				Status:    models.StatusConfirmed,
				Timestamp: now,
				UpdatedBy: actor.ID,
				Notes:     "payment completed",
			}
		}
		if err := s.update(order, history); err != nil {
			return nil, err
		}
		_ = s.handshakes.DeleteTempData(handshakeKey(order.ID))
		return order, nil

	case gateway.StatusPending:
		// Still settling upstream; leave order status untouched.
		order.PaymentInfo.Status = models.PaymentProcessing
		if err := s.update(order, nil); err != nil {
			return nil, err
		}
		return nil, apperr.New(apperr.Conflict, "Payment is still processing")

	default:
		order.PaymentInfo.Status = models.PaymentFailed
		if err := s.update(order, nil); err != nil {
			return nil, err
		}
		_ = s.handshakes.DeleteTempData(handshakeKey(order.ID))
		return nil, apperr.New(apperr.PaymentGatewayError, "Payment was not completed")
	}
}

// ConfirmCOD accepts the order with payment deferred to delivery.
func (s *paymentService) ConfirmCOD(actor Actor, orderID uint) (*models.Order, error) {
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !CanMutateOrder(actor, order) {
		return nil, apperr.New(apperr.Forbidden, "Not authorized to confirm this order")
	}
	if order.PaymentInfo.Method != models.PaymentCOD {
		return nil, apperr.New(apperr.ValidationFailed, "This order is not a cash-on-delivery order")
	}
	if order.Status != models.StatusPlaced {
		return nil, apperr.New(apperr.Conflict, "Order has already been confirmed")
	}

	now := time.Now()
	order.PaymentInfo.Status = models.PaymentPending
	order.Status = models.StatusConfirmed

	history := &models.OrderStatusChange{
		Status:    models.StatusConfirmed,
		Timestamp: now,
		UpdatedBy: actor.ID,
		Notes:     "cash on delivery confirmed",
	}
	if err := s.update(order, history); err != nil {
		return nil, err
	}
	return order, nil
}

// Refund pushes a refund through the gateway that captured the payment and
// marks the order refunded. Gateway failure leaves the order untouched.
func (s *paymentService) Refund(actor Actor, orderID uint, amount int64, reason string) (*models.Order, string, error) {
	if amount < 1 {
		return nil, "", apperr.New(apperr.ValidationFailed, "Refund amount must be a positive amount")
	}
	if reason == "" {
		return nil, "", apperr.New(apperr.ValidationFailed, "Refund reason is required")
	}

	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, "", err
	}
	if !CanMutateOrder(actor, order) {
		return nil, "", apperr.New(apperr.Forbidden, "Not authorized to process a refund for this order")
	}
	if order.PaymentInfo.Status != models.PaymentCompleted {
		return nil, "", apperr.New(apperr.Conflict, "Cannot refund an order with incomplete payment")
	}
	if amount > order.PaymentInfo.PaidAmount {
		return nil, "", apperr.New(apperr.ValidationFailed, "Refund amount cannot exceed paid amount")
	}

	var refundID string
	if g, ok := s.gateways.Get(order.PaymentInfo.Gateway); ok {
		ctx, cancel := context.WithTimeout(context.Background(), s.callTimeout)
		defer cancel()

		refundID, err = g.Refund(ctx, order.PaymentInfo.TransactionID, amount)
		if err != nil {
			return nil, "", apperr.Wrap(apperr.PaymentGatewayError, "Failed to process refund", err)
		}
	} else {
		// Methods with no gateway (cash on delivery, wallet credit) get a
		// manual refund record.
		refundID = "REFUND_" + uuid.NewString()
	}

	now := time.Now()
	order.PaymentInfo.RefundID = refundID
	order.PaymentInfo.RefundAmount = amount
	order.PaymentInfo.RefundDate = &now
	order.PaymentInfo.Status = models.PaymentRefunded
	order.Status = models.StatusRefunded
	order.Cancellation.RefundProcessed = true

	history := &models.OrderStatusChange{
		Status:    models.StatusRefunded,
		Timestamp: now,
		UpdatedBy: actor.ID,
		Notes:     reason,
	}
	if err := s.update(order, history); err != nil {
		return nil, "", err
	}
	return order, refundID, nil
}

func (s *paymentService) Status(actor Actor, orderID uint) (*models.PaymentInfo, models.OrderStatus, error) {
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, "", err
	}
	if !CanViewOrder(actor, order) {
		return nil, "", apperr.New(apperr.Forbidden, "Not authorized to view payment status")
	}
	return &order.PaymentInfo, order.Status, nil
}

// VerifySignature checks an HMAC-SHA256 hex signature over payload. It fails
// closed: any mismatch or malformed signature rejects.
func (s *paymentService) VerifySignature(payload, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.signingSecret))
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))

	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	want, _ := hex.DecodeString(expected)
	return hmac.Equal(got, want)
}

func handshakeKey(orderID uint) string {
	return fmt.Sprintf("payment_handshake:%d", orderID)
}

func (s *paymentService) loadOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load order", err)
	}
	if order == nil || !order.IsActive {
		return nil, apperr.New(apperr.NotFound, "Order not found")
	}
	return order, nil
}

func (s *paymentService) update(order *models.Order, history *models.OrderStatusChange) error {
	err := s.orderRepo.UpdateWithVersion(order, history)
	if errors.Is(err, repository.ErrVersionConflict) {
		return apperr.New(apperr.Conflict, "Order was updated concurrently, please retry")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to update order", err)
	}
	return nil
}
