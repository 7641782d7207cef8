package models

import (
	"time"
)

type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusPickedUp       OrderStatus = "picked-up"
	StatusCancelled      OrderStatus = "cancelled"
	StatusRefunded       OrderStatus = "refunded"
)

var OrderStatuses = map[OrderStatus]bool{
	StatusPlaced: true, StatusConfirmed: true, StatusPreparing: true,
	StatusReady: true, StatusOutForDelivery: true, StatusDelivered: true,
	StatusPickedUp: true, StatusCancelled: true, StatusRefunded: true,
}

// IsTerminal reports whether no further transition is allowed from s.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusPickedUp, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentCOD    PaymentMethod = "cod"
	PaymentWallet PaymentMethod = "wallet"
)

var PaymentMethods = map[PaymentMethod]bool{
	PaymentCard: true, PaymentUPI: true, PaymentCOD: true, PaymentWallet: true,
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

type Order struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	OrderNumber string `json:"order_number" gorm:"unique;not null"`
	CustomerID  uint   `json:"customer_id" gorm:"not null;index"`
	Customer    *User  `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	Pricing Pricing `json:"pricing" gorm:"embedded;embeddedPrefix:pricing_"`

	DeliveryAddress DeliveryAddress `json:"delivery_address" gorm:"embedded;embeddedPrefix:address_"`
	ContactInfo     ContactInfo     `json:"contact_info" gorm:"embedded;embeddedPrefix:contact_"`

	OrderType   OrderType   `json:"order_type" gorm:"default:'delivery'"`
	PaymentInfo PaymentInfo `json:"payment_info" gorm:"embedded;embeddedPrefix:payment_"`

	Status        OrderStatus         `json:"status" gorm:"default:'placed';index"`
	StatusHistory []OrderStatusChange `json:"status_history" gorm:"foreignKey:OrderID"`

	IsScheduled   bool       `json:"is_scheduled" gorm:"default:false"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	ScheduledTime string     `json:"scheduled_time"`

	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time"`
	ActualDeliveryTime    *time.Time `json:"actual_delivery_time"`

	SpecialInstructions string `json:"special_instructions"`

	RatingFood     int    `json:"rating_food"`
	RatingDelivery int    `json:"rating_delivery"`
	RatingOverall  int    `json:"rating_overall"`
	Review         string `json:"review"`

	Cancellation Cancellation `json:"cancellation" gorm:"embedded;embeddedPrefix:cancel_"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	// Optimistic lock for concurrent transitions
	Version int `json:"-" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is a frozen snapshot of the menu item at order-creation time.
// It never re-reads live menu state, so later menu edits cannot change the
// price the customer agreed to.
type OrderItem struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	OrderID             uint            `json:"order_id" gorm:"not null;index"`
	MenuItemID          uint            `json:"menu_item_id" gorm:"not null"`
	Name                string          `json:"name" gorm:"not null"`
	UnitPrice           int64           `json:"unit_price" gorm:"not null"`
	Quantity            int             `json:"quantity" gorm:"not null"`
	SpecialInstructions string          `json:"special_instructions"`
	Customizations      []Customization `json:"customizations" gorm:"serializer:json"`
	CreatedAt           time.Time       `json:"created_at"`
}

type Customization struct {
	Name      string `json:"name"`
	Option    string `json:"option"`
	ExtraCost int64  `json:"extra_cost"`
}

type Pricing struct {
	Subtotal     int64 `json:"subtotal"`
	Tax          int64 `json:"tax"`
	DeliveryFee  int64 `json:"delivery_fee"`
	PackagingFee int64 `json:"packaging_fee"`
	Discount     int64 `json:"discount"`
	Total        int64 `json:"total"`
}

type DeliveryAddress struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark"`
}

type ContactInfo struct {
	Phone          string `json:"phone"`
	AlternatePhone string `json:"alternate_phone"`
	Email          string `json:"email"`
}

type PaymentInfo struct {
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status" gorm:"default:'pending'"`
	TransactionID string        `json:"transaction_id"`
	Gateway       string        `json:"gateway"` // razorpay, stripe, upi
	PaidAmount    int64         `json:"paid_amount"`
	PaymentDate   *time.Time    `json:"payment_date"`
	RefundID      string        `json:"refund_id"`
	RefundAmount  int64         `json:"refund_amount"`
	RefundDate    *time.Time    `json:"refund_date"`
}

type Cancellation struct {
	Reason          string     `json:"reason"`
	CancelledBy     uint       `json:"cancelled_by"`
	CancelledAt     *time.Time `json:"cancelled_at"`
	RefundProcessed bool       `json:"refund_processed" gorm:"default:false"`
}

// OrderStatusChange is one append-only entry in an order's status history.
type OrderStatusChange struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	OrderID   uint        `json:"order_id" gorm:"not null;index"`
	Status    OrderStatus `json:"status" gorm:"not null"`
	Timestamp time.Time   `json:"timestamp" gorm:"not null"`
	UpdatedBy uint        `json:"updated_by"`
	Notes     string      `json:"notes"`
}

var CancellationReasons = map[string]bool{
	"customer-request":       true,
	"restaurant-unavailable": true,
	"item-unavailable":       true,
	"payment-failed":         true,
	"delivery-issues":        true,
	"other":                  true,
}

// CanCancel mirrors the customer-facing cancellation window: only before the
// kitchen starts and only while money has not been captured.
func (o *Order) CanCancel() bool {
	if o.Status != StatusPlaced && o.Status != StatusConfirmed {
		return false
	}
	return o.PaymentInfo.Status != PaymentCompleted
}

// IsDelivered covers both fulfillment variants.
func (o *Order) IsDelivered() bool {
	return o.Status == StatusDelivered || o.Status == StatusPickedUp
}

// TotalItems is the summed quantity across line items.
func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}
