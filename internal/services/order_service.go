package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/soumya813/SwaadGharKa/internal/apperr"
	"github.com/soumya813/SwaadGharKa/internal/models"
	"github.com/soumya813/SwaadGharKa/internal/pricing"
	"github.com/soumya813/SwaadGharKa/internal/repository"
)

const (
	// minimum kitchen time assumed per order, minutes
	prepTimeFloor = 15
	// extra travel allowance for delivery orders, minutes
	deliveryAllowance = 30

	orderNumberRetries = 3
)

// OrderSequencer hands out the per-day sequence used in order numbers. The
// implementation must be atomic across concurrent creations.
type OrderSequencer interface {
	NextOrderSequence(date time.Time) (int64, error)
}

// allowedTransitions is the status adjacency graph. Any jump not listed here
// is rejected; cancelled and refunded are reachable only through their own
// guarded operations plus the admin edges below.
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPlaced:         {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:      {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing:      {models.StatusReady},
	models.StatusReady:          {models.StatusOutForDelivery, models.StatusPickedUp},
	models.StatusOutForDelivery: {models.StatusDelivered},
}

type CreateOrderItemInput struct {
	MenuItemID          uint
	Quantity            int
	SpecialInstructions string
	Customizations      []models.Customization
}

type CreateOrderInput struct {
	Items               []CreateOrderItemInput
	DeliveryAddress     models.DeliveryAddress
	ContactInfo         models.ContactInfo
	OrderType           models.OrderType
	PaymentMethod       models.PaymentMethod
	SpecialInstructions string
	IsScheduled         bool
	ScheduledDate       *time.Time
	ScheduledTime       string
}

type OrderService interface {
	Create(actor Actor, input CreateOrderInput) (*models.Order, error)
	GetByID(actor Actor, id uint) (*models.Order, error)
	ListMine(actor Actor, status models.OrderStatus, page, limit int) ([]models.Order, int64, error)
	ListAll(actor Actor, filter repository.OrderListFilter) ([]models.Order, int64, *repository.OrderSummary, error)
	UpdateStatus(actor Actor, id uint, newStatus models.OrderStatus, notes string) (*models.Order, error)
	Cancel(actor Actor, id uint, reason string) (*models.Order, error)
	Review(actor Actor, id uint, ratingFood, ratingDelivery, ratingOverall int, review string) (*models.Order, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	menuService  MenuService
	engine       *pricing.Engine
	sequencer    OrderSequencer
	numberPrefix string
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	menuService MenuService,
	engine *pricing.Engine,
	sequencer OrderSequencer,
	numberPrefix string,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		menuService:  menuService,
		engine:       engine,
		sequencer:    sequencer,
		numberPrefix: numberPrefix,
	}
}

var (
	pincodeRe = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	phoneRe   = regexp.MustCompile(`^(\+91[\-\s]?)?[0]?(91)?[6789]\d{9}$`)
	emailRe   = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)
)

func (s *orderService) Create(actor Actor, input CreateOrderInput) (*models.Order, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()

	// Re-check every referenced item against live storage and freeze a
	// snapshot; menu edits after this point cannot change the agreed price.
	items := make([]models.OrderItem, 0, len(input.Items))
	maxPrep := 0
	for _, line := range input.Items {
		menuItem, err := s.menuService.CheckAvailability(line.MenuItemID, line.Quantity)
		if err != nil {
			return nil, err
		}
		for _, c := range line.Customizations {
			if c.ExtraCost < 0 {
				return nil, apperr.New(apperr.ValidationFailed, "Customization extra cost cannot be negative")
			}
		}
		if menuItem.PreparationTime > maxPrep {
			maxPrep = menuItem.PreparationTime
		}

		items = append(items, models.OrderItem{
			MenuItemID:          menuItem.ID,
			Name:                menuItem.Name,
			UnitPrice:           menuItem.Price,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
			Customizations:      line.Customizations,
		})
	}

	breakdown := s.engine.PriceOrder(items, input.OrderType)

	if maxPrep < prepTimeFloor {
		maxPrep = prepTimeFloor
	}
	estimatedMinutes := maxPrep
	if input.OrderType == models.OrderTypeDelivery {
		estimatedMinutes += deliveryAllowance
	}
	estimated := now.Add(time.Duration(estimatedMinutes) * time.Minute)

	order := &models.Order{
		CustomerID:            actor.ID,
		Items:                 items,
		Pricing:               breakdown,
		DeliveryAddress:       input.DeliveryAddress,
		ContactInfo:           input.ContactInfo,
		OrderType:             input.OrderType,
		PaymentInfo:           models.PaymentInfo{Method: input.PaymentMethod, Status: models.PaymentPending},
		Status:                models.StatusPlaced,
		SpecialInstructions:   input.SpecialInstructions,
		IsScheduled:           input.IsScheduled,
		ScheduledDate:         input.ScheduledDate,
		ScheduledTime:         input.ScheduledTime,
		EstimatedDeliveryTime: &estimated,
		IsActive:              true,
		StatusHistory: []models.OrderStatusChange{
			{Status: models.StatusPlaced, Timestamp: now},
		},
	}

	// The sequence counter is atomic, so collisions only happen if the
	// counter is lost (e.g. Redis flush). The unique constraint on the
	// order number catches that; retry with a fresh sequence.
	var createErr error
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		seq, err := s.sequencer.NextOrderSequence(now)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Failed to allocate order number", err)
		}
		order.OrderNumber = fmt.Sprintf("%s%s%03d", s.numberPrefix, now.Format("060102"), seq)

		createErr = s.orderRepo.Create(order)
		if createErr == nil {
			break
		}
		if !isUniqueViolation(createErr) {
			return nil, apperr.Wrap(apperr.Internal, "Failed to create order", createErr)
		}
	}
	if createErr != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to allocate a unique order number", createErr)
	}

	for _, line := range input.Items {
		if err := s.menuService.IncrementDailyOrders(line.MenuItemID, line.Quantity); err != nil {
			// Counter drift is tolerable; the order itself is committed.
			continue
		}
	}

	return order, nil
}

func (s *orderService) GetByID(actor Actor, id uint) (*models.Order, error) {
	order, err := s.loadOrder(id)
	if err != nil {
		return nil, err
	}
	if !CanViewOrder(actor, order) {
		return nil, apperr.New(apperr.Forbidden, "Not authorized to access this order")
	}
	return order, nil
}

func (s *orderService) ListMine(actor Actor, status models.OrderStatus, page, limit int) ([]models.Order, int64, error) {
	if status != "" && !models.OrderStatuses[status] {
		return nil, 0, apperr.New(apperr.ValidationFailed, "Invalid status filter")
	}
	page, limit = boundPage(page, limit, 10)

	orders, total, err := s.orderRepo.List(repository.OrderListFilter{
		CustomerID: actor.ID,
		Status:     status,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Failed to load orders", err)
	}
	return orders, total, nil
}

func (s *orderService) ListAll(actor Actor, filter repository.OrderListFilter) ([]models.Order, int64, *repository.OrderSummary, error) {
	if !actor.IsAdmin() {
		return nil, 0, nil, apperr.New(apperr.Forbidden, "Admin privileges required")
	}
	if filter.Status != "" && !models.OrderStatuses[filter.Status] {
		return nil, 0, nil, apperr.New(apperr.ValidationFailed, "Invalid status filter")
	}
	filter.CustomerID = 0
	filter.Page, filter.Limit = boundPage(filter.Page, filter.Limit, 20)

	orders, total, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, 0, nil, apperr.Wrap(apperr.Internal, "Failed to load orders", err)
	}
	summary, err := s.orderRepo.Summary(filter)
	if err != nil {
		return nil, 0, nil, apperr.Wrap(apperr.Internal, "Failed to load order summary", err)
	}
	return orders, total, summary, nil
}

// UpdateStatus is the admin transition operation. Jumps outside the
// adjacency graph are rejected rather than silently applied.
func (s *orderService) UpdateStatus(actor Actor, id uint, newStatus models.OrderStatus, notes string) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.Forbidden, "Admin privileges required")
	}
	if !models.OrderStatuses[newStatus] {
		return nil, apperr.New(apperr.ValidationFailed, "Invalid status")
	}

	order, err := s.loadOrder(id)
	if err != nil {
		return nil, err
	}

	if !canTransition(order, newStatus) {
		return nil, apperr.Newf(apperr.Conflict, "Cannot transition order from %s to %s", order.Status, newStatus)
	}

	now := time.Now()
	order.Status = newStatus
	if newStatus == models.StatusDelivered || newStatus == models.StatusPickedUp {
		order.ActualDeliveryTime = &now
	}
	if newStatus == models.StatusCancelled {
		order.Cancellation = models.Cancellation{
			Reason:      "other",
			CancelledBy: actor.ID,
			CancelledAt: &now,
		}
	}

	history := &models.OrderStatusChange{
		Status:    newStatus,
		Timestamp: now,
		UpdatedBy: actor.ID,
		Notes:     notes,
	}
	if err := s.applyTransition(order, history); err != nil {
		return nil, err
	}
	return s.loadOrder(id)
}

func (s *orderService) Cancel(actor Actor, id uint, reason string) (*models.Order, error) {
	if !models.CancellationReasons[reason] {
		return nil, apperr.New(apperr.ValidationFailed, "Invalid cancellation reason")
	}

	order, err := s.loadOrder(id)
	if err != nil {
		return nil, err
	}
	if !CanMutateOrder(actor, order) {
		return nil, apperr.New(apperr.Forbidden, "Not authorized to cancel this order")
	}
	if !order.CanCancel() {
		return nil, apperr.New(apperr.Conflict, "Order cannot be cancelled at this stage")
	}

	now := time.Now()
	order.Status = models.StatusCancelled
	order.Cancellation = models.Cancellation{
		Reason:          reason,
		CancelledBy:     actor.ID,
		CancelledAt:     &now,
		RefundProcessed: false,
	}

	history := &models.OrderStatusChange{
		Status:    models.StatusCancelled,
		Timestamp: now,
		UpdatedBy: actor.ID,
	}
	if err := s.applyTransition(order, history); err != nil {
		return nil, err
	}
	return s.loadOrder(id)
}

// Review is write-once, owner-only, post-delivery. The food rating feeds
// back into each distinct item's running average.
func (s *orderService) Review(actor Actor, id uint, ratingFood, ratingDelivery, ratingOverall int, review string) (*models.Order, error) {
	if ratingFood < 1 || ratingFood > 5 || ratingOverall < 1 || ratingOverall > 5 {
		return nil, apperr.New(apperr.ValidationFailed, "Ratings must be between 1 and 5")
	}
	if ratingDelivery != 0 && (ratingDelivery < 1 || ratingDelivery > 5) {
		return nil, apperr.New(apperr.ValidationFailed, "Ratings must be between 1 and 5")
	}
	if len(review) > 500 {
		return nil, apperr.New(apperr.ValidationFailed, "Review cannot exceed 500 characters")
	}

	order, err := s.loadOrder(id)
	if err != nil {
		return nil, err
	}
	if actor.ID != order.CustomerID {
		return nil, apperr.New(apperr.Forbidden, "Not authorized to review this order")
	}
	if !order.IsDelivered() {
		return nil, apperr.New(apperr.Conflict, "Can only review completed orders")
	}
	if order.RatingOverall != 0 {
		return nil, apperr.New(apperr.Conflict, "Order has already been reviewed")
	}

	order.RatingFood = ratingFood
	order.RatingDelivery = ratingDelivery
	order.RatingOverall = ratingOverall
	order.Review = review

	if err := s.applyTransition(order, nil); err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	for _, item := range order.Items {
		if seen[item.MenuItemID] {
			continue
		}
		seen[item.MenuItemID] = true
		if err := s.menuService.RecordRating(item.MenuItemID, ratingFood); err != nil {
			continue
		}
	}

	return order, nil
}

func (s *orderService) loadOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load order", err)
	}
	if order == nil || !order.IsActive {
		return nil, apperr.New(apperr.NotFound, "Order not found")
	}
	return order, nil
}

func (s *orderService) applyTransition(order *models.Order, history *models.OrderStatusChange) error {
	err := s.orderRepo.UpdateWithVersion(order, history)
	if errors.Is(err, repository.ErrVersionConflict) {
		return apperr.New(apperr.Conflict, "Order was updated concurrently, please retry")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to update order", err)
	}
	return nil
}

func canTransition(order *models.Order, newStatus models.OrderStatus) bool {
	if order.Status.IsTerminal() {
		return false
	}
	// Fulfillment step must match the order type.
	if newStatus == models.StatusOutForDelivery && order.OrderType != models.OrderTypeDelivery {
		return false
	}
	if newStatus == models.StatusPickedUp && order.OrderType != models.OrderTypePickup {
		return false
	}
	for _, next := range allowedTransitions[order.Status] {
		if next == newStatus {
			return true
		}
	}
	return false
}

func validateCreateInput(input CreateOrderInput) error {
	if len(input.Items) == 0 {
		return apperr.New(apperr.ValidationFailed, "Order must contain at least one item")
	}
	if input.OrderType != models.OrderTypeDelivery && input.OrderType != models.OrderTypePickup {
		return apperr.New(apperr.ValidationFailed, "Order type must be delivery or pickup")
	}
	if !models.PaymentMethods[input.PaymentMethod] {
		return apperr.New(apperr.ValidationFailed, "Invalid payment method")
	}

	if input.OrderType == models.OrderTypeDelivery {
		addr := input.DeliveryAddress
		if addr.Street == "" || addr.City == "" || addr.State == "" {
			return apperr.New(apperr.ValidationFailed, "Delivery address is incomplete")
		}
		if !pincodeRe.MatchString(addr.Pincode) {
			return apperr.New(apperr.ValidationFailed, "Please provide a valid pincode")
		}
	}

	if !phoneRe.MatchString(strings.TrimSpace(input.ContactInfo.Phone)) {
		return apperr.New(apperr.ValidationFailed, "Please provide a valid phone number")
	}
	if !emailRe.MatchString(input.ContactInfo.Email) {
		return apperr.New(apperr.ValidationFailed, "Please provide a valid email")
	}
	if len(input.SpecialInstructions) > 500 {
		return apperr.New(apperr.ValidationFailed, "Special instructions cannot exceed 500 characters")
	}
	return nil
}

func boundPage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return page, limit
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "SQLSTATE 23505")
}
