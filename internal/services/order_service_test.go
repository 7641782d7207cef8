package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/soumya813/SwaadGharKa/internal/apperr"
	"github.com/soumya813/SwaadGharKa/internal/models"
	"github.com/soumya813/SwaadGharKa/internal/pricing"
	"github.com/soumya813/SwaadGharKa/internal/repository"
)

// fakeOrderRepo is an in-memory OrderRepository with the same version
// compare-and-set behavior as the real one.
type fakeOrderRepo struct {
	mu         sync.Mutex
	nextID     uint
	orders     map[uint]*models.Order
	createErrs []error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*models.Order)}
}

func (r *fakeOrderRepo) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	r.nextID++
	order.ID = r.nextID
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *stored
	cp.StatusHistory = append([]models.OrderStatusChange(nil), stored.StatusHistory...)
	cp.Items = append([]models.OrderItem(nil), stored.Items...)
	return &cp, nil
}

func (r *fakeOrderRepo) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if filter.CustomerID != 0 && o.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) Summary(filter repository.OrderListFilter) (*repository.OrderSummary, error) {
	return &repository.OrderSummary{}, nil
}

func (r *fakeOrderRepo) UpdateWithVersion(order *models.Order, history *models.OrderStatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[order.ID]
	if !ok || stored.Version != order.Version {
		return repository.ErrVersionConflict
	}
	order.Version++
	cp := *order
	cp.StatusHistory = append([]models.OrderStatusChange(nil), stored.StatusHistory...)
	if history != nil {
		history.OrderID = order.ID
		cp.StatusHistory = append(cp.StatusHistory, *history)
	}
	r.orders[order.ID] = &cp
	return nil
}

// seed stores an order directly, bypassing Create.
func (r *fakeOrderRepo) seed(order *models.Order) *models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = r.nextID
	order.IsActive = true
	cp := *order
	r.orders[order.ID] = &cp
	return order
}

// fakeMenuService serves a fixed item set and records counter calls.
type fakeMenuService struct {
	items      map[uint]*models.MenuItem
	increments map[uint]int
	ratings    map[uint][]int
}

func newFakeMenuService() *fakeMenuService {
	return &fakeMenuService{
		items:      make(map[uint]*models.MenuItem),
		increments: make(map[uint]int),
		ratings:    make(map[uint][]int),
	}
}

func (f *fakeMenuService) List(filter repository.MenuListFilter) ([]models.MenuItem, int64, *repository.MenuFilterMeta, error) {
	return nil, 0, nil, nil
}

func (f *fakeMenuService) Get(id uint) (*models.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Menu item not found")
	}
	return item, nil
}

func (f *fakeMenuService) GetFeatured(limit int) ([]models.MenuItem, error) { return nil, nil }

func (f *fakeMenuService) GetSpecial(limit int) ([]models.MenuItem, error) { return nil, nil }

func (f *fakeMenuService) CheckAvailability(id uint, requestedQty int) (*models.MenuItem, error) {
	if requestedQty < MinLineQuantity || requestedQty > MaxLineQuantity {
		return nil, apperr.Newf(apperr.ValidationFailed, "Quantity must be between %d and %d", MinLineQuantity, MaxLineQuantity)
	}
	item, ok := f.items[id]
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "Menu item not found or unavailable: %d", id)
	}
	if !item.IsAvailable {
		return nil, apperr.Newf(apperr.Conflict, "Item %q is currently unavailable", item.Name)
	}
	return item, nil
}

func (f *fakeMenuService) IncrementDailyOrders(id uint, qty int) error {
	f.increments[id] += qty
	return nil
}

func (f *fakeMenuService) RecordRating(itemID uint, rating int) error {
	f.ratings[itemID] = append(f.ratings[itemID], rating)
	return nil
}

func (f *fakeMenuService) Create(actor Actor, item *models.MenuItem) error { return nil }

func (f *fakeMenuService) Update(actor Actor, item *models.MenuItem) error { return nil }

func (f *fakeMenuService) SoftDelete(actor Actor, id uint) error { return nil }

type fakeSequencer struct {
	mu  sync.Mutex
	seq int64
	err error
}

func (s *fakeSequencer) NextOrderSequence(date time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.seq++
	return s.seq, nil
}

func newTestOrderService() (OrderService, *fakeOrderRepo, *fakeMenuService, *fakeSequencer) {
	repo := newFakeOrderRepo()
	menu := newFakeMenuService()
	menu.items[1] = &models.MenuItem{ID: 1, Name: "Paneer Butter Masala", Price: 100, PreparationTime: 25, IsAvailable: true, IsActive: true}
	menu.items[2] = &models.MenuItem{ID: 2, Name: "Masala Dosa", Price: 50, PreparationTime: 15, IsAvailable: true, IsActive: true}
	seq := &fakeSequencer{}
	svc := NewOrderService(repo, menu, pricing.NewEngine(pricing.DefaultConfig()), seq, "SGK")
	return svc, repo, menu, seq
}

func validCreateInput() CreateOrderInput {
	return CreateOrderInput{
		Items: []CreateOrderItemInput{
			{MenuItemID: 1, Quantity: 1},
			{MenuItemID: 2, Quantity: 1},
		},
		DeliveryAddress: models.DeliveryAddress{
			Street:  "12 MG Road",
			City:    "Bengaluru",
			State:   "Karnataka",
			Pincode: "560001",
		},
		ContactInfo: models.ContactInfo{
			Phone: "9876543210",
			Email: "customer@example.com",
		},
		OrderType:     models.OrderTypeDelivery,
		PaymentMethod: models.PaymentUPI,
	}
}

var customer = Actor{ID: 7, Role: string(models.RoleUser)}
var admin = Actor{ID: 1, Role: string(models.RoleAdmin)}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("error kind = %s, want %s (err: %v)", got, kind, err)
	}
}

func TestCreateOrder(t *testing.T) {
	svc, _, menu, _ := newTestOrderService()

	order, err := svc.Create(customer, validCreateInput())
	if err != nil {
		t.Fatal(err)
	}

	wantNumber := fmt.Sprintf("SGK%s001", time.Now().Format("060102"))
	if order.OrderNumber != wantNumber {
		t.Errorf("order number = %s, want %s", order.OrderNumber, wantNumber)
	}
	if order.Status != models.StatusPlaced {
		t.Errorf("status = %s, want placed", order.Status)
	}
	if order.CustomerID != customer.ID {
		t.Errorf("customer id = %d, want %d", order.CustomerID, customer.ID)
	}
	// subtotal 150 is under the free delivery threshold
	if order.Pricing.Total != 217 {
		t.Errorf("total = %d, want 217", order.Pricing.Total)
	}
	if len(order.StatusHistory) != 1 || order.StatusHistory[0].Status != models.StatusPlaced {
		t.Errorf("initial history = %+v, want single placed entry", order.StatusHistory)
	}
	if order.PaymentInfo.Status != models.PaymentPending {
		t.Errorf("payment status = %s, want pending", order.PaymentInfo.Status)
	}
	if order.EstimatedDeliveryTime == nil {
		t.Fatal("estimated delivery time not set")
	}
	// max prep 25 + 30 delivery allowance
	eta := time.Until(*order.EstimatedDeliveryTime)
	if eta < 54*time.Minute || eta > 56*time.Minute {
		t.Errorf("eta = %v from now, want ~55 minutes", eta)
	}
	if menu.increments[1] != 1 || menu.increments[2] != 1 {
		t.Errorf("daily counters = %v, want both incremented", menu.increments)
	}
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	svc, repo, menu, _ := newTestOrderService()

	order, err := svc.Create(customer, validCreateInput())
	if err != nil {
		t.Fatal(err)
	}

	// A later menu edit must not change the agreed price.
	menu.items[1].Price = 999

	reloaded, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range reloaded.Items {
		if item.MenuItemID == 1 && item.UnitPrice != 100 {
			t.Errorf("snapshot unit price = %d, want 100", item.UnitPrice)
		}
	}
	if reloaded.Pricing.Total != 217 {
		t.Errorf("total = %d, want 217", reloaded.Pricing.Total)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _, _, _ := newTestOrderService()

	cases := []struct {
		name   string
		mutate func(*CreateOrderInput)
		kind   apperr.Kind
	}{
		{"no items", func(in *CreateOrderInput) { in.Items = nil }, apperr.ValidationFailed},
		{"bad order type", func(in *CreateOrderInput) { in.OrderType = "drone" }, apperr.ValidationFailed},
		{"bad payment method", func(in *CreateOrderInput) { in.PaymentMethod = "cheque" }, apperr.ValidationFailed},
		{"bad pincode", func(in *CreateOrderInput) { in.DeliveryAddress.Pincode = "0123" }, apperr.ValidationFailed},
		{"missing street", func(in *CreateOrderInput) { in.DeliveryAddress.Street = "" }, apperr.ValidationFailed},
		{"bad phone", func(in *CreateOrderInput) { in.ContactInfo.Phone = "12345" }, apperr.ValidationFailed},
		{"bad email", func(in *CreateOrderInput) { in.ContactInfo.Email = "not-an-email" }, apperr.ValidationFailed},
		{"zero quantity", func(in *CreateOrderInput) { in.Items[0].Quantity = 0 }, apperr.ValidationFailed},
		{"excess quantity", func(in *CreateOrderInput) { in.Items[0].Quantity = 11 }, apperr.ValidationFailed},
		{"unknown item", func(in *CreateOrderInput) { in.Items[0].MenuItemID = 99 }, apperr.NotFound},
		{"negative extra", func(in *CreateOrderInput) {
			in.Items[0].Customizations = []models.Customization{{Name: "x", ExtraCost: -5}}
		}, apperr.ValidationFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput()
			tc.mutate(&input)
			_, err := svc.Create(customer, input)
			wantKind(t, err, tc.kind)
		})
	}
}

func TestCreateOrderPickupSkipsAddressCheck(t *testing.T) {
	svc, _, _, _ := newTestOrderService()

	input := validCreateInput()
	input.OrderType = models.OrderTypePickup
	input.DeliveryAddress = models.DeliveryAddress{}

	order, err := svc.Create(customer, input)
	if err != nil {
		t.Fatal(err)
	}
	if order.Pricing.DeliveryFee != 0 {
		t.Errorf("delivery fee = %d, want 0 for pickup", order.Pricing.DeliveryFee)
	}
}

func TestCreateOrderRetriesOnDuplicateNumber(t *testing.T) {
	svc, repo, _, seq := newTestOrderService()
	repo.createErrs = []error{errors.New(`duplicate key value violates unique constraint "orders_order_number_key" (SQLSTATE 23505)`)}

	order, err := svc.Create(customer, validCreateInput())
	if err != nil {
		t.Fatal(err)
	}
	if seq.seq != 2 {
		t.Errorf("sequencer called %d times, want 2", seq.seq)
	}
	wantNumber := fmt.Sprintf("SGK%s002", time.Now().Format("060102"))
	if order.OrderNumber != wantNumber {
		t.Errorf("order number = %s, want %s", order.OrderNumber, wantNumber)
	}
}

func TestCreateOrderGivesUpAfterRepeatedDuplicates(t *testing.T) {
	svc, repo, _, _ := newTestOrderService()
	dup := errors.New("duplicate key value (SQLSTATE 23505)")
	repo.createErrs = []error{dup, dup, dup}

	_, err := svc.Create(customer, validCreateInput())
	wantKind(t, err, apperr.Internal)
}

func TestGetByIDAccess(t *testing.T) {
	svc, _, _, _ := newTestOrderService()

	order, err := svc.Create(customer, validCreateInput())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetByID(customer, order.ID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := svc.GetByID(admin, order.ID); err != nil {
		t.Errorf("admin read failed: %v", err)
	}
	_, err = svc.GetByID(Actor{ID: 42, Role: string(models.RoleUser)}, order.ID)
	wantKind(t, err, apperr.Forbidden)

	_, err = svc.GetByID(customer, 999)
	wantKind(t, err, apperr.NotFound)
}

func TestUpdateStatusFollowsAdjacency(t *testing.T) {
	svc, _, _, _ := newTestOrderService()

	order, err := svc.Create(customer, validCreateInput())
	if err != nil {
		t.Fatal(err)
	}

	steps := []models.OrderStatus{
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	}
	for _, next := range steps {
		updated, err := svc.UpdateStatus(admin, order.ID, next, "")
		if err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
		if updated.Status != next {
			t.Fatalf("status = %s, want %s", updated.Status, next)
		}
		last := updated.StatusHistory[len(updated.StatusHistory)-1]
		if last.Status != next {
			t.Fatalf("last history entry = %s, want %s", last.Status, next)
		}
	}
}

func TestUpdateStatusRejectsJumps(t *testing.T) {
	svc, repo, _, _ := newTestOrderService()

	cases := []struct {
		name      string
		from      models.OrderStatus
		orderType models.OrderType
		to        models.OrderStatus
	}{
		{"placed to ready", models.StatusPlaced, models.OrderTypeDelivery, models.StatusReady},
		{"placed to delivered", models.StatusPlaced, models.OrderTypeDelivery, models.StatusDelivered},
		{"preparing to cancelled", models.StatusPreparing, models.OrderTypeDelivery, models.StatusCancelled},
		{"ready backwards", models.StatusReady, models.OrderTypeDelivery, models.StatusPreparing},
		{"delivered is terminal", models.StatusDelivered, models.OrderTypeDelivery, models.StatusConfirmed},
		{"cancelled is terminal", models.StatusCancelled, models.OrderTypeDelivery, models.StatusConfirmed},
		{"pickup order out for delivery", models.StatusReady, models.OrderTypePickup, models.StatusOutForDelivery},
		{"delivery order picked up", models.StatusReady, models.OrderTypeDelivery, models.StatusPickedUp},
		{"refunded directly", models.StatusConfirmed, models.OrderTypeDelivery, models.StatusRefunded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := repo.seed(&models.Order{
				OrderNumber: "SGK000000" + string(tc.from),
				CustomerID:  customer.ID,
				Status:      tc.from,
				OrderType:   tc.orderType,
			})
			_, err := svc.UpdateStatus(admin, order.ID, tc.to, "")
			wantKind(t, err, apperr.Conflict)
		})
	}
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	svc, _, _, _ := newTestOrderService()

	order, err := svc.Create(customer, validCreateInput())
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.UpdateStatus(customer, order.ID, models.StatusConfirmed, "")
	wantKind(t, err, apperr.Forbidden)
}

func TestUpdateStatusSetsActualDeliveryTime(t *testing.T) {
	svc, repo, _, _ := newTestOrderService()

	order := repo.seed(&models.Order{
		OrderNumber: "SGK000001",
		CustomerID:  customer.ID,
		Status:      models.StatusOutForDelivery,
		OrderType:   models.OrderTypeDelivery,
	})

	updated, err := svc.UpdateStatus(admin, order.ID, models.StatusDelivered, "")
	if err != nil {
		t.Fatal(err)
	}
	if updated.ActualDeliveryTime == nil {
		t.Error("actual delivery time not set on delivered")
	}
}

func TestUpdateStatusVersionConflict(t *testing.T) {
	svc, repo, _, _ := newTestOrderService()

	order, err := svc.Create(customer, validCreateInput())
	if err != nil {
		t.Fatal(err)
	}

	// Read a copy, let another transition commit first, then replay the
	// stale copy: the conditional write must refuse it.
	stale, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(admin, order.ID, models.StatusConfirmed, ""); err != nil {
		t.Fatal(err)
	}
	err = repo.UpdateWithVersion(stale, nil)
	if !errors.Is(err, repository.ErrVersionConflict) {
		t.Fatalf("err = %v, want ErrVersionConflict", err)
	}
}

func TestCancelWindow(t *testing.T) {
	svc, repo, _, _ := newTestOrderService()

	cases := []struct {
		name          string
		status        models.OrderStatus
		paymentStatus models.PaymentStatus
		wantErr       bool
	}{
		{"placed unpaid", models.StatusPlaced, models.PaymentPending, false},
		{"confirmed unpaid", models.StatusConfirmed, models.PaymentPending, false},
		{"preparing", models.StatusPreparing, models.PaymentPending, true},
		{"ready", models.StatusReady, models.PaymentPending, true},
		{"delivered", models.StatusDelivered, models.PaymentPending, true},
		{"placed but paid", models.StatusPlaced, models.PaymentCompleted, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := repo.seed(&models.Order{
				OrderNumber: "SGK00000" + string(tc.status),
				CustomerID:  customer.ID,
				Status:      tc.status,
				OrderType:   models.OrderTypeDelivery,
				PaymentInfo: models.PaymentInfo{Method: models.PaymentUPI, Status: tc.paymentStatus},
			})

			cancelled, err := svc.Cancel(customer, order.ID, "customer-request")
			if tc.wantErr {
				wantKind(t, err, apperr.Conflict)
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cancelled.Status != models.StatusCancelled {
				t.Errorf("status = %s, want cancelled", cancelled.Status)
			}
			if cancelled.Cancellation.Reason != "customer-request" {
				t.Errorf("reason = %s, want customer-request", cancelled.Cancellation.Reason)
			}
			last := cancelled.StatusHistory[len(cancelled.StatusHistory)-1]
			if last.Status != models.StatusCancelled {
				t.Errorf("last history = %s, want cancelled", last.Status)
			}
		})
	}
}

func TestCancelValidation(t *testing.T) {
	svc, repo, _, _ := newTestOrderService()

	order := repo.seed(&models.Order{
		OrderNumber: "SGK100001",
		CustomerID:  customer.ID,
		Status:      models.StatusPlaced,
		PaymentInfo: models.PaymentInfo{Method: models.PaymentUPI, Status: models.PaymentPending},
	})

	_, err := svc.Cancel(customer, order.ID, "changed-my-mind")
	wantKind(t, err, apperr.ValidationFailed)

	_, err = svc.Cancel(Actor{ID: 42, Role: string(models.RoleUser)}, order.ID, "customer-request")
	wantKind(t, err, apperr.Forbidden)
}

func TestReview(t *testing.T) {
	svc, repo, menu, _ := newTestOrderService()

	order := repo.seed(&models.Order{
		OrderNumber: "SGK200001",
		CustomerID:  customer.ID,
		Status:      models.StatusDelivered,
		OrderType:   models.OrderTypeDelivery,
		Items: []models.OrderItem{
			{MenuItemID: 1, Name: "Paneer Butter Masala", UnitPrice: 100, Quantity: 1},
			{MenuItemID: 1, Name: "Paneer Butter Masala", UnitPrice: 100, Quantity: 2},
			{MenuItemID: 2, Name: "Masala Dosa", UnitPrice: 50, Quantity: 1},
		},
	})

	reviewed, err := svc.Review(customer, order.ID, 5, 4, 5, "Excellent food")
	if err != nil {
		t.Fatal(err)
	}
	if reviewed.RatingFood != 5 || reviewed.RatingDelivery != 4 || reviewed.RatingOverall != 5 {
		t.Errorf("ratings = %d/%d/%d, want 5/4/5", reviewed.RatingFood, reviewed.RatingDelivery, reviewed.RatingOverall)
	}

	// Food rating recorded once per distinct item despite the duplicate line.
	if got := menu.ratings[1]; len(got) != 1 || got[0] != 5 {
		t.Errorf("item 1 ratings = %v, want [5]", got)
	}
	if got := menu.ratings[2]; len(got) != 1 || got[0] != 5 {
		t.Errorf("item 2 ratings = %v, want [5]", got)
	}

	// write-once
	_, err = svc.Review(customer, order.ID, 4, 4, 4, "")
	wantKind(t, err, apperr.Conflict)
}

func TestReviewGuards(t *testing.T) {
	svc, repo, _, _ := newTestOrderService()

	pending := repo.seed(&models.Order{
		OrderNumber: "SGK300001",
		CustomerID:  customer.ID,
		Status:      models.StatusPreparing,
	})
	_, err := svc.Review(customer, pending.ID, 5, 5, 5, "")
	wantKind(t, err, apperr.Conflict)

	delivered := repo.seed(&models.Order{
		OrderNumber: "SGK300002",
		CustomerID:  customer.ID,
		Status:      models.StatusDelivered,
	})
	_, err = svc.Review(Actor{ID: 42, Role: string(models.RoleUser)}, delivered.ID, 5, 5, 5, "")
	wantKind(t, err, apperr.Forbidden)

	_, err = svc.Review(admin, delivered.ID, 5, 5, 5, "")
	wantKind(t, err, apperr.Forbidden)

	_, err = svc.Review(customer, delivered.ID, 0, 5, 5, "")
	wantKind(t, err, apperr.ValidationFailed)
	_, err = svc.Review(customer, delivered.ID, 6, 5, 5, "")
	wantKind(t, err, apperr.ValidationFailed)
}

func TestListMine(t *testing.T) {
	svc, _, _, _ := newTestOrderService()

	if _, err := svc.Create(customer, validCreateInput()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(Actor{ID: 8, Role: string(models.RoleUser)}, validCreateInput()); err != nil {
		t.Fatal(err)
	}

	orders, total, err := svc.ListMine(customer, "", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("total = %d, len = %d, want 1 each", total, len(orders))
	}
	if orders[0].CustomerID != customer.ID {
		t.Errorf("returned order belongs to %d, want %d", orders[0].CustomerID, customer.ID)
	}

	_, _, err = svc.ListMine(customer, "teleported", 1, 10)
	wantKind(t, err, apperr.ValidationFailed)
}

func TestListAllRequiresAdmin(t *testing.T) {
	svc, _, _, _ := newTestOrderService()

	_, _, _, err := svc.ListAll(customer, repository.OrderListFilter{})
	wantKind(t, err, apperr.Forbidden)

	if _, err := svc.Create(customer, validCreateInput()); err != nil {
		t.Fatal(err)
	}
	orders, total, summary, err := svc.ListAll(admin, repository.OrderListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(orders) != 1 {
		t.Errorf("total = %d, len = %d, want 1 each", total, len(orders))
	}
	if summary == nil {
		t.Error("summary missing")
	}
}
