package repository

import (
	"errors"
	"time"

	"github.com/soumya813/SwaadGharKa/internal/models"

	"gorm.io/gorm"
)

// ErrVersionConflict means another request transitioned the order between
// this request's read and write.
var ErrVersionConflict = errors.New("order was modified concurrently")

// OrderListFilter carries listing inputs shared by the customer and admin
// order views.
type OrderListFilter struct {
	CustomerID uint // 0 = all customers (admin)
	Status     models.OrderStatus
	Date       *time.Time // admin: restrict to one calendar day
	Page       int
	Limit      int
}

// OrderSummary is the admin dashboard's revenue aggregate.
type OrderSummary struct {
	TotalOrders   int64   `json:"total_orders"`
	TotalRevenue  int64   `json:"total_revenue"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	Summary(filter OrderListFilter) (*OrderSummary, error)
	// UpdateWithVersion applies a transition under compare-and-set on the
	// version column; the history entry is appended in the same transaction.
	UpdateWithVersion(order *models.Order, history *models.OrderStatusChange) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC, id ASC")
		}).
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.buildListQuery(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit

	var orders []models.Order
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) Summary(filter OrderListFilter) (*OrderSummary, error) {
	var summary OrderSummary
	err := r.buildListQuery(filter).
		Select("COUNT(*) AS total_orders, COALESCE(SUM(pricing_total), 0) AS total_revenue, COALESCE(AVG(pricing_total), 0) AS avg_order_value").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *orderRepository) buildListQuery(filter OrderListFilter) *gorm.DB {
	query := r.db.Model(&models.Order{}).Where("is_active = ?", true)
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != nil {
		start := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, filter.Date.Location())
		query = query.Where("created_at >= ? AND created_at < ?", start, start.AddDate(0, 0, 1))
	}
	return query
}

func (r *orderRepository) UpdateWithVersion(order *models.Order, history *models.OrderStatusChange) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		expected := order.Version
		order.Version = expected + 1

		res := tx.Model(&models.Order{}).
			Where("id = ? AND version = ?", order.ID, expected).
			Select("*").
			Omit("id", "created_at", "Items", "StatusHistory", "Customer").
			Updates(order)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			order.Version = expected
			return ErrVersionConflict
		}

		if history != nil {
			history.OrderID = order.ID
			if err := tx.Create(history).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
