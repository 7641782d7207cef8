package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soumya813/SwaadGharKa/internal/middleware"
	"github.com/soumya813/SwaadGharKa/internal/models"
	"github.com/soumya813/SwaadGharKa/internal/repository"
	"github.com/soumya813/SwaadGharKa/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type createOrderItemRequest struct {
	MenuItemID          uint                   `json:"menu_item_id" binding:"required"`
	Quantity            int                    `json:"quantity" binding:"required"`
	SpecialInstructions string                 `json:"special_instructions"`
	Customizations      []models.Customization `json:"customizations"`
}

type createOrderRequest struct {
	Items               []createOrderItemRequest `json:"items" binding:"required"`
	DeliveryAddress     models.DeliveryAddress   `json:"delivery_address"`
	ContactInfo         models.ContactInfo       `json:"contact_info" binding:"required"`
	OrderType           string                   `json:"order_type"`
	PaymentMethod       string                   `json:"payment_method" binding:"required"`
	SpecialInstructions string                   `json:"special_instructions"`
	IsScheduled         bool                     `json:"is_scheduled"`
	ScheduledDate       *time.Time               `json:"scheduled_date"`
	ScheduledTime       string                   `json:"scheduled_time"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	if req.OrderType == "" {
		req.OrderType = string(models.OrderTypeDelivery)
	}

	input := services.CreateOrderInput{
		DeliveryAddress:     req.DeliveryAddress,
		ContactInfo:         req.ContactInfo,
		OrderType:           models.OrderType(req.OrderType),
		PaymentMethod:       models.PaymentMethod(req.PaymentMethod),
		SpecialInstructions: req.SpecialInstructions,
		IsScheduled:         req.IsScheduled,
		ScheduledDate:       req.ScheduledDate,
		ScheduledTime:       req.ScheduledTime,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, services.CreateOrderItemInput{
			MenuItemID:          item.MenuItemID,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
			Customizations:      item.Customizations,
		})
	}

	order, err := h.orderService.Create(actor, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed successfully",
		"order":   order,
	})
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	status := models.OrderStatus(c.Query("status"))
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	orders, total, err := h.orderService.ListMine(actor, status, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(orders),
		"total":   total,
		"page":    page,
		"orders":  orders,
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

type cancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	order, err := h.orderService.Cancel(actor, id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

type reviewRequest struct {
	Rating struct {
		Food     int `json:"food" binding:"required"`
		Delivery int `json:"delivery"`
		Overall  int `json:"overall" binding:"required"`
	} `json:"rating" binding:"required"`
	Review string `json:"review"`
}

func (h *OrderHandler) Review(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	order, err := h.orderService.Review(actor, id, req.Rating.Food, req.Rating.Delivery, req.Rating.Overall, req.Review)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review submitted successfully",
		"order":   order,
	})
}

// Admin endpoints

func (h *OrderHandler) ListAll(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	filter := repository.OrderListFilter{
		Status: models.OrderStatus(c.Query("status")),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
			return
		}
		filter.Date = &date
	}

	orders, total, summary, err := h.orderService.ListAll(actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(orders),
		"total":   total,
		"page":    filter.Page,
		"summary": summary,
		"orders":  orders,
	})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}
	if len(req.Notes) > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Notes cannot exceed 200 characters"})
		return
	}

	order, err := h.orderService.UpdateStatus(actor, id, models.OrderStatus(req.Status), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated successfully",
		"order":   order,
	})
}
