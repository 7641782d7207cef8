package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soumya813/SwaadGharKa/internal/middleware"
	"github.com/soumya813/SwaadGharKa/internal/services"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type createIntentRequest struct {
	OrderID uint  `json:"order_id" binding:"required"`
	Amount  int64 `json:"amount" binding:"required"`
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	gatewayName := c.Param("gateway")

	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	result, err := h.paymentService.Initiate(actor, req.OrderID, gatewayName, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"gateway":        result.Gateway,
		"transaction_id": result.TransactionID,
		"client_token":   result.ClientToken,
		"amount":         result.Amount,
	})
}

type confirmRequest struct {
	OrderID   uint   `json:"order_id" binding:"required"`
	Reference string `json:"reference"`
}

func (h *PaymentHandler) Confirm(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	order, err := h.paymentService.Confirm(actor, req.OrderID, req.Reference)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment confirmed successfully",
		"order":   order,
	})
}

// verifyRequest carries a webhook-style signed confirmation: the signature
// is checked against the shared secret before anything is trusted.
type verifyRequest struct {
	OrderID   uint   `json:"order_id" binding:"required"`
	Payload   string `json:"payload" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	Reference string `json:"reference" binding:"required"`
}

func (h *PaymentHandler) VerifyAndConfirm(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	if !h.paymentService.VerifySignature(req.Payload, req.Signature) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment signature"})
		return
	}

	order, err := h.paymentService.Confirm(actor, req.OrderID, req.Reference)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment verified successfully",
		"order":   order,
	})
}

type codConfirmRequest struct {
	OrderID uint `json:"order_id" binding:"required"`
}

func (h *PaymentHandler) ConfirmCOD(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req codConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	order, err := h.paymentService.ConfirmCOD(actor, req.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "COD order confirmed successfully",
		"order":   order,
	})
}

type refundRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Amount  int64  `json:"amount" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
}

func (h *PaymentHandler) Refund(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	order, refundID, err := h.paymentService.Refund(actor, req.OrderID, req.Amount, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Refund processed successfully",
		"refund_id": refundID,
		"order":     order,
	})
}

func (h *PaymentHandler) Status(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}

	info, status, err := h.paymentService.Status(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"payment_info": info,
		"order_status": status,
	})
}
