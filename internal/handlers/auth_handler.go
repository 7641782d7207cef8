package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soumya813/SwaadGharKa/internal/middleware"
	"github.com/soumya813/SwaadGharKa/internal/models"
	"github.com/soumya813/SwaadGharKa/internal/services"
	"github.com/soumya813/SwaadGharKa/pkg/token"
)

type AuthHandler struct {
	userService services.UserService
	tokenMaker  *token.Maker
}

func NewAuthHandler(userService services.UserService, tokenMaker *token.Maker) *AuthHandler {
	return &AuthHandler{userService: userService, tokenMaker: tokenMaker}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	user, err := h.userService.Register(req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	signed, err := h.tokenMaker.Issue(user.ID, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"token":   signed,
		"user":    publicUser(user),
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	user, err := h.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	signed, err := h.tokenMaker.Issue(user.ID, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   signed,
		"user":    publicUser(user),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	user, err := h.userService.GetByID(actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    publicUser(user),
	})
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	user := &models.User{
		ID:      actor.ID,
		Name:    req.Name,
		Phone:   req.Phone,
		Street:  req.Street,
		City:    req.City,
		State:   req.State,
		Pincode: req.Pincode,
	}
	if err := h.userService.UpdateProfile(actor, user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully"})
}

func publicUser(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"phone": user.Phone,
		"role":  user.Role,
	}
}
