package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soumya813/SwaadGharKa/internal/middleware"
	"github.com/soumya813/SwaadGharKa/internal/models"
	"github.com/soumya813/SwaadGharKa/internal/repository"
	"github.com/soumya813/SwaadGharKa/internal/services"
)

type MenuHandler struct {
	menuService services.MenuService
}

func NewMenuHandler(menuService services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

func (h *MenuHandler) List(c *gin.Context) {
	filter := repository.MenuListFilter{
		Category:   c.Query("category"),
		Cuisine:    c.Query("cuisine"),
		SpiceLevel: c.Query("spiceLevel"),
		Tag:        c.Query("tags"),
		Search:     c.Query("search"),
		SortBy:     c.DefaultQuery("sortBy", "createdAt"),
		SortOrder:  c.DefaultQuery("sortOrder", "desc"),
		MinPrice:   queryInt64(c, "minPrice"),
		MaxPrice:   queryInt64(c, "maxPrice"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 12),
	}

	if filter.Category != "" && !models.MenuCategories[filter.Category] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category"})
		return
	}
	if filter.Cuisine != "" && !models.Cuisines[filter.Cuisine] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid cuisine type"})
		return
	}
	if filter.SpiceLevel != "" && !models.SpiceLevels[filter.SpiceLevel] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid spice level"})
		return
	}
	if filter.Tag != "" && !models.MenuTags[filter.Tag] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid tag"})
		return
	}
	clampPaging(&filter)

	items, total, meta, err := h.menuService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	pages := total / int64(filter.Limit)
	if total%int64(filter.Limit) != 0 {
		pages++
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(items),
		"total":     total,
		"page":      filter.Page,
		"pages":     pages,
		"filters":   meta,
		"menuItems": items,
	})
}

func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	item, err := h.menuService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"menuItem":           item,
		"discountPercentage": item.DiscountPercentage(),
	})
}

func (h *MenuHandler) Featured(c *gin.Context) {
	items, err := h.menuService.GetFeatured(8)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(items), "menuItems": items})
}

func (h *MenuHandler) Special(c *gin.Context) {
	items, err := h.menuService.GetSpecial(6)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(items), "menuItems": items})
}

func (h *MenuHandler) ByCategory(c *gin.Context) {
	category := c.Param("category")
	if !models.MenuCategories[category] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category"})
		return
	}

	filter := repository.MenuListFilter{
		Category:  category,
		SortBy:    c.DefaultQuery("sortBy", "name"),
		SortOrder: c.DefaultQuery("sortOrder", "asc"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 12),
	}
	clampPaging(&filter)

	items, total, _, err := h.menuService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(items),
		"total":     total,
		"page":      filter.Page,
		"category":  category,
		"menuItems": items,
	})
}

// Admin endpoints

func (h *MenuHandler) Create(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	if err := h.menuService.Create(actor, &item); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Menu item created successfully",
		"menuItem": item,
	})
}

func (h *MenuHandler) Update(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}
	item.ID = id

	if err := h.menuService.Update(actor, &item); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Menu item updated successfully",
		"menuItem": item,
	})
}

func (h *MenuHandler) Delete(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.menuService.SoftDelete(actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Menu item deleted successfully"})
}

// clampPaging applies the listing bounds before the handler derives page
// counts, so a hostile limit can never reach the division below.
func clampPaging(filter *repository.MenuListFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 12
	}
	if filter.Limit > services.MaxListLimit {
		filter.Limit = services.MaxListLimit
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, defaultValue int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func queryInt64(c *gin.Context, name string) int64 {
	if v := c.Query(name); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
