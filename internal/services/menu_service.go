package services

import (
	"time"

	"github.com/soumya813/SwaadGharKa/internal/apperr"
	"github.com/soumya813/SwaadGharKa/internal/models"
	"github.com/soumya813/SwaadGharKa/internal/repository"
)

const (
	MinLineQuantity = 1
	MaxLineQuantity = 10
	MaxListLimit    = 50
)

type MenuService interface {
	List(filter repository.MenuListFilter) ([]models.MenuItem, int64, *repository.MenuFilterMeta, error)
	Get(id uint) (*models.MenuItem, error)
	GetFeatured(limit int) ([]models.MenuItem, error)
	GetSpecial(limit int) ([]models.MenuItem, error)
	CheckAvailability(id uint, requestedQty int) (*models.MenuItem, error)
	IncrementDailyOrders(id uint, qty int) error
	RecordRating(itemID uint, rating int) error

	Create(actor Actor, item *models.MenuItem) error
	Update(actor Actor, item *models.MenuItem) error
	SoftDelete(actor Actor, id uint) error
}

type menuService struct {
	menuRepo repository.MenuRepository
}

func NewMenuService(menuRepo repository.MenuRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

func (s *menuService) List(filter repository.MenuListFilter) ([]models.MenuItem, int64, *repository.MenuFilterMeta, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 12
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	items, total, err := s.menuRepo.List(filter)
	if err != nil {
		return nil, 0, nil, apperr.Wrap(apperr.Internal, "Failed to load menu", err)
	}

	meta, err := s.menuRepo.FilterMeta()
	if err != nil {
		return nil, 0, nil, apperr.Wrap(apperr.Internal, "Failed to load menu filters", err)
	}

	return items, total, meta, nil
}

func (s *menuService) Get(id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load menu item", err)
	}
	if item == nil || !item.IsActive {
		return nil, apperr.New(apperr.NotFound, "Menu item not found")
	}
	return item, nil
}

func (s *menuService) GetFeatured(limit int) ([]models.MenuItem, error) {
	items, err := s.menuRepo.GetFeatured(limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load featured items", err)
	}
	return items, nil
}

func (s *menuService) GetSpecial(limit int) ([]models.MenuItem, error) {
	items, err := s.menuRepo.GetSpecial(limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load special items", err)
	}
	return items, nil
}

// CheckAvailability re-validates an item directly against storage at order
// time; client-side menu state is never trusted.
func (s *menuService) CheckAvailability(id uint, requestedQty int) (*models.MenuItem, error) {
	if requestedQty < MinLineQuantity || requestedQty > MaxLineQuantity {
		return nil, apperr.Newf(apperr.ValidationFailed, "Quantity must be between %d and %d", MinLineQuantity, MaxLineQuantity)
	}

	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load menu item", err)
	}
	if item == nil || !item.IsActive {
		return nil, apperr.Newf(apperr.NotFound, "Menu item not found or unavailable: %d", id)
	}
	if !item.IsCurrentlyAvailable(time.Now()) {
		return nil, apperr.Newf(apperr.Conflict, "Item %q is currently unavailable", item.Name)
	}
	return item, nil
}

func (s *menuService) IncrementDailyOrders(id uint, qty int) error {
	return s.menuRepo.IncrementDailyOrders(id, qty)
}

func (s *menuService) RecordRating(itemID uint, rating int) error {
	return s.menuRepo.UpdateRating(itemID, rating)
}

func (s *menuService) Create(actor Actor, item *models.MenuItem) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.Forbidden, "Admin privileges required")
	}
	if err := validateMenuItem(item); err != nil {
		return err
	}

	item.CreatedBy = actor.ID
	item.IsActive = true
	if item.SpiceLevel == "" {
		item.SpiceLevel = "medium"
	}
	if item.MaxOrdersPerDay == 0 {
		item.MaxOrdersPerDay = 100
	}

	if err := s.menuRepo.Create(item); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to create menu item", err)
	}
	return nil
}

func (s *menuService) Update(actor Actor, item *models.MenuItem) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.Forbidden, "Admin privileges required")
	}

	existing, err := s.menuRepo.GetByID(item.ID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to load menu item", err)
	}
	if existing == nil {
		return apperr.New(apperr.NotFound, "Menu item not found")
	}

	if err := validateMenuItem(item); err != nil {
		return err
	}

	item.CreatedBy = existing.CreatedBy
	item.CreatedAt = existing.CreatedAt
	item.RatingAverage = existing.RatingAverage
	item.RatingCount = existing.RatingCount
	item.CurrentOrdersToday = existing.CurrentOrdersToday

	if err := s.menuRepo.Update(item); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to update menu item", err)
	}
	return nil
}

// SoftDelete marks the item inactive. Items are never physically removed:
// order line snapshots keep referencing them.
func (s *menuService) SoftDelete(actor Actor, id uint) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.Forbidden, "Admin privileges required")
	}

	existing, err := s.menuRepo.GetByID(id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to load menu item", err)
	}
	if existing == nil {
		return apperr.New(apperr.NotFound, "Menu item not found")
	}

	if err := s.menuRepo.SoftDelete(id); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete menu item", err)
	}
	return nil
}

func validateMenuItem(item *models.MenuItem) error {
	if len(item.Name) < 2 || len(item.Name) > 100 {
		return apperr.New(apperr.ValidationFailed, "Item name must be between 2 and 100 characters")
	}
	if len(item.Description) < 10 || len(item.Description) > 500 {
		return apperr.New(apperr.ValidationFailed, "Description must be between 10 and 500 characters")
	}
	if item.Price < 1 || item.Price > 10000 {
		return apperr.New(apperr.ValidationFailed, "Price must be between 1 and 10000")
	}
	if item.OriginalPrice != 0 && item.OriginalPrice < item.Price {
		return apperr.New(apperr.ValidationFailed, "Original price must be greater than or equal to current price")
	}
	if !models.MenuCategories[item.Category] {
		return apperr.New(apperr.ValidationFailed, "Invalid category")
	}
	if !models.Cuisines[item.Cuisine] {
		return apperr.New(apperr.ValidationFailed, "Invalid cuisine type")
	}
	for _, tag := range item.Tags {
		if !models.MenuTags[tag] {
			return apperr.Newf(apperr.ValidationFailed, "Invalid tag: %s", tag)
		}
	}
	if item.SpiceLevel != "" && !models.SpiceLevels[item.SpiceLevel] {
		return apperr.New(apperr.ValidationFailed, "Invalid spice level")
	}
	if item.PreparationTime < 5 || item.PreparationTime > 120 {
		return apperr.New(apperr.ValidationFailed, "Preparation time must be between 5 and 120 minutes")
	}
	if !models.ServingSizes[item.ServingSize] {
		return apperr.New(apperr.ValidationFailed, "Invalid serving size")
	}
	return nil
}
