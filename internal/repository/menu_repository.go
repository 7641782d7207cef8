package repository

import (
	"errors"

	"github.com/soumya813/SwaadGharKa/internal/models"

	"gorm.io/gorm"
)

// MenuListFilter carries the storefront's filter, sort and pagination inputs.
type MenuListFilter struct {
	Category   string
	Cuisine    string
	MinPrice   int64
	MaxPrice   int64
	SpiceLevel string
	Tag        string
	Search     string
	SortBy     string // price, rating, name, createdAt, popular
	SortOrder  string // asc, desc
	Page       int
	Limit      int
}

// MenuFilterMeta is the aggregate data the storefront uses to populate its
// filter controls.
type MenuFilterMeta struct {
	Categories []string `json:"categories"`
	Cuisines   []string `json:"cuisines"`
	MinPrice   int64    `json:"min_price"`
	MaxPrice   int64    `json:"max_price"`
}

type MenuRepository interface {
	Create(item *models.MenuItem) error
	GetByID(id uint) (*models.MenuItem, error)
	Update(item *models.MenuItem) error
	SoftDelete(id uint) error
	List(filter MenuListFilter) ([]models.MenuItem, int64, error)
	FilterMeta() (*MenuFilterMeta, error)
	GetFeatured(limit int) ([]models.MenuItem, error)
	GetSpecial(limit int) ([]models.MenuItem, error)
	IncrementDailyOrders(id uint, qty int) error
	ResetDailyCounters() (int64, error)
	UpdateRating(id uint, newRating int) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) Update(item *models.MenuItem) error {
	return r.db.Save(item).Error
}

func (r *menuRepository) SoftDelete(id uint) error {
	return r.db.Model(&models.MenuItem{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *menuRepository) List(filter MenuListFilter) ([]models.MenuItem, int64, error) {
	query := r.db.Model(&models.MenuItem{}).Where("is_active = ?", true)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Cuisine != "" {
		query = query.Where("cuisine = ?", filter.Cuisine)
	}
	if filter.SpiceLevel != "" {
		query = query.Where("spice_level = ?", filter.SpiceLevel)
	}
	if filter.MinPrice > 0 {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Tag != "" {
		// Tags are stored as a JSON array; match the quoted element.
		query = query.Where("tags LIKE ?", "%\""+filter.Tag+"\"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	dir := "DESC"
	if filter.SortOrder == "asc" {
		dir = "ASC"
	}
	switch filter.SortBy {
	case "price":
		order = "price " + dir
	case "rating":
		order = "rating_average " + dir
	case "name":
		order = "name " + dir
	case "popular":
		order = "rating_count DESC, rating_average DESC"
	case "createdAt", "":
		order = "created_at " + dir
	}

	offset := (filter.Page - 1) * filter.Limit

	var items []models.MenuItem
	err := query.
		Omit("ingredients", "nutritional_info").
		Order(order).
		Offset(offset).
		Limit(filter.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *menuRepository) FilterMeta() (*MenuFilterMeta, error) {
	meta := &MenuFilterMeta{}

	active := r.db.Model(&models.MenuItem{}).Where("is_active = ?", true)

	if err := active.Session(&gorm.Session{}).Distinct("category").Pluck("category", &meta.Categories).Error; err != nil {
		return nil, err
	}
	if err := active.Session(&gorm.Session{}).Distinct("cuisine").Pluck("cuisine", &meta.Cuisines).Error; err != nil {
		return nil, err
	}

	var bounds struct {
		Min int64
		Max int64
	}
	if err := active.Session(&gorm.Session{}).
		Select("COALESCE(MIN(price), 0) AS min, COALESCE(MAX(price), 0) AS max").
		Scan(&bounds).Error; err != nil {
		return nil, err
	}
	meta.MinPrice = bounds.Min
	meta.MaxPrice = bounds.Max
	return meta, nil
}

func (r *menuRepository) GetFeatured(limit int) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.
		Where("is_featured = ? AND is_active = ?", true, true).
		Omit("ingredients", "nutritional_info").
		Order("rating_average DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *menuRepository) GetSpecial(limit int) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.
		Where("is_special = ? AND is_active = ?", true, true).
		Omit("ingredients", "nutritional_info").
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// IncrementDailyOrders bumps the per-day counter atomically at the storage
// layer. A read-modify-write here would lose increments under concurrent
// order placement.
func (r *menuRepository) IncrementDailyOrders(id uint, qty int) error {
	return r.db.Model(&models.MenuItem{}).
		Where("id = ?", id).
		UpdateColumn("current_orders_today", gorm.Expr("current_orders_today + ?", qty)).Error
}

// ResetDailyCounters zeroes every item's daily order counter. Run by the
// midnight job.
func (r *menuRepository) ResetDailyCounters() (int64, error) {
	res := r.db.Model(&models.MenuItem{}).
		Where("current_orders_today > 0").
		UpdateColumn("current_orders_today", 0)
	return res.RowsAffected, res.Error
}

// UpdateRating folds one new rating into the running average in a single
// statement so concurrent reviews cannot clobber each other.
func (r *menuRepository) UpdateRating(id uint, newRating int) error {
	return r.db.Model(&models.MenuItem{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"rating_average": gorm.Expr("(rating_average * rating_count + ?) / (rating_count + 1)", newRating),
			"rating_count":   gorm.Expr("rating_count + 1"),
		}).Error
}
