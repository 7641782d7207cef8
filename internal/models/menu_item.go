package models

import (
	"time"

	"gorm.io/gorm"
)

type MenuItem struct {
	ID              uint     `json:"id" gorm:"primaryKey"`
	Name            string   `json:"name" gorm:"not null;index"`
	Description     string   `json:"description" gorm:"type:text;not null"`
	Price           int64    `json:"price" gorm:"not null"` // integer currency units
	OriginalPrice   int64    `json:"original_price"`
	Category        string   `json:"category" gorm:"not null;index"`
	Cuisine         string   `json:"cuisine" gorm:"not null;index"`
	Tags            []string `json:"tags" gorm:"serializer:json"`
	SpiceLevel      string   `json:"spice_level" gorm:"default:'medium'"`
	PreparationTime int      `json:"preparation_time" gorm:"not null"` // minutes
	ServingSize     string   `json:"serving_size" gorm:"not null"`

	Ingredients     []Ingredient     `json:"ingredients,omitempty" gorm:"serializer:json"`
	NutritionalInfo *NutritionalInfo `json:"nutritional_info,omitempty" gorm:"serializer:json"`

	// Availability window
	IsAvailable        bool     `json:"is_available" gorm:"default:true"`
	AvailableDays      []string `json:"available_days" gorm:"serializer:json"`
	AvailableFrom      string   `json:"available_from"` // HH:MM, empty = no restriction
	AvailableUntil     string   `json:"available_until"`
	MaxOrdersPerDay    int      `json:"max_orders_per_day" gorm:"default:100"`
	CurrentOrdersToday int      `json:"current_orders_today" gorm:"default:0"`

	RatingAverage float64 `json:"rating_average" gorm:"default:0"`
	RatingCount   int     `json:"rating_count" gorm:"default:0"`

	IsSpecial  bool `json:"is_special" gorm:"default:false;index"`
	IsFeatured bool `json:"is_featured" gorm:"default:false;index"`
	IsActive   bool `json:"is_active" gorm:"default:true;index"`

	CreatedBy uint           `json:"created_by" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type Ingredient struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	IsAllergen bool   `json:"is_allergen"`
}

type NutritionalInfo struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Fiber    int `json:"fiber"`
}

var MenuCategories = map[string]bool{
	"appetizers": true, "main-course": true, "rice-biryani": true,
	"bread-roti": true, "dal-curry": true, "vegetables": true,
	"snacks": true, "sweets-desserts": true, "beverages": true,
	"combo-meals": true, "regional-specials": true, "chef-special": true,
}

var Cuisines = map[string]bool{
	"north-indian": true, "south-indian": true, "gujarati": true,
	"punjabi": true, "bengali": true, "maharashtrian": true,
	"rajasthani": true, "kerala": true, "tamil": true, "hyderabadi": true,
	"mughlai": true, "street-food": true, "chinese": true, "continental": true,
}

var MenuTags = map[string]bool{
	"vegetarian": true, "vegan": true, "jain": true, "halal": true,
	"gluten-free": true, "dairy-free": true, "spicy": true, "mild": true,
	"sweet": true, "tangy": true, "crispy": true, "healthy": true,
	"comfort-food": true, "traditional": true, "fusion": true,
	"home-style": true, "restaurant-style": true, "quick-bite": true,
	"family-pack": true, "single-serve": true,
}

var SpiceLevels = map[string]bool{
	"mild": true, "medium": true, "spicy": true, "extra-spicy": true,
}

var ServingSizes = map[string]bool{
	"1 person": true, "2-3 people": true, "4-5 people": true, "family pack": true,
}

// DiscountPercentage is computed, never stored.
func (m *MenuItem) DiscountPercentage() int {
	if m.OriginalPrice <= m.Price {
		return 0
	}
	return int(float64(m.OriginalPrice-m.Price)/float64(m.OriginalPrice)*100 + 0.5)
}

// IsCurrentlyAvailable applies the availability window and the daily cap
// against the supplied clock time.
func (m *MenuItem) IsCurrentlyAvailable(now time.Time) bool {
	if !m.IsActive || !m.IsAvailable {
		return false
	}

	if len(m.AvailableDays) > 0 {
		today := weekdayName(now.Weekday())
		found := false
		for _, day := range m.AvailableDays {
			if day == today {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if m.AvailableFrom != "" && m.AvailableUntil != "" {
		currentTime := now.Format("15:04")
		if currentTime < m.AvailableFrom || currentTime > m.AvailableUntil {
			return false
		}
	}

	if m.CurrentOrdersToday >= m.MaxOrdersPerDay {
		return false
	}

	return true
}

func weekdayName(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}
