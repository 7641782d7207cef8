package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/soumya813/SwaadGharKa/internal/config"
	"github.com/soumya813/SwaadGharKa/internal/database"
	"github.com/soumya813/SwaadGharKa/internal/models"
)

// Seeds an admin account and a starter menu for local development.
func main() {
	fmt.Println("Seeding database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	admin := models.User{
		Name:         "Admin",
		Email:        "admin@swaadgharka.com",
		Phone:        "9876543210",
		PasswordHash: string(hashed),
		Role:         string(models.RoleAdmin),
		IsActive:     true,
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}

	menuItems := []models.MenuItem{
		{
			Name:            "Paneer Butter Masala",
			Description:     "Cottage cheese simmered in a rich tomato and butter gravy",
			Price:           220,
			OriginalPrice:   260,
			Category:        "main-course",
			Cuisine:         "north-indian",
			Tags:            []string{"vegetarian", "comfort-food"},
			SpiceLevel:      "medium",
			PreparationTime: 25,
			ServingSize:     "2-3 people",
			IsAvailable:     true,
			MaxOrdersPerDay: 100,
			IsFeatured:      true,
			IsActive:        true,
			CreatedBy:       admin.ID,
		},
		{
			Name:            "Hyderabadi Chicken Biryani",
			Description:     "Fragrant basmati rice layered with spiced chicken and saffron",
			Price:           280,
			Category:        "rice-biryani",
			Cuisine:         "hyderabadi",
			Tags:            []string{"spicy", "traditional"},
			SpiceLevel:      "spicy",
			PreparationTime: 40,
			ServingSize:     "1 person",
			IsAvailable:     true,
			MaxOrdersPerDay: 50,
			IsSpecial:       true,
			IsActive:        true,
			CreatedBy:       admin.ID,
		},
		{
			Name:            "Masala Dosa",
			Description:     "Crisp rice crepe with spiced potato filling, served with chutney",
			Price:           90,
			Category:        "snacks",
			Cuisine:         "south-indian",
			Tags:            []string{"vegetarian", "crispy", "quick-bite"},
			SpiceLevel:      "mild",
			PreparationTime: 15,
			ServingSize:     "1 person",
			IsAvailable:     true,
			MaxOrdersPerDay: 100,
			IsActive:        true,
			CreatedBy:       admin.ID,
		},
		{
			Name:            "Gulab Jamun",
			Description:     "Soft milk dumplings soaked in cardamom-scented sugar syrup",
			Price:           60,
			Category:        "sweets-desserts",
			Cuisine:         "north-indian",
			Tags:            []string{"sweet", "traditional"},
			SpiceLevel:      "mild",
			PreparationTime: 10,
			ServingSize:     "1 person",
			IsAvailable:     true,
			MaxOrdersPerDay: 100,
			IsActive:        true,
			CreatedBy:       admin.ID,
		},
	}

	for i := range menuItems {
		item := &menuItems[i]
		if err := db.Where("name = ?", item.Name).FirstOrCreate(item).Error; err != nil {
			log.Printf("Warning: failed to seed %q: %v", item.Name, err)
		}
	}

	fmt.Println("Seeding complete")
}
