package seeders

import (
	"errors"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/models"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/auth"
)

func init() {
	Register("admin-user", SeedAdminUser)
	Register("categories", SeedCategories)
	Register("products", SeedProducts)
}

// SeedAdminUser creates the bootstrap admin account if it does not exist.
func SeedAdminUser(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", "admin@agroasha.com").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := auth.HashPassword("changeme123")
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Name:     "AgroAsha Admin",
		Email:    "admin@agroasha.com",
		Password: hashed,
		Phone:    "01700000000",
		Address:  "Dhaka, Bangladesh",
		Answer:   "agroasha",
		Role:     models.RoleAdmin,
	}).Error
}

// SeedCategories inserts the starter categories.
func SeedCategories(db *gorm.DB) error {
	names := []string{"Seeds", "Fertilizers", "Fresh Produce", "Tools", "Dairy"}

	for _, name := range names {
		var existing models.Category
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.Category{Name: name, Slug: slug.Make(name)}).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts inserts a handful of demo products into the first category.
func SeedProducts(db *gorm.DB) error {
	var category models.Category
	if err := db.First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to attach products to
		}
		return err
	}

	demo := []models.Product{
		{Name: "Basmati Rice Seed 5kg", Description: "Long-grain aromatic rice seed", Price: 24.5, Quantity: 120, Shipping: true},
		{Name: "Hybrid Tomato Seed", Description: "High-yield hybrid tomato seed packet", Price: 3.25, Quantity: 500, Shipping: true},
		{Name: "Mustard Seed 1kg", Description: "Cold-pressed grade mustard seed", Price: 6.0, Quantity: 200},
	}

	for _, p := range demo {
		var existing models.Product
		err := db.Where("name = ?", p.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		p.Slug = slug.Make(p.Name)
		p.CategoryID = category.ID
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}
