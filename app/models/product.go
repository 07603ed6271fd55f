package models

import "gorm.io/gorm"

// Product is a catalog entry. The photo binary lives on the storage disk;
// the row keeps only its path, content type, and size so list queries never
// drag blob data through the ORM.
//
// CategoryID is a weak reference: deleting a category leaves the product in
// place with a dangling reference.
type Product struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Slug        string  `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	Quantity    int     `gorm:"not null;default:0" json:"quantity"`
	CategoryID  uint    `gorm:"not null;index" json:"category"`
	PhotoPath   string  `gorm:"size:512" json:"-"`
	PhotoType   string  `gorm:"size:100" json:"-"`
	PhotoSize   int64   `json:"-"`
	Shipping    bool    `gorm:"not null;default:false" json:"shipping"`
}
