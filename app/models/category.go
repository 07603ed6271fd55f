package models

import "gorm.io/gorm"

// Category scopes products. Name is unique; Slug is derived from the name
// and used as the public lookup key.
type Category struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;size:255;not null" json:"slug"`
}
