package models

import "gorm.io/gorm"

// User roles stored in the role column.
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// User is a storefront account. Password holds the bcrypt hash and is never
// serialised; Answer is the security answer checked by forgot-password.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"             json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null"             json:"-"`
	Phone    string `gorm:"size:50"                       json:"phone"`
	Address  string `gorm:"type:text"                     json:"address"`
	Answer   string `gorm:"size:255;not null"             json:"-"`
	Role     int    `gorm:"not null;default:0"            json:"role"`
}
