package models

import "gorm.io/gorm"

// Order statuses. The enumeration is flat: any status may transition to any
// other, including away from Canceled.
const (
	StatusNotProcess = "Not Process"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCanceled   = "Canceled"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	StatusNotProcess,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCanceled,
}

// ValidOrderStatus reports whether s is a member of the status enumeration.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order links a buyer to the products they bought. Payment holds the
// AES-GCM-encrypted gateway result blob.
type Order struct {
	gorm.Model
	BuyerID  uint      `gorm:"not null;index" json:"buyer"`
	Products []Product `gorm:"many2many:order_products" json:"products"`
	Payment  string    `gorm:"type:text" json:"-"`
	Status   string    `gorm:"size:50;not null;default:'Not Process'" json:"status"`
}
