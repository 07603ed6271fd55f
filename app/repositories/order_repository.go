package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/models"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/metrics"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// ByBuyer returns the given user's orders, newest-first, products preloaded.
func (r *OrderRepository) ByBuyer(ctx context.Context, buyerID uint) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("order.by_buyer", time.Now())

	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Products").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// All returns every order, newest-first, products preloaded.
func (r *OrderRepository) All(ctx context.Context) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("order.all", time.Now())

	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Products").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// FindByID looks up an order by primary key.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (models.Order, error) {
	defer metrics.ObserveDBQuery("order.find_by_id", time.Now())

	var order models.Order
	err := r.db.WithContext(ctx).Preload("Products").First(&order, id).Error
	return order, err
}

// Create persists a new order with its product associations.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	defer metrics.ObserveDBQuery("order.create", time.Now())
	return r.db.WithContext(ctx).Create(order).Error
}

// UpdateStatus sets the status column of one order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	defer metrics.ObserveDBQuery("order.update_status", time.Now())

	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
