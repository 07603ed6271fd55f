package services

import (
	"context"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/models"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/repositories"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/crypt"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/event"
)

// OrderService lists orders and moves them through the status enumeration.
type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
}

func NewOrderService(orders *repositories.OrderRepository, products *repositories.ProductRepository) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// ForBuyer returns the caller's orders, newest-first.
func (s *OrderService) ForBuyer(ctx context.Context, buyerID uint) ([]models.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return s.orders.ByBuyer(ctx, buyerID)
}

// All returns every order, newest-first. Admin only; the gate sits in the
// route layer.
func (s *OrderService) All(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return s.orders.All(ctx)
}

// Place records an order for the buyer. The gateway payment result is
// encrypted before it touches the database.
func (s *OrderService) Place(ctx context.Context, buyerID uint, productIDs []uint, payment map[string]interface{}) (models.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if len(productIDs) == 0 {
		return models.Order{}, NewValidationError(map[string]string{
			"products": "The products field is required.",
		})
	}

	var items []models.Product
	for _, id := range productIDs {
		product, err := s.products.FindByID(ctx, id)
		if err != nil {
			return models.Order{}, notFound(err)
		}
		items = append(items, product)
	}

	encrypted := ""
	if payment != nil {
		var err error
		encrypted, err = crypt.EncryptJSON(payment)
		if err != nil {
			return models.Order{}, err
		}
	}

	order := models.Order{
		BuyerID:  buyerID,
		Products: items,
		Payment:  encrypted,
		Status:   models.StatusNotProcess,
	}
	if err := s.orders.Create(ctx, &order); err != nil {
		return models.Order{}, err
	}

	event.FireAsync(event.OrderPlaced, order)
	return order, nil
}

// UpdateStatus sets an order's status. Any status may move to any other;
// the enumeration is flat by design of the original workflow.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (models.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if !models.ValidOrderStatus(status) {
		return models.Order{}, ErrInvalidStatus
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return models.Order{}, notFound(err)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return models.Order{}, notFound(err)
	}

	event.FireAsync(event.OrderStatusChanged, order)
	return order, nil
}
