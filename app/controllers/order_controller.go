package controllers

import (
	"net/http"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/services"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/bind"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/middleware"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/response"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Mine lists the caller's orders.
func (c *OrderController) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	orders, err := c.service.ForBuyer(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "", response.M{"orders": orders})
}

// All lists every order (admin).
func (c *OrderController) All(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.All(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "", response.M{"orders": orders})
}

// Place records a new order for the caller.
func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var in struct {
		Products []uint                 `json:"products"`
		Payment  map[string]interface{} `json:"payment"`
	}
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, "Validation failed", errs)
		return
	}

	order, svcErr := c.service.Place(r.Context(), userID, in.Products, in.Payment)
	if svcErr != nil {
		fail(w, r, svcErr)
		return
	}

	response.Created(w, "Order placed", response.M{"order": order})
}

// UpdateStatus moves an order to a new status (admin).
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "orderId")
	if !ok {
		response.NotFound(w, "Order not found")
		return
	}

	var in struct {
		Status string `json:"status" validate:"required"`
	}
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, "Validation failed", errs)
		return
	}

	order, svcErr := c.service.UpdateStatus(r.Context(), id, in.Status)
	if svcErr != nil {
		fail(w, r, svcErr)
		return
	}

	response.OK(w, "Order status updated", response.M{"order": order})
}
