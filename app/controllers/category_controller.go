package controllers

import (
	"net/http"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/services"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/bind"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/response"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/router"
)

type CategoryController struct {
	service *services.CategoryService
}

func NewCategoryController(service *services.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

type categoryInput struct {
	Name string `json:"name" validate:"required"`
}

// Create adds a new category (admin).
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, "Validation failed", errs)
		return
	}

	category, err := c.service.Create(r.Context(), in.Name)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Created(w, "Category created", response.M{"category": category})
}

// Update renames a category (admin).
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.NotFound(w, "Category not found")
		return
	}

	var in categoryInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, "Validation failed", errs)
		return
	}

	category, err := c.service.Update(r.Context(), id, in.Name)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "Category updated", response.M{"category": category})
}

// List returns all categories.
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.service.All(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "", response.M{"categories": categories})
}

// Single resolves one category by slug.
func (c *CategoryController) Single(w http.ResponseWriter, r *http.Request) {
	category, err := c.service.BySlug(r.Context(), router.Param(r, "slug"))
	if err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "", response.M{"category": category})
}

// Delete removes a category (admin). Products keep their dangling reference.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.NotFound(w, "Category not found")
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "Category deleted", nil)
}
