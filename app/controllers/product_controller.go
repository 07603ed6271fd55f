package controllers

import (
	"net/http"
	"strconv"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/services"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/bind"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/response"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/router"
)

type ProductController struct {
	service *services.CatalogService
}

func NewProductController(service *services.CatalogService) *ProductController {
	return &ProductController{service: service}
}

// List returns the first page by default, or ?page=N.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	products, err := c.service.ListProducts(r.Context(), page)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "", response.M{"products": products})
}

// ListPage returns the page named in the URL, size 6.
func (c *ProductController) ListPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(router.Param(r, "page"))
	if err != nil || page < 1 {
		page = 1
	}

	products, svcErr := c.service.ListProducts(r.Context(), page)
	if svcErr != nil {
		fail(w, r, svcErr)
		return
	}

	response.OK(w, "", response.M{"products": products})
}

// Count returns the total product count.
func (c *ProductController) Count(w http.ResponseWriter, r *http.Request) {
	total, err := c.service.CountProducts(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "", response.M{"total": total})
}

// Single resolves one product by slug, photo excluded.
func (c *ProductController) Single(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.GetProduct(r.Context(), router.Param(r, "slug"))
	if err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "", response.M{"product": product})
}

// Photo streams the product photo with its stored content type.
func (c *ProductController) Photo(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "pid")
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	data, contentType, err := c.service.GetProductPhoto(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// Search runs the keyword search. An empty keyword matches everything.
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.SearchProducts(r.Context(), router.Param(r, "keyword"))
	if err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "", response.M{"products": products})
}

// Filters applies the typed category/price filter payload.
func (c *ProductController) Filters(w http.ResponseWriter, r *http.Request) {
	var in services.ProductFilter
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, "Validation failed", errs)
		return
	}

	products, svcErr := c.service.FilterProducts(r.Context(), in)
	if svcErr != nil {
		fail(w, r, svcErr)
		return
	}

	response.OK(w, "", response.M{"products": products})
}

// Related returns up to 3 products from the same category.
func (c *ProductController) Related(w http.ResponseWriter, r *http.Request) {
	pid, okP := uintParam(r, "pid")
	cid, okC := uintParam(r, "cid")
	if !okP || !okC {
		response.NotFound(w, "Product not found")
		return
	}

	products, err := c.service.RelatedProducts(r.Context(), pid, cid)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "", response.M{"products": products})
}

// ByCategory lists the products of the category named by slug.
func (c *ProductController) ByCategory(w http.ResponseWriter, r *http.Request) {
	category, products, err := c.service.ProductsByCategory(r.Context(), router.Param(r, "slug"))
	if err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "", response.M{
		"category": category,
		"products": products,
	})
}

// Create adds a product (admin). The photo rides as a base64 JSON field.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, "Validation failed", errs)
		return
	}

	product, svcErr := c.service.CreateProduct(r.Context(), in)
	if svcErr != nil {
		fail(w, r, svcErr)
		return
	}

	response.Created(w, "Product created", response.M{"product": product})
}

// Update applies a partial product update (admin).
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "pid")
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	var in services.ProductInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, "Validation failed", errs)
		return
	}

	product, svcErr := c.service.UpdateProduct(r.Context(), id, in)
	if svcErr != nil {
		fail(w, r, svcErr)
		return
	}

	response.OK(w, "Product updated", response.M{"product": product})
}

// Delete removes a product (admin).
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "pid")
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	if err := c.service.DeleteProduct(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "Product deleted", nil)
}
