// Package routes wires the HTTP surface: controllers, auth gates, the
// GraphQL endpoint, and the websocket catalog feed.
package routes

import (
	"net/http"

	"gorm.io/gorm"

	appgraphql "github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/graphql"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/controllers"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/repositories"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/services"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/graphql"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/logger"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/middleware"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/rbac"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/router"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/ws"
)

// RegisterAPI mounts every route under /api/v1. The hub may be nil in tests;
// when present, /ws/catalog upgrades into the catalog event feed.
func RegisterAPI(r *router.Router, db *gorm.DB, hub *ws.Hub) {
	users := repositories.NewUserRepository(db)
	categories := repositories.NewCategoryRepository(db)
	products := repositories.NewProductRepository(db)
	orders := repositories.NewOrderRepository(db)

	authService := services.NewAuthService(users)
	categoryService := services.NewCategoryService(categories)
	catalogService := services.NewCatalogService(products, categories)
	orderService := services.NewOrderService(orders, products)

	authCtrl := controllers.NewAuthController(authService)
	categoryCtrl := controllers.NewCategoryController(categoryService)
	productCtrl := controllers.NewProductController(catalogService)
	orderCtrl := controllers.NewOrderController(orderService)

	admin := rbac.RequireAdmin(users)

	api := r.Group("/api/v1")

	// Auth gate.
	auth := api.Group("/auth")
	auth.Post("/register", "auth.register", authCtrl.Register)
	auth.Post("/login", "auth.login", authCtrl.Login)
	auth.Post("/forgot-password", "auth.forgot", authCtrl.ForgotPassword)
	auth.Put("/profile", "auth.profile", authCtrl.Profile, middleware.Authenticate)
	auth.Get("/user-auth", "auth.user", authCtrl.Check, middleware.Authenticate)
	auth.Get("/admin-auth", "auth.admin", authCtrl.Check, middleware.Authenticate, admin)

	// Orders live under the auth group, as the storefront client expects.
	auth.Get("/orders", "orders.mine", orderCtrl.Mine, middleware.Authenticate)
	auth.Post("/orders", "orders.place", orderCtrl.Place, middleware.Authenticate)
	auth.Get("/all-orders", "orders.all", orderCtrl.All, middleware.Authenticate, admin)
	auth.Put("/order-status/{orderId}", "orders.status", orderCtrl.UpdateStatus, middleware.Authenticate, admin)

	// Category resolver.
	category := api.Group("/category")
	category.Post("/create-category", "category.create", categoryCtrl.Create, middleware.Authenticate, admin)
	category.Put("/update-category/{id}", "category.update", categoryCtrl.Update, middleware.Authenticate, admin)
	category.Get("/get-category", "category.list", categoryCtrl.List)
	category.Get("/single-category/{slug}", "category.single", categoryCtrl.Single)
	category.Delete("/delete-category/{id}", "category.delete", categoryCtrl.Delete, middleware.Authenticate, admin)

	// Catalog query service.
	product := api.Group("/product")
	product.Get("/get-product", "product.list", productCtrl.List)
	product.Get("/get-product/{slug}", "product.single", productCtrl.Single)
	product.Get("/product-photo/{pid}", "product.photo", productCtrl.Photo)
	product.Get("/product-count", "product.count", productCtrl.Count)
	product.Get("/product-list/{page}", "product.page", productCtrl.ListPage)
	product.Get("/search/{keyword}", "product.search", productCtrl.Search)
	product.Get("/search", "product.search_all", productCtrl.Search)
	product.Get("/related-product/{pid}/{cid}", "product.related", productCtrl.Related)
	product.Get("/product-category/{slug}", "product.by_category", productCtrl.ByCategory)
	product.Post("/product-filters", "product.filters", productCtrl.Filters)
	product.Post("/create-product", "product.create", productCtrl.Create, middleware.Authenticate, admin)
	product.Put("/update-product/{pid}", "product.update", productCtrl.Update, middleware.Authenticate, admin)
	product.Delete("/delete-product/{pid}", "product.delete", productCtrl.Delete, middleware.Authenticate, admin)

	// Read-only GraphQL endpoint over the same services.
	schema, err := graphql.NewSchema(appgraphql.NewRootQuery(catalogService, categoryService))
	if err != nil {
		logger.Error("graphql schema build failed", "error", err)
	} else {
		r.Post("/graphql", "graphql", graphql.Handler(schema))
	}

	// Websocket catalog feed.
	if hub != nil {
		r.Get("/ws/catalog", "ws.catalog", func(w http.ResponseWriter, req *http.Request) {
			ws.Upgrade(w, req, hub)
		})
	}
}
