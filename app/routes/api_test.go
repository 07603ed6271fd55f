package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/models"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/routes"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/auth"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/router"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/storage"
)

// memDisk is an in-memory storage driver for exercising photo routes.
type memDisk struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func newMemDisk() *memDisk { return &memDisk{objects: map[string][]byte{}} }

func (d *memDisk) Put(_ context.Context, path string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.objects[path] = append([]byte(nil), content...)
	return nil
}

func (d *memDisk) Get(_ context.Context, path string) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	content, ok := d.objects[path]
	if !ok {
		return nil, fmt.Errorf("memdisk: %s not found", path)
	}
	return content, nil
}

func (d *memDisk) GetStream(ctx context.Context, path string) (io.ReadCloser, error) {
	content, err := d.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (d *memDisk) Exists(_ context.Context, path string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.objects[path]
	return ok
}

func (d *memDisk) Size(ctx context.Context, path string) (int64, error) {
	content, err := d.Get(ctx, path)
	if err != nil {
		return 0, err
	}
	return int64(len(content)), nil
}

func (d *memDisk) Delete(_ context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.objects, path)
	return nil
}

func (d *memDisk) URL(path string) string { return "mem://" + path }

func (d *memDisk) Files(_ context.Context, directory string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var files []string
	for path := range d.objects {
		if strings.HasPrefix(path, directory+"/") {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would get its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{}, &models.Order{},
	))

	storage.RegisterDisk("local", newMemDisk())

	r := router.New()
	routes.RegisterAPI(r, db, nil)

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv, db
}

// tokenFor inserts a user with the given role and returns a bearer token.
func tokenFor(t *testing.T, db *gorm.DB, email string, role int) string {
	t.Helper()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	user := models.User{
		Name:     "Route Tester",
		Email:    email,
		Password: hash,
		Phone:    "0170000000",
		Address:  "Dhaka",
		Answer:   "mango",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := auth.GenerateToken(user.ID)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp, decoded
}

func TestAdminGate(t *testing.T) {
	srv, db := newTestServer(t)
	userToken := tokenFor(t, db, "user@example.com", models.RoleUser)
	adminToken := tokenFor(t, db, "admin@example.com", models.RoleAdmin)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/auth/admin-auth", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/auth/admin-auth", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/auth/admin-auth", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["ok"])

	// The plain auth gate accepts either role.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/auth/user-auth", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterLoginEnvelope(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Rahim Uddin",
		"email":    "rahim@example.com",
		"password": "secret123",
		"phone":    "01812345678",
		"address":  "Bogura",
		"answer":   "jackfruit",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "rahim@example.com", user["email"])
	// The hash never leaves the API.
	assert.NotContains(t, user, "password")

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", map[string]interface{}{
		"email":    "rahim@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", map[string]interface{}{
		"email":    "rahim@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credential", body["message"])
}

func TestProductPhotoRoundtrip(t *testing.T) {
	srv, db := newTestServer(t)
	adminToken := tokenFor(t, db, "admin@example.com", models.RoleAdmin)

	category := models.Category{Name: "Seeds", Slug: "seeds"}
	require.NoError(t, db.Create(&category).Error)

	photo := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02, 0x03}
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/product/create-product", adminToken, map[string]interface{}{
		"name":        "BRRI Dhan 29",
		"description": "High yield paddy seed",
		"price":       42.5,
		"quantity":    100,
		"category":    category.ID,
		"photo":       photo, // marshals to base64, as the client sends it
		"photoType":   "image/jpeg",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product, ok := body["product"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "brri-dhan-29", product["slug"])

	pid := int(product["ID"].(float64))
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/v1/product/product-photo/%d", srv.URL, pid), nil)
	require.NoError(t, err)
	photoResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer photoResp.Body.Close()

	require.Equal(t, http.StatusOK, photoResp.StatusCode)
	assert.Equal(t, "image/jpeg", photoResp.Header.Get("Content-Type"))
	served, err := io.ReadAll(photoResp.Body)
	require.NoError(t, err)
	assert.Equal(t, photo, served)

	// Writes are admin-only.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/product/create-product", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPublicCatalogRoutes(t *testing.T) {
	srv, db := newTestServer(t)

	category := models.Category{Name: "Tools", Slug: "tools"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{
		Name: "Sickle", Slug: "sickle", Description: "Hand harvester",
		Price: 150, Quantity: 10, CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&product).Error)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/product/get-product", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["products"], 1)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/product/get-product/sickle", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := body["product"].(map[string]interface{})
	assert.Equal(t, "Sickle", got["name"])

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/product/get-product/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/product/product-count", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/product/product-category/tools", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["products"], 1)
	assert.NotNil(t, body["category"])
}

func TestGraphQLProductQuery(t *testing.T) {
	srv, db := newTestServer(t)

	category := models.Category{Name: "Dairy", Slug: "dairy"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{
		Name: "Fresh Milk", Slug: "fresh-milk", Description: "Pasteurized",
		Price: 90, Quantity: 25, CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&product).Error)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/graphql", "", map[string]interface{}{
		"query": `{ product(slug: "fresh-milk") { name price } }`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "graphql errors: %v", body["errors"])
	got := data["product"].(map[string]interface{})
	assert.Equal(t, "Fresh Milk", got["name"])
	assert.Equal(t, float64(90), got["price"])
}
