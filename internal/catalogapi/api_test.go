package catalogapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nexcat/catalog/config"
	"github.com/nexcat/catalog/internal/app"
	"github.com/nexcat/catalog/internal/domain"
	"github.com/nexcat/catalog/internal/dto"
	"github.com/nexcat/catalog/internal/webserver"
)

func newTestAPI(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	cfg := config.DefaultAppConfig()
	cfg.RateLimit.Enabled = false
	cfg.Web.Swagger = false

	application := app.NewApplication(cfg)
	application.OverrideDB(db)

	ws := webserver.Init(cfg)
	InitRouter(application)
	return ws.Echo(), db
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCategoryLifecycle(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/categories", `{"name":"food"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/categories/1", rec.Header().Get(echo.HeaderLocation))

	var createdCat dto.CategoryDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &createdCat))
	assert.Equal(t, dto.CategoryDTO{ID: 1, Name: "food"}, createdCat)

	rec = doJSON(e, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []dto.CategoryDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []dto.CategoryDTO{{ID: 1, Name: "food"}}, list)

	rec = doJSON(e, http.MethodDelete, "/api/categories/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/categories/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCategoryValidation(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/categories", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/categories", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryReplace(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/categories", `{"name":"food"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// body/path mismatch is always a 400, existing id or not
	rec = doJSON(e, http.MethodPut, "/api/categories/1", `{"id":2,"name":"drinks"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doJSON(e, http.MethodPut, "/api/categories/999", `{"id":1,"name":"drinks"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/categories/999", `{"id":999,"name":"drinks"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/categories/1", `{"id":1,"name":"drinks"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/categories/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.CategoryDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "drinks", got.Name)
}

func TestCategoryDeleteInUse(t *testing.T) {
	e, db := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/categories", `{"name":"hardware"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(e, http.MethodPost, "/api/products", `{"name":"widget","price":9.99,"categoryId":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/categories/1", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	var count int64
	require.NoError(t, db.Model(&domain.Category{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProductLifecycle(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/categories", `{"name":"hardware"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/products", `{"name":"widget","price":9.99,"categoryId":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created dto.ProductDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Positive(t, created.ID)
	assert.Equal(t, "widget", created.Name)
	assert.Equal(t, 9.99, created.Price)
	assert.Equal(t, int64(1), created.CategoryID)
	assert.Equal(t, fmt.Sprintf("/api/products/%d", created.ID), rec.Header().Get(echo.HeaderLocation))

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.ProductDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created, got)

	rec = doJSON(e, http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID),
		fmt.Sprintf(`{"id":%d,"name":"widget-pro","price":24.5,"categoryId":1}`, created.ID))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "widget-pro", got.Name)
	assert.Equal(t, 24.5, got.Price)

	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductNotFound(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/products/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/products/999", `{"id":999,"name":"x","price":1,"categoryId":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductCreateWithDanglingCategory(t *testing.T) {
	e, db := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/products", `{"name":"orphan","price":1,"categoryId":999}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var count int64
	require.NoError(t, db.Model(&domain.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProductIDMismatchIgnoresExistence(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/categories", `{"name":"hardware"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(e, http.MethodPost, "/api/products", `{"name":"widget","price":1,"categoryId":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/products/1", `{"id":2,"name":"widget","price":1,"categoryId":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doJSON(e, http.MethodPut, "/api/products/999", `{"id":1,"name":"widget","price":1,"categoryId":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusEndpoint(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "products")
}
