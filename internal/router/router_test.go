package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cafe-site/internal/auth"
	"cafe-site/internal/handler"
	"cafe-site/internal/metrics"
	"cafe-site/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stubs answer every service call with an empty result.
type stubCategories struct{}

func (stubCategories) List(ctx context.Context) ([]model.Category, error) { return []model.Category{}, nil }
func (stubCategories) Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	return &model.Category{}, nil
}
func (stubCategories) Update(ctx context.Context, id string, req *model.CategoryRequest) (*model.Category, error) {
	return &model.Category{ID: id}, nil
}
func (stubCategories) Delete(ctx context.Context, id string) error { return nil }

type stubMenu struct{}

func (stubMenu) List(ctx context.Context, filter model.MenuFilter) ([]model.MenuItemView, error) {
	return []model.MenuItemView{}, nil
}
func (stubMenu) Get(ctx context.Context, id string) (*model.MenuItemView, error) {
	return nil, model.ErrNotFound
}
func (stubMenu) Create(ctx context.Context, req *model.MenuItemRequest) (*model.MenuItem, error) {
	return &model.MenuItem{}, nil
}
func (stubMenu) Update(ctx context.Context, id string, req *model.MenuItemRequest) (*model.MenuItem, error) {
	return &model.MenuItem{ID: id}, nil
}
func (stubMenu) Delete(ctx context.Context, id string) error { return nil }

type stubPromotions struct{}

func (stubPromotions) List(ctx context.Context) ([]model.Promotion, error) { return []model.Promotion{}, nil }
func (stubPromotions) Active(ctx context.Context) ([]model.Promotion, error) { return []model.Promotion{}, nil }
func (stubPromotions) Get(ctx context.Context, id string) (*model.Promotion, error) {
	return &model.Promotion{ID: id}, nil
}
func (stubPromotions) Create(ctx context.Context, req *model.PromotionRequest) (*model.Promotion, error) {
	return &model.Promotion{}, nil
}
func (stubPromotions) Update(ctx context.Context, id string, req *model.PromotionRequest) (*model.Promotion, error) {
	return &model.Promotion{ID: id}, nil
}
func (stubPromotions) Delete(ctx context.Context, id string) error { return nil }

type stubGallery struct{}

func (stubGallery) List(ctx context.Context, typ model.GalleryType) ([]model.GalleryItem, error) {
	return []model.GalleryItem{}, nil
}
func (stubGallery) Upload(ctx context.Context, upload model.GalleryUpload, body io.Reader) (*model.GalleryItem, error) {
	return &model.GalleryItem{}, nil
}
func (stubGallery) Update(ctx context.Context, id string, req *model.GalleryUpdateRequest) (*model.GalleryItem, error) {
	return &model.GalleryItem{ID: id}, nil
}
func (stubGallery) Delete(ctx context.Context, id string) error { return nil }

type stubSettings struct{}

func (stubSettings) Get(ctx context.Context) (*model.SiteSettings, error) {
	s := model.DefaultSiteSettings()
	return &s, nil
}
func (stubSettings) Save(ctx context.Context, settings *model.SiteSettings) (*model.SiteSettings, error) {
	return settings, nil
}

type stubOrders struct{}

func (stubOrders) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	return &model.OrderResponse{Items: []model.OrderItem{}}, nil
}
func (stubOrders) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	return nil, model.ErrNotFound
}
func (stubOrders) List(ctx context.Context, limit, offset int) ([]model.Order, error) {
	return []model.Order{}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *auth.Sessions, string) {
	t.Helper()

	logger := zerolog.Nop()
	sessions := auth.NewSessions("pw", "0123456789abcdef", time.Hour, false)

	mediaDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(mediaDir, "gallery"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mediaDir, "gallery", "a.jpg"), []byte("jpeg"), 0o644))

	h := Handlers{
		Menu:      handler.NewMenuHandler(stubMenu{}, logger),
		Category:  handler.NewCategoryHandler(stubCategories{}, logger),
		Promotion: handler.NewPromotionHandler(stubPromotions{}, logger),
		Gallery:   handler.NewGalleryHandler(stubGallery{}, 1<<20, logger),
		Settings:  handler.NewSettingsHandler(stubSettings{}, logger),
		Order:     handler.NewOrderHandler(stubOrders{}, nil, logger),
		Auth:      handler.NewAuthHandler(sessions, logger),
	}

	r := New(h, Options{
		CORSOrigin: "*",
		MediaDir:   mediaDir,
		Sessions:   sessions,
		Metrics:    metrics.New(),
	}, logger)
	return r, sessions, mediaDir
}

func TestRouter(t *testing.T) {
	r, sessions, _ := newTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		authenticated  bool
		expectedStatus int
	}{
		{name: "Health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "Menu", method: http.MethodGet, path: "/api/menu", expectedStatus: http.StatusOK},
		{name: "Menu item", method: http.MethodGet, path: "/api/menu/M1", expectedStatus: http.StatusNotFound},
		{name: "Categories", method: http.MethodGet, path: "/api/categories", expectedStatus: http.StatusOK},
		{name: "Gallery", method: http.MethodGet, path: "/api/gallery", expectedStatus: http.StatusOK},
		{name: "Active promotions", method: http.MethodGet, path: "/api/promotions/active", expectedStatus: http.StatusOK},
		{name: "Settings", method: http.MethodGet, path: "/api/settings", expectedStatus: http.StatusOK},
		{
			name:           "Place order",
			method:         http.MethodPost,
			path:           "/api/orders",
			body:           `{"customerName":"Ada","items":[{"menuItemId":"M1","quantity":1}]}`,
			expectedStatus: http.StatusCreated,
		},
		{name: "Order lookup", method: http.MethodGet, path: "/api/orders/" + uuid.NewString(), expectedStatus: http.StatusNotFound},
		{name: "Local media", method: http.MethodGet, path: "/media/gallery/a.jpg", expectedStatus: http.StatusOK},
		{name: "Preflight", method: http.MethodOptions, path: "/api/admin/menu", expectedStatus: http.StatusNoContent},
		{name: "Unknown route", method: http.MethodGet, path: "/api/unknown", expectedStatus: http.StatusNotFound},
		{name: "Admin without session", method: http.MethodGet, path: "/api/admin/orders", expectedStatus: http.StatusUnauthorized},
		{name: "Admin promotions without session", method: http.MethodGet, path: "/api/admin/promotions", expectedStatus: http.StatusUnauthorized},
		{name: "Admin with session", method: http.MethodGet, path: "/api/admin/orders", authenticated: true, expectedStatus: http.StatusOK},
		{name: "Admin delete with session", method: http.MethodDelete, path: "/api/admin/menu/M1", authenticated: true, expectedStatus: http.StatusNoContent},
		{name: "Login is public", method: http.MethodPost, path: "/api/admin/login", body: `{"password":"pw"}`, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.authenticated {
				req.AddCookie(sessions.Cookie(sessions.Issue(time.Now())))
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/menu", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `cafe_http_requests_total{method="GET",route="/api/menu",status="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestRouter_LocalMediaServesFileContent(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/gallery/a.jpg", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg", w.Body.String())
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "sandbox", w.Header().Get("Content-Security-Policy"))
}
