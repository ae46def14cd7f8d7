package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cafe-site/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryHandler(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCategoryService)
	handler := NewCategoryHandler(mockService, logger)

	mockService.On("List", mock.Anything).Return([]model.Category{{ID: "C1", Name: "Coffee", Slug: "coffee"}}, nil)
	mockService.On("Create", mock.Anything, &model.CategoryRequest{Name: "Tea"}).
		Return(&model.Category{ID: "C3", Name: "Tea", Slug: "tea"}, nil)
	mockService.On("Update", mock.Anything, "C1", &model.CategoryRequest{Name: "Coffee", SortOrder: 2}).
		Return(&model.Category{ID: "C1", Name: "Coffee", Slug: "coffee", SortOrder: 2}, nil)
	mockService.On("Delete", mock.Anything, "C1").Return(model.ErrCategoryInUse)

	tests := []struct {
		name           string
		method         string
		id             string
		body           string
		call           func(w http.ResponseWriter, r *http.Request)
		expectedStatus int
	}{
		{name: "List", method: http.MethodGet, call: handler.List, expectedStatus: http.StatusOK},
		{name: "Create", method: http.MethodPost, body: `{"name":"Tea"}`, call: handler.Create, expectedStatus: http.StatusCreated},
		{name: "Update", method: http.MethodPut, id: "C1", body: `{"name":"Coffee","sortOrder":2}`, call: handler.Update, expectedStatus: http.StatusOK},
		{name: "Delete in use", method: http.MethodDelete, id: "C1", call: handler.Delete, expectedStatus: http.StatusConflict},
		{name: "Create invalid JSON", method: http.MethodPost, body: `[`, call: handler.Create, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/categories", bytes.NewBufferString(tt.body))
			if tt.id != "" {
				req = withURLParam(req, "id", tt.id)
			}
			w := httptest.NewRecorder()

			tt.call(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	mockService.AssertExpectations(t)
}

func TestPromotionHandler(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Active", func(t *testing.T) {
		mockService := new(MockPromotionService)
		handler := NewPromotionHandler(mockService, logger)

		mockService.On("Active", mock.Anything).Return([]model.Promotion{
			{ID: "P1", Type: model.PromotionPercentage, Value: decimal.NewNullDecimal(decimal.NewFromInt(10)), ApplicableItems: []string{}},
			{ID: "P2", Type: model.PromotionBOGO},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/promotions/active", nil)
		w := httptest.NewRecorder()

		handler.Active(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var raw []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		require.Len(t, raw, 2)
		assert.Equal(t, "10", raw[0]["value"])
		assert.Nil(t, raw[1]["value"])
	})

	t.Run("Create rejects invalid promotion", func(t *testing.T) {
		mockService := new(MockPromotionService)
		handler := NewPromotionHandler(mockService, logger)

		mockService.On("Create", mock.Anything, mock.AnythingOfType("*model.PromotionRequest")).
			Return(nil, model.InvalidPromotion("percentage value must be between 0 and 100"))

		body := `{"title":"Too good","type":"percentage","value":"120","startDate":"2025-06-01","endDate":"2025-06-30"}`
		req := httptest.NewRequest(http.MethodPost, "/api/admin/promotions", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, model.ErrCodeInvalidPromotion, resp.Error)
	})

	t.Run("CRUD", func(t *testing.T) {
		mockService := new(MockPromotionService)
		handler := NewPromotionHandler(mockService, logger)

		mockService.On("List", mock.Anything).Return([]model.Promotion{}, nil)
		mockService.On("Get", mock.Anything, "P404").Return(nil, model.ErrNotFound)
		mockService.On("Update", mock.Anything, "P1", mock.AnythingOfType("*model.PromotionRequest")).
			Return(&model.Promotion{ID: "P1"}, nil)
		mockService.On("Delete", mock.Anything, "P1").Return(nil)

		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest(http.MethodGet, "/api/admin/promotions", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		handler.Get(w, withURLParam(httptest.NewRequest(http.MethodGet, "/api/admin/promotions/P404", nil), "id", "P404"))
		assert.Equal(t, http.StatusNotFound, w.Code)

		body := `{"title":"Happy hour","type":"fixed","value":"1","startDate":"2025-06-01","endDate":"2025-06-30"}`
		w = httptest.NewRecorder()
		handler.Update(w, withURLParam(httptest.NewRequest(http.MethodPut, "/api/admin/promotions/P1", bytes.NewBufferString(body)), "id", "P1"))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		handler.Delete(w, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/admin/promotions/P1", nil), "id", "P1"))
		assert.Equal(t, http.StatusNoContent, w.Code)

		mockService.AssertExpectations(t)
	})
}

func TestSettingsHandler(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		method         string
		body           string
		setup          func(m *MockSettingsService)
		expectedStatus int
	}{
		{
			name:   "Get",
			method: http.MethodGet,
			setup: func(m *MockSettingsService) {
				defaults := model.DefaultSiteSettings()
				m.On("Get", mock.Anything).Return(&defaults, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Get fails",
			method: http.MethodGet,
			setup: func(m *MockSettingsService) {
				m.On("Get", mock.Anything).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:   "Save",
			method: http.MethodPut,
			body:   `{"cafeName":"Bean There","openingHours":[]}`,
			setup: func(m *MockSettingsService) {
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.SiteSettings")).
					Return(&model.SiteSettings{CafeName: "Bean There"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Save invalid",
			method: http.MethodPut,
			body:   `{"cafeName":""}`,
			setup: func(m *MockSettingsService) {
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.SiteSettings")).
					Return(nil, model.ValidationError("cafeName must satisfy required"))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockSettingsService)
			handler := NewSettingsHandler(mockService, logger)
			tt.setup(mockService)

			req := httptest.NewRequest(tt.method, "/api/settings", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			if tt.method == http.MethodGet {
				handler.Get(w, req)
			} else {
				handler.Save(w, req)
			}

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
