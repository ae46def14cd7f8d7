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

func TestMenuHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	discounted := decimal.RequireFromString("3.40")
	views := []model.MenuItemView{
		{
			MenuItem:        model.MenuItem{ID: "M1", Name: "Latte", Price: decimal.RequireFromString("4.00")},
			CategoryName:    "Coffee",
			Promotion:       &model.PromotionBadge{ID: "P1", Title: "Morning", Type: model.PromotionPercentage},
			DiscountedPrice: &discounted,
		},
	}

	tests := []struct {
		name           string
		query          string
		expectedFilter model.MenuFilter
		mockReturn     []model.MenuItemView
		mockError      error
		expectedStatus int
	}{
		{
			name:           "No filter",
			query:          "",
			expectedFilter: model.MenuFilter{},
			mockReturn:     views,
			expectedStatus: http.StatusOK,
		},
		{
			name:  "All filters",
			query: "?category=coffee&q=lat&available=true&featured=1&sort=price_asc",
			expectedFilter: model.MenuFilter{
				Category:      "coffee",
				Search:        "lat",
				AvailableOnly: true,
				FeaturedOnly:  true,
				Sort:          model.MenuSortPriceAsc,
			},
			mockReturn:     views,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown sort",
			query:          "?sort=popularity",
			expectedFilter: model.MenuFilter{Sort: "popularity"},
			mockError:      model.ValidationError(`unknown sort "popularity"`),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Service error",
			query:          "",
			expectedFilter: model.MenuFilter{},
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMenuService)
			handler := NewMenuHandler(mockService, logger)

			mockService.On("List", mock.Anything, tt.expectedFilter).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/menu"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)

			if tt.expectedStatus == http.StatusOK {
				var raw []map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
				require.Len(t, raw, 1)
				assert.Equal(t, "M1", raw[0]["id"])
				assert.Equal(t, "3.4", raw[0]["discountedPrice"])
				assert.Equal(t, "Coffee", raw[0]["categoryName"])
			}
		})
	}
}

func TestMenuHandler_Get(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		id             string
		mockReturn     *model.MenuItemView
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			id:             "M1",
			mockReturn:     &model.MenuItemView{MenuItem: model.MenuItem{ID: "M1", Name: "Latte"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not found",
			id:             "M999",
			mockError:      model.ErrNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMenuService)
			handler := NewMenuHandler(mockService, logger)

			mockService.On("Get", mock.Anything, tt.id).Return(tt.mockReturn, tt.mockError)

			req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/menu/"+tt.id, nil), "id", tt.id)
			w := httptest.NewRecorder()

			handler.Get(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestMenuHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockMenuService)
		handler := NewMenuHandler(mockService, logger)

		mockService.On("Create", mock.Anything, mock.MatchedBy(func(req *model.MenuItemRequest) bool {
			return req.Name == "Mocha" && req.Price.Equal(decimal.RequireFromString("4.80"))
		})).Return(&model.MenuItem{ID: "M9", Name: "Mocha"}, nil)

		body := `{"name":"Mocha","price":"4.80","categoryId":"C1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/admin/menu", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		mockService := new(MockMenuService)
		handler := NewMenuHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/admin/menu", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestMenuHandler_UpdateAndDelete(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockMenuService)
	handler := NewMenuHandler(mockService, logger)

	mockService.On("Update", mock.Anything, "M1", mock.AnythingOfType("*model.MenuItemRequest")).
		Return(&model.MenuItem{ID: "M1"}, nil)
	mockService.On("Delete", mock.Anything, "M1").Return(nil)
	mockService.On("Delete", mock.Anything, "M404").Return(model.ErrNotFound)

	body := `{"name":"Latte","price":"4.20","categoryId":"C1"}`
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/admin/menu/M1", bytes.NewBufferString(body)), "id", "M1")
	w := httptest.NewRecorder()
	handler.Update(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = withURLParam(httptest.NewRequest(http.MethodDelete, "/api/admin/menu/M1", nil), "id", "M1")
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = withURLParam(httptest.NewRequest(http.MethodDelete, "/api/admin/menu/M404", nil), "id", "M404")
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	mockService.AssertExpectations(t)
}
