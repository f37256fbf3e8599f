package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
	"invoicegen/internal/handler"
	"invoicegen/internal/service"
	"invoicegen/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCatalogHandler() (*handler.CatalogHandler, *mocks.MockCatalogService) {
	mockSvc := new(mocks.MockCatalogService)
	h := handler.NewCatalogHandler(mockSvc)
	return h, mockSvc
}

func TestCatalogHandler_List_Success(t *testing.T) {
	h, mockSvc := newCatalogHandler()

	products := []domain.Product{
		{ID: 1, Name: "Office Table", HSNCode: "44071020"},
		{ID: 2, Name: "Revolving Chair", HSNCode: "94013000"},
	}
	mockSvc.On("List", mock.Anything).Return(products, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/products", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	data, ok := resp.Data.([]interface{})
	assert.True(t, ok)
	assert.Len(t, data, 2)
	mockSvc.AssertExpectations(t)
}

func TestCatalogHandler_Create_Success(t *testing.T) {
	h, mockSvc := newCatalogHandler()

	expected := &domain.Product{ID: 3, Name: "Bookshelf", HSNCode: "94036000"}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(input service.CreateProductInput) bool {
		return input.Name == "Bookshelf" && input.HSNCode == "94036000"
	})).Return(expected, nil)

	body, _ := json.Marshal(map[string]string{
		"name":     "Bookshelf",
		"hsn_code": "94036000",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCatalogHandler_Create_MissingHSN(t *testing.T) {
	h, mockSvc := newCatalogHandler()

	body, _ := json.Marshal(map[string]string{
		"name": "Bookshelf",
		// missing hsn_code
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestCatalogHandler_Create_Duplicate(t *testing.T) {
	h, mockSvc := newCatalogHandler()

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateProductInput")).
		Return(nil, domain.ErrDuplicateProduct)

	body, _ := json.Marshal(map[string]string{
		"name":     "Office Table",
		"hsn_code": "44071020",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "DUPLICATE_PRODUCT", resp.Error.Code)
}

