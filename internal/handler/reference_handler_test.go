package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/domain"
	"invoicegen/internal/handler"
	"invoicegen/mocks"
)

func TestReferenceHandler_States_ArrayInRegistryOrder(t *testing.T) {
	mockSvc := new(mocks.MockReferenceService)
	h := handler.NewReferenceHandler(mockSvc)

	mockSvc.On("States", mock.Anything).Return([]domain.StateEntry{
		{Name: "Jammu and Kashmir", Code: "01"},
		{Name: "Himachal Pradesh", Code: "02"},
		{Name: "Punjab", Code: "03"},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/states", http.NoBody)

	h.States(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	entries, ok := resp.Data.([]interface{})
	require.True(t, ok, "states serialize as an ordered array")
	require.Len(t, entries, 3)

	first, ok := entries[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Jammu and Kashmir", first["name"])
	assert.Equal(t, "01", first["code"])
}

func TestReferenceHandler_Company(t *testing.T) {
	mockSvc := new(mocks.MockReferenceService)
	h := handler.NewReferenceHandler(mockSvc)

	mockSvc.On("Company", mock.Anything).Return(&domain.CompanyProfile{
		Name:  "Globel Interiors India",
		GSTIN: "06AABCG1234F1Z5",
		State: "Haryana", StateCode: "06",
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/company", http.NoBody)

	h.Company(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Globel Interiors India", data["name"])
	assert.Equal(t, "06", data["state_code"])
}
