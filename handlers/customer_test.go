package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bizlink/mocks"
	"bizlink/models"
	"bizlink/store"
)

func setupCustomersRouter(h *CustomerHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/customers", h.List)
	r.GET("/api/customers/:id", h.Get)
	r.POST("/api/customers", h.Create)
	r.PUT("/api/customers/:id", h.Update)
	r.DELETE("/api/customers/:id", h.Delete)
	return r
}

func TestCreateCustomer(t *testing.T) {
	customers := new(mocks.MockCustomerStore)
	customers.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Customer) bool {
		return c.Name == "Acme Ltd" && c.Email == "sales@acme.test"
	})).Return(&models.Customer{ID: "cust-1", Name: "Acme Ltd", Email: "sales@acme.test"}, nil)

	router := setupCustomersRouter(NewCustomerHandler(customers))
	rec := perform(router, http.MethodPost, "/api/customers",
		`{"name":"Acme Ltd","email":"sales@acme.test","phone":"555-0100","address":"1 Main St"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "cust-1", got.ID)
}

func TestGetCustomer_UnknownIDReturnsNotFound(t *testing.T) {
	customers := new(mocks.MockCustomerStore)
	customers.On("GetByID", mock.Anything, "missing").Return(nil, store.ErrNotFound)

	router := setupCustomersRouter(NewCustomerHandler(customers))
	rec := perform(router, http.MethodGet, "/api/customers/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCustomers(t *testing.T) {
	customers := new(mocks.MockCustomerStore)
	customers.On("List", mock.Anything).Return([]models.Customer{
		{ID: "cust-1", Name: "Acme Ltd"},
		{ID: "cust-2", Name: "Globex"},
	}, nil)

	router := setupCustomersRouter(NewCustomerHandler(customers))
	rec := perform(router, http.MethodGet, "/api/customers", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestDeleteCustomer_UnknownIDReturnsNotFound(t *testing.T) {
	customers := new(mocks.MockCustomerStore)
	customers.On("Delete", mock.Anything, "missing").Return(store.ErrNotFound)

	router := setupCustomersRouter(NewCustomerHandler(customers))
	rec := perform(router, http.MethodDelete, "/api/customers/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
