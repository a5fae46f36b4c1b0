package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"bizlink/models"
	"bizlink/store"
	"bizlink/utils"
)

type CustomerHandler struct {
	customers store.CustomerStore
}

func NewCustomerHandler(customers store.CustomerStore) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		utils.InternalError(c, "failed to fetch customers")
		return
	}
	utils.Success(c, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customers.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "customer not found")
			return
		}
		utils.InternalError(c, "database error")
		return
	}
	utils.Success(c, customer)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), &models.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		utils.InternalError(c, "failed to create customer")
		return
	}
	utils.Created(c, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), &models.Customer{
		ID:      c.Param("id"),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "customer not found")
			return
		}
		utils.InternalError(c, "failed to update customer")
		return
	}
	utils.Success(c, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "customer not found")
			return
		}
		utils.InternalError(c, "failed to delete customer")
		return
	}
	utils.Success(c, gin.H{"message": "customer deleted"})
}
