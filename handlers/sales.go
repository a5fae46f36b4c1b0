package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"bizlink/models"
	"bizlink/store"
	"bizlink/utils"
)

type SalesHandler struct {
	orders store.OrderStore
}

func NewSalesHandler(orders store.OrderStore) *SalesHandler {
	return &SalesHandler{orders: orders}
}

type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type OrderRequest struct {
	CustomerID string             `json:"customerId" binding:"required"`
	Total      float64            `json:"total"`
	Items      []OrderItemRequest `json:"items"`
}

func (h *SalesHandler) List(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		utils.InternalError(c, "failed to fetch orders")
		return
	}
	utils.Success(c, orders)
}

func (h *SalesHandler) Get(c *gin.Context) {
	order, err := h.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "order not found")
			return
		}
		utils.InternalError(c, "database error")
		return
	}
	utils.Success(c, order)
}

func (h *SalesHandler) Create(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orders.Create(c.Request.Context(), req.CustomerID, req.Total, items)
	if err != nil {
		utils.InternalError(c, "failed to create order")
		return
	}
	utils.Created(c, order)
}

func (h *SalesHandler) Update(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	order, err := h.orders.Update(c.Request.Context(), c.Param("id"), req.CustomerID, req.Total)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "order not found")
			return
		}
		utils.InternalError(c, "failed to update order")
		return
	}
	utils.Success(c, order)
}

func (h *SalesHandler) Delete(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "order not found")
			return
		}
		utils.InternalError(c, "failed to delete order")
		return
	}
	utils.Success(c, gin.H{"message": "order deleted"})
}
