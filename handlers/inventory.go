package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"bizlink/models"
	"bizlink/store"
	"bizlink/utils"
)

type InventoryHandler struct {
	products store.ProductStore
}

func NewInventoryHandler(products store.ProductStore) *InventoryHandler {
	return &InventoryHandler{products: products}
}

type ProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	SKU      string  `json:"sku" binding:"required"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (h *InventoryHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		utils.InternalError(c, "failed to fetch products")
		return
	}
	utils.Success(c, products)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "product not found")
			return
		}
		utils.InternalError(c, "database error")
		return
	}
	utils.Success(c, product)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.Create(c.Request.Context(), &models.Product{
		Name:     req.Name,
		SKU:      req.SKU,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		utils.InternalError(c, "failed to create product")
		return
	}
	utils.Created(c, product)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.Update(c.Request.Context(), &models.Product{
		ID:       c.Param("id"),
		Name:     req.Name,
		SKU:      req.SKU,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "product not found")
			return
		}
		utils.InternalError(c, "failed to update product")
		return
	}
	utils.Success(c, product)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "product not found")
			return
		}
		utils.InternalError(c, "failed to delete product")
		return
	}
	utils.Success(c, gin.H{"message": "product deleted"})
}
