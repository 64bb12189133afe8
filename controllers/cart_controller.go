package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopping-cart/models"
	"shopping-cart/repositories"
	"shopping-cart/services"
	"shopping-cart/utils"
)

type CartController struct {
	cart  *services.CartService
	cache repositories.CartCache
	log   *utils.Logger
}

func NewCartController(cart *services.CartService, cache repositories.CartCache, log *utils.Logger) *CartController {
	if cache == nil {
		cache = repositories.NoopCartCache{}
	}
	if log == nil {
		log = utils.NewNopLogger()
	}
	return &CartController{cart: cart, cache: cache, log: log}
}

// @Summary Get cart
// @Description List every item in the cart with the running total
// @Tags Cart
// @Produce json
// @Success 200 {object} models.CartResponse
// @Router /api/cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := ctrl.cache.Get(ctx, ctrl.cart.Revision()); err == nil {
		c.JSON(http.StatusOK, models.CartResponse{Success: true, Data: *cached})
		return
	} else if !errors.Is(err, repositories.ErrCacheMiss) {
		ctrl.log.Warn("cart cache read failed", "error", err)
	}

	summary, revision := ctrl.cart.SummaryWithRevision()
	if err := ctrl.cache.Set(ctx, revision, summary); err != nil {
		ctrl.log.Warn("cart cache write failed", "error", err)
	}

	c.JSON(http.StatusOK, models.CartResponse{Success: true, Data: summary})
}

// @Summary Add product to cart
// @Description Add a product. Adding a productId already in the cart increases its quantity.
// @Tags Cart
// @Accept json
// @Produce json
// @Param product body models.AddItemRequest true "Product to add"
// @Success 201 {object} models.LineItemResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/cart [post]
func (ctrl *CartController) AddProduct(c *gin.Context) {
	var req models.AddItemRequest
	if err := bindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	item, err := ctrl.cart.Add(req.LineItem())
	if err != nil {
		category := "Failed to add product"
		if services.IsMissingField(err) {
			category = "Missing required fields"
		}
		ctrl.respondError(c, err, category)
		return
	}

	ctrl.invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, models.LineItemResponse{
		Success: true,
		Message: "Product added to cart successfully",
		Data:    item,
	})
}

// @Summary Clear cart
// @Description Remove every item from the cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/cart/clear [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	ctrl.cart.Clear()
	ctrl.invalidate(c.Request.Context())
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart cleared successfully",
	})
}

// @Summary Get cart item
// @Description Get a single product from the cart
// @Tags Cart
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} models.LineItemResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cart/{productId} [get]
func (ctrl *CartController) GetProduct(c *gin.Context) {
	item, ok := ctrl.cart.Find(c.Param("productId"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   "Product not found",
			Message: "The product was not found in the cart",
		})
		return
	}

	c.JSON(http.StatusOK, models.LineItemResponse{Success: true, Data: item})
}

// @Summary Update quantity
// @Description Replace the quantity of a product already in the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param body body models.UpdateQuantityRequest true "New quantity"
// @Success 200 {object} models.LineItemResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cart/{productId} [put]
func (ctrl *CartController) UpdateProductQuantity(c *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := bindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	item, err := ctrl.cart.UpdateQuantity(c.Param("productId"), req.Quantity)
	if err != nil {
		category := "Failed to update quantity"
		if services.IsMissingField(err) {
			category = "Missing required field"
		}
		ctrl.respondError(c, err, category)
		return
	}

	ctrl.invalidate(c.Request.Context())
	c.JSON(http.StatusOK, models.LineItemResponse{
		Success: true,
		Message: "Quantity updated successfully",
		Data:    item,
	})
}

// @Summary Remove product
// @Description Remove a product from the cart
// @Tags Cart
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cart/{productId} [delete]
func (ctrl *CartController) RemoveProduct(c *gin.Context) {
	if err := ctrl.cart.Remove(c.Param("productId")); err != nil {
		ctrl.respondError(c, err, "Failed to remove product")
		return
	}

	ctrl.invalidate(c.Request.Context())
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product removed from cart successfully",
	})
}

func (ctrl *CartController) respondError(c *gin.Context, err error, category string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	default:
		category = "Internal server error"
		_ = c.Error(err)
	}

	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error:   category,
		Message: err.Error(),
	})
}

func (ctrl *CartController) invalidate(ctx context.Context) {
	if err := ctrl.cache.Invalidate(ctx); err != nil {
		ctrl.log.Warn("cart cache invalidation failed", "error", err)
	}
}

// bindJSON treats an empty body like "{}" so absent fields surface as
// validation errors rather than a decode failure.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
