package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"go-restaurant-pos/internal/config"
	"go-restaurant-pos/internal/export"
	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/service"
	"go-restaurant-pos/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	service *service.OrderService
	shop    config.ShopConfig
}

func NewOrderHandler(service *service.OrderService, shop config.ShopConfig) *OrderHandler {
	return &OrderHandler{service: service, shop: shop}
}

// CheckoutRequest defines what the cart sends us once the payment is confirmed.
// Lines with a menuItemId are priced from the menu; name and price are then ignored.
type CheckoutRequest struct {
	Items []struct {
		MenuItemID uint            `json:"menuItemId"`
		Name       string          `json:"name" binding:"required_without=MenuItemID"`
		Quantity   int             `json:"quantity" binding:"required,min=1"`
		Price      decimal.Decimal `json:"price"`
	} `json:"items" binding:"required,min=1,dive"`
	Status        string `json:"status"`
	PaymentMethod string `json:"paymentMethod"`
}

// --- POST: /api/orders ---
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	lines := make([]service.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.CartLine{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.Price,
		})
	}

	order, err := h.service.Checkout(c.Request.Context(), lines, req.Status, req.PaymentMethod)
	if err != nil {
		writeError(c, err, "Failed to record order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// --- POST: /api/orders/import ---
// Accepts the "orders" array exported from the browser app.
func (h *OrderHandler) Import(c *gin.Context) {
	var orders []models.Order
	if err := c.ShouldBindJSON(&orders); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be a JSON array of orders"})
		return
	}

	imported, err := h.service.Import(c.Request.Context(), orders)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrInvalidOrder) || errors.Is(err, store.ErrDuplicate) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error(), "imported": imported})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

// --- GET: /api/orders?date=YYYY-MM-DD ---
func (h *OrderHandler) GetOrderHistory(c *gin.Context) {
	history, err := h.service.History(c.Request.Context(), c.Query("date"))
	if err != nil {
		writeError(c, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, history)
}

// --- GET: /api/orders/:id ---
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.service.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// --- GET: /api/orders/:id/bill ---
func (h *OrderHandler) DownloadBill(c *gin.Context) {
	order, err := h.service.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to fetch order")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteBillText(&buf, order, h.shop); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render bill"})
		return
	}
	attach(c, export.BillFilename(order), "text/plain; charset=utf-8", buf.Bytes())
}

// writeError maps service errors onto {"error": ...} responses.
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, models.ErrInvalidOrder), errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
