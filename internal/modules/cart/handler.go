package cart

import (
	"errors"
	"net/http"
	"strconv"

	"beachride/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CartTokenHeader carries the client's cart identity. The server mints a
// token on the first write and the client echoes it back.
const CartTokenHeader = "X-Cart-Token"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cart", h.GetCart)
	rg.POST("/cart/items", h.AddItem)
	rg.PATCH("/cart/items/:vehicleID", h.UpdateItem)
	rg.DELETE("/cart/items/:vehicleID", h.RemoveItem)
	rg.POST("/cart/checkout", h.Checkout)
}

func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.service.Get(c.Request.Context(), c.GetHeader(CartTokenHeader))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"cart": cart, "total": cart.Total()})
}

func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), c.GetHeader(CartTokenHeader), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Header(CartTokenHeader, cart.Token)
	response.OK(c, gin.H{"cart": cart, "total": cart.Total()})
}

func (h *Handler) UpdateItem(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Param("vehicleID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vehicle id")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cart, err := h.service.UpdateItem(c.Request.Context(), c.GetHeader(CartTokenHeader), vehicleID, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"cart": cart, "total": cart.Total()})
}

func (h *Handler) RemoveItem(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Param("vehicleID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vehicle id")
		return
	}

	cart, err := h.service.RemoveItem(c.Request.Context(), c.GetHeader(CartTokenHeader), vehicleID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"cart": cart, "total": cart.Total()})
}

func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name and phone are required")
		return
	}

	res, err := h.service.Checkout(c.Request.Context(), c.GetHeader(CartTokenHeader), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Created(c, res)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid cart request")
	case errors.Is(err, ErrItemNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Cart item not found")
	case errors.Is(err, ErrEmptyCart):
		response.Error(c, http.StatusBadRequest, "EMPTY_CART", "Cart is empty")
	case errors.Is(err, ErrSlotMissing):
		response.Error(c, http.StatusBadRequest, "SLOT_MISSING", "Pick a date and time for every cart item before checkout")
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "A selected time slot is no longer available")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong, please try again")
	}
}
