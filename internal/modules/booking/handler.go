package booking

import (
	"errors"
	"net/http"
	"strconv"

	"beachride/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the endpoints anyone can call; booking
// submission runs behind OptionalJWTAuth so a signed-in customer's id is
// attached when present.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.GetAvailability)
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/:reference", h.GetByReference)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/me/bookings", h.GetMyBookings)
	rg.POST("/me/bookings/:id/cancel", h.CancelMyBooking)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Query("vehicle_id"), 10, 64)
	if err != nil || vehicleID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "vehicle_id is required")
		return
	}

	res, err := h.service.GetAvailability(c.Request.Context(), vehicleID, c.Query("date"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	var userID *int64
	if id := c.GetInt64("user_id"); id > 0 {
		userID = &id
	}

	b, waLink, err := h.service.CreateBooking(c.Request.Context(), req, userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Created(c, gin.H{
		"booking": b,
		"next": BookingCreatedResponse{
			Reference:           b.Reference,
			Status:              string(b.Status),
			TotalPrice:          b.TotalPrice,
			TotalPriceFormatted: b.TotalPriceFormatted,
			WhatsAppLink:        waLink,
		},
	})
}

func (h *Handler) GetByReference(c *gin.Context) {
	b, err := h.service.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"booking": b})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	bookings, err := h.service.GetUserBookings(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"bookings": bookings})
}

func (h *Handler) CancelMyBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}

	b, err := h.service.CancelOwn(c.Request.Context(), c.GetInt64("user_id"), bookingID, req.Reason)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"booking": b})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", vErr.Message)
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "The selected time slot is no longer available")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot modify this booking")
	case errors.Is(err, ErrBadTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Booking is not in a cancellable state")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong, please try again")
	}
}
