package admin

import (
	"errors"
	"net/http"
	"strconv"

	"beachride/internal/modules/upload"
	"beachride/internal/pkg/response"
	"beachride/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects a group already guarded by JWT auth + admin role.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// bookings moderation
	admin.GET("/bookings", h.ListBookings)
	admin.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
	admin.DELETE("/bookings/:id", h.DeleteBooking)

	// reviews moderation
	admin.GET("/reviews", h.ListReviews)
	admin.POST("/reviews/:id/approve", h.ApproveReview)
	admin.POST("/reviews/:id/reject", h.RejectReview)
	admin.DELETE("/reviews/:id", h.DeleteReview)

	// gallery
	admin.POST("/photos", h.UploadPhoto)
	admin.PUT("/photos/order", h.ReorderPhotos)
	admin.DELETE("/photos/:id", h.DeletePhoto)

	// statistics
	admin.GET("/stats", h.GetStats)
}

func (h *Handler) ListBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	f := repository.BookingFilters{
		Status:      c.Query("status"),
		VehicleType: c.Query("vehicle_type"),
		Date:        c.Query("date"),
		Search:      c.Query("search"),
		Limit:       limit,
		Offset:      offset,
	}
	list, err := h.service.ListBookings(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.OK(c, list)
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	b, err := h.service.UpdateBookingStatus(c.Request.Context(), id, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to collect stats")
		return
	}
	response.OK(c, stats)
}

func (h *Handler) ListReviews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	reviews, total, err := h.service.ListReviews(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"reviews": reviews, "total": total})
}

func (h *Handler) ApproveReview(c *gin.Context) {
	h.setReviewStatus(c, "approved")
}

func (h *Handler) RejectReview(c *gin.Context) {
	h.setReviewStatus(c, "rejected")
}

func (h *Handler) setReviewStatus(c *gin.Context, status string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review id")
		return
	}
	rv, err := h.service.SetReviewStatus(c.Request.Context(), id, status)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, rv)
}

func (h *Handler) DeleteReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review id")
		return
	}
	if err := h.service.DeleteReview(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *Handler) UploadPhoto(c *gin.Context) {
	var req CreatePhotoRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "File is required")
		return
	}
	photo, err := h.service.UploadPhoto(c.Request.Context(), req, fileHeader)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Created(c, photo)
}

func (h *Handler) ReorderPhotos(c *gin.Context) {
	var req ReorderPhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	photos, err := h.service.ReorderPhotos(c.Request.Context(), c.Query("vehicle_type"), req.PhotoIDs)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, photos)
}

func (h *Handler) DeletePhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid photo id")
		return
	}
	if err := h.service.DeletePhoto(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrBadTransition):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_TRANSITION", err.Error())
	default:
		h.renderUploadError(c, err)
	}
}

func (h *Handler) renderUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, upload.ErrEmptyFile), errors.Is(err, upload.ErrFileTooLarge), errors.Is(err, upload.ErrInvalidMimeType):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
