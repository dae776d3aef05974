package fleet

import (
	"errors"
	"net/http"

	"beachride/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/vehicles", h.ListVehicles)
	rg.GET("/vehicles/:slug", h.GetVehicle)
	rg.GET("/gallery/:vehicleType", h.GetGallery)
}

func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.service.ListVehicles(c.Request.Context(), c.Query("type"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"vehicles": vehicles})
}

func (h *Handler) GetVehicle(c *gin.Context) {
	v, err := h.service.GetVehicle(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"vehicle": v})
}

func (h *Handler) GetGallery(c *gin.Context) {
	photos, err := h.service.GetGallery(c.Request.Context(), c.Param("vehicleType"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"photos": photos})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong, please try again")
}
