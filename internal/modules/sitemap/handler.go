package sitemap

import (
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

// RegisterRoutes mounts /sitemap.xml; the caller is expected to put a
// rate limiter in front since crawlers hammer this path.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sitemap.xml", h.Sitemap)
}

func (h *Handler) Sitemap(c *gin.Context) {
	body, err := h.service.Generate(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
