package health

import (
	"crypto/subtle"
	"net/http"

	"beachride/internal/domain"
	"beachride/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const HealthKeyHeader = "X-Health-Key"

type Handler struct {
	service *Service
	key     string
}

func NewHandler(service *Service, key string) *Handler {
	return &Handler{service: service, key: key}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health-check", h.Check)
}

// Check runs the full monitor. Callers authenticate either with the
// shared header key or an admin session; a critical report answers 500 so
// uptime probes trip on it.
func (h *Handler) Check(c *gin.Context) {
	if !h.authorized(c) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Health key or admin access required")
		return
	}

	report := h.service.Run(c.Request.Context())
	if report.Status == StatusCritical {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "data": report})
		return
	}
	response.OK(c, report)
}

func (h *Handler) authorized(c *gin.Context) bool {
	if h.key != "" {
		got := c.GetHeader(HealthKeyHeader)
		if got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(h.key)) == 1 {
			return true
		}
	}
	role, _ := c.Get("role")
	return role == string(domain.RoleAdmin)
}
