package auth

import (
	"errors"
	"net/http"
	"strings"

	"beachride/internal/pkg/jwt"
	"beachride/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type tokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

type Handler struct {
	service *Service
	tokens  tokenValidator
}

func NewHandler(service *Service, tokens tokenValidator) *Handler {
	return &Handler{service: service, tokens: tokens}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
	rg.POST("/auth/mfa/challenge", h.MFAChallenge)
	rg.POST("/auth/refresh", h.Refresh)
	rg.POST("/auth/logout", h.Logout)
	rg.POST("/auth/password-reset/request", h.RequestPasswordReset)
	rg.POST("/auth/password-reset/confirm", h.ConfirmPasswordReset)
}

// RegisterProtectedRoutes expects a group guarded by JWT auth.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
	rg.POST("/auth/mfa/enroll", h.EnrollMFA)
	rg.POST("/auth/mfa/verify", h.VerifyMFA)
	rg.POST("/auth/mfa/unenroll", h.UnenrollMFA)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Created(c, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, res)
}

// MFAChallenge completes a login that was answered with mfa_required. The
// pending token goes in the Authorization header, the TOTP code in the body.
func (h *Handler) MFAChallenge(c *gin.Context) {
	claims, ok := h.pendingClaims(c)
	if !ok {
		return
	}
	var req MFAChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	res, err := h.service.CompleteMFAChallenge(c.Request.Context(), claims.UserID, req.Code)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) pendingClaims(c *gin.Context) (*jwt.Claims, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Pending token required")
		return nil, false
	}
	claims, err := h.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil || claims.Scope != jwt.ScopeMFAPending {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid pending token")
		return nil, false
	}
	return claims, true
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, pair)
}

func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.service.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"logged_out": true})
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")
	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, user)
}

func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req ResetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.service.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process request")
		return
	}
	// Same answer whether or not the email exists.
	response.OK(c, gin.H{"sent": true})
}

func (h *Handler) ConfirmPasswordReset(c *gin.Context) {
	var req ResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.service.ConfirmPasswordReset(c.Request.Context(), req); err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"reset": true})
}

func (h *Handler) EnrollMFA(c *gin.Context) {
	res, err := h.service.EnrollMFA(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) VerifyMFA(c *gin.Context) {
	var req MFAVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.service.VerifyMFA(c.Request.Context(), c.GetInt64("user_id"), req.Code); err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"mfa_enabled": true})
}

func (h *Handler) UnenrollMFA(c *gin.Context) {
	var req MFAVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := h.service.UnenrollMFA(c.Request.Context(), c.GetInt64("user_id"), req.Code); err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"mfa_enabled": false})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrEmailTaken):
		response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
	case errors.Is(err, ErrInvalidCode):
		response.Error(c, http.StatusUnauthorized, "INVALID_CODE", "Invalid or expired code")
	case errors.Is(err, ErrMFAAlreadyEnabled):
		response.Error(c, http.StatusConflict, "MFA_ALREADY_ENABLED", "MFA is already enabled")
	case errors.Is(err, ErrMFANotEnrolled):
		response.Error(c, http.StatusBadRequest, "MFA_NOT_ENROLLED", "MFA is not enrolled")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
