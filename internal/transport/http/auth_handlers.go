package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authDto "github.com/clipshare/clipshare/internal/auth/dto"
	customErrors "github.com/clipshare/clipshare/internal/auth/errors"
	"github.com/clipshare/clipshare/internal/auth/model"
	authService "github.com/clipshare/clipshare/internal/auth/service"
	"github.com/clipshare/clipshare/internal/transport/http/middleware"
)

type AuthHandler struct {
	svc authService.AuthService
}

func NewAuthHandler(svc authService.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var body authDto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		switch {
		case customErrors.IsAlreadyExists(err):
			Error(c, http.StatusBadRequest, "username already taken")
		case customErrors.IsInvalidArgument(err):
			Error(c, http.StatusBadRequest, err.Error())
		default:
			_ = c.Error(err)
			Error(c, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	Success(c, http.StatusCreated, user, "user registered")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body authDto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	meta := model.ClientMeta{
		IP:         c.ClientIP(),
		DeviceInfo: c.GetHeader("User-Agent"),
	}

	res, err := h.svc.Login(c.Request.Context(), body, meta)
	if err != nil {
		switch {
		case customErrors.IsInvalidCredentials(err):
			Error(c, http.StatusUnauthorized, "invalid username or password")
		case customErrors.IsUserDisabled(err):
			Error(c, http.StatusForbidden, "user is disabled")
		case customErrors.IsInvalidArgument(err):
			Error(c, http.StatusBadRequest, err.Error())
		default:
			_ = c.Error(err)
			Error(c, http.StatusInternalServerError, "login failed")
		}
		return
	}

	Success(c, http.StatusOK, res, "login successful")
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	token, ok := middleware.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		Error(c, http.StatusUnauthorized, "missing or invalid authorization header")
		return
	}

	res, err := h.svc.Refresh(c.Request.Context(), token)
	if err != nil {
		if customErrors.IsInvalidToken(err) {
			Error(c, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "token refresh failed")
		return
	}

	Success(c, http.StatusOK, res, "token refreshed")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		Error(c, http.StatusUnauthorized, "missing or invalid authorization header")
		return
	}

	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "logout failed")
		return
	}

	Success(c, http.StatusOK, nil, "logged out")
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	user, err := h.svc.Me(c.Request.Context(), userID)
	if err != nil {
		if customErrors.IsNotFound(err) {
			Error(c, http.StatusNotFound, "user not found")
			return
		}
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "failed to load user")
		return
	}

	Success(c, http.StatusOK, user, "ok")
}
