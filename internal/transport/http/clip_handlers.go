package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	customErrors "github.com/clipshare/clipshare/internal/auth/errors"
	clipDto "github.com/clipshare/clipshare/internal/clip/dto"
	clipService "github.com/clipshare/clipshare/internal/clip/service"
	"github.com/clipshare/clipshare/internal/transport/http/middleware"
)

type ClipHandler struct {
	svc clipService.ClipService
}

func NewClipHandler(svc clipService.ClipService) *ClipHandler {
	return &ClipHandler{svc: svc}
}

func (h *ClipHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var body clipDto.CreateClipDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	clip, err := h.svc.Create(c.Request.Context(), userID, body)
	if err != nil {
		if customErrors.IsInvalidArgument(err) {
			Error(c, http.StatusBadRequest, err.Error())
			return
		}
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "failed to create clip")
		return
	}

	Success(c, http.StatusCreated, clip, "clip created")
}

func (h *ClipHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid pagination parameters")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid pagination parameters")
		return
	}

	clips, total, err := h.svc.List(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		if customErrors.IsInvalidArgument(err) {
			Error(c, http.StatusBadRequest, err.Error())
			return
		}
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "failed to list clips")
		return
	}

	Success(c, http.StatusOK, gin.H{
		"clips":     clips,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	}, "ok")
}

func (h *ClipHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid clip id")
		return
	}

	clip, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if customErrors.IsNotFound(err) {
			Error(c, http.StatusNotFound, "clip not found")
			return
		}
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "failed to load clip")
		return
	}

	Success(c, http.StatusOK, clip, "ok")
}

func (h *ClipHandler) GetByShortURL(c *gin.Context) {
	clip, err := h.svc.GetByShortURL(c.Request.Context(), c.Param("short_url"))
	if err != nil {
		if customErrors.IsNotFound(err) {
			Error(c, http.StatusNotFound, "clip not found or expired")
			return
		}
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "failed to load clip")
		return
	}

	Success(c, http.StatusOK, clip, "ok")
}

func (h *ClipHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid clip id")
		return
	}

	var body clipDto.UpdateClipDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	clip, err := h.svc.Update(c.Request.Context(), id, userID, body)
	if err != nil {
		switch {
		case customErrors.IsNotFound(err):
			Error(c, http.StatusNotFound, "clip not found or not yours")
		case customErrors.IsInvalidArgument(err):
			Error(c, http.StatusBadRequest, err.Error())
		default:
			_ = c.Error(err)
			Error(c, http.StatusInternalServerError, "failed to update clip")
		}
		return
	}

	Success(c, http.StatusOK, clip, "clip updated")
}

func (h *ClipHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid clip id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, userID); err != nil {
		if customErrors.IsNotFound(err) {
			Error(c, http.StatusNotFound, "clip not found or not yours")
			return
		}
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "failed to delete clip")
		return
	}

	Success(c, http.StatusOK, nil, "clip deleted")
}
