package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/advisorsite/internal/service"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondServiceError 将访问层返回的错误映射为 HTTP 状态码。
// 权限错误原样返回修复提示。
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, service.Message(err))
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, service.Message(err))
	case errors.Is(err, service.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, service.Message(err))
	default:
		c.Error(err)
		message := service.Message(err)
		if message == "" {
			message = fallback
		}
		respondError(c, http.StatusInternalServerError, message)
	}
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// pathID reads :id and writes a 400 when it is not a number.
func pathID(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func isNotFound(err error) bool {
	return errors.Is(err, service.ErrNotFound)
}
