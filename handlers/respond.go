package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmsoftware/billing_backend/config"
	"github.com/mmsoftware/billing_backend/utils"
)

// respondError maps the error taxonomy onto HTTP statuses:
// not-found 404, state conflicts 409, bad input and shortfalls 400,
// everything else 500 with the detail kept out of the response body.
func respondError(c *gin.Context, module string, funcName string, err error) {
	switch utils.KindOf(err) {
	case utils.ErrKindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case utils.ErrKindInvalidState:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case utils.ErrKindInsufficientStock, utils.ErrKindInvalidArgument:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger := config.GetLogger()
		config.LogError(logger, module, funcName, "unhandled error", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func pathId(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func queryString(c *gin.Context, name string) *string {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	return &value
}

func queryInt(c *gin.Context, name string, fallback int) int {
	value := c.Query(name)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
