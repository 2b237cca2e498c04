package handlers

import (
	"github.com/gin-gonic/gin"

	"restaurant-api/logger"
)

var log = logger.New("handlers")

// fail writes the uniform error envelope every endpoint uses.
func fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"success": false, "error": msg})
}
