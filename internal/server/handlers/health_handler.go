package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Health reports that the server is up.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(healthTimeLayout),
	})
}
