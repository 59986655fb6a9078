package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sumitroy01/Donate-v2/internal/pkg/response"
)

func Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status":    "ok",
		"service":   "donate-backend",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
