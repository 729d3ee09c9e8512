package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Johnpittz/ecom/config"
	"github.com/Johnpittz/ecom/models"
)

// proxyPreviewLen is how many leading characters of the proxy base URL the
// debug endpoint exposes. Enough to recognize the provider, not the key.
const proxyPreviewLen = 12

// Health returns a handler for GET /health.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DebugEnv returns a handler for GET /debug/env: a masked configuration
// echo for deploy diagnostics. No secrets in full.
func DebugEnv(proxyCfg config.ProxyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.DebugEnvResponse{
			UseProxy:         proxyCfg.Enabled(),
			ProxyBasePreview: mask(proxyCfg.Base, proxyPreviewLen),
			ProxyExtra:       proxyCfg.Extra,
		})
	}
}

func mask(s string, keep int) string {
	if len(s) > keep {
		return s[:keep] + "..."
	}
	return s
}
