package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/speechkit/locale"
)

func (h *Handler) listLocales(c *gin.Context) {
	locales := locale.Fallback()
	if h.locales != nil {
		locales = h.locales.List(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "locales": locales, "count": len(locales)})
}
