package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandlers backs the role-gated page zones. Rendering belongs to the
// frontend; these endpoints only acknowledge that the access policy let the
// request through, plus the claims it resolved.
type PageHandlers struct{}

// NewPageHandlers creates new page handlers
func NewPageHandlers() *PageHandlers {
	return &PageHandlers{}
}

// Page returns a handler that identifies the page it serves.
func (h *PageHandlers) Page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{"page": name}
		if claims, exists := c.Get("claims"); exists {
			resp["claims"] = claims
		}
		c.JSON(http.StatusOK, resp)
	}
}
