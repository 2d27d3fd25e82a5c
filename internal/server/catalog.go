package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetCatalog returns the active catalog: commission types, currencies,
// art styles, discount policy, labels, terms of service, and the
// pass-through theme document for the renderer.
func (s *Server) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.catalog.Get()})
}
