package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	sessiondomain "github.com/strongslime/atelier/internal/session/domain"
)

func (s *Server) CreateSession(c *gin.Context) {
	resp, err := s.sessions.Create(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSession(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.sessions.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DispatchAction(c *gin.Context) {
	var action sessiondomain.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if action.Kind == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.sessions.Dispatch(c.Request.Context(), id, action)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSession(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.sessions.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) GetSummary(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	text, err := s.sessions.Summary(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.String(http.StatusOK, text)
}

func (s *Server) ExportOrder(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	reader, err := s.sessions.ExportPDF(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="commission-summary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
