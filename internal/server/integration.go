package server

import (
	"net/http"

	integrationdomain "github.com/etiquetou/etiquetou/internal/integration/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListIntegrations(c *gin.Context) {
	integrations, err := s.integrationsvc.ListActive(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"integrations": integrations})
}

func (s *Server) CreateIntegration(c *gin.Context) {
	var req integrationdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	integration, err := s.integrationsvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, integration)
}

func (s *Server) DeleteIntegration(c *gin.Context) {
	if err := s.integrationsvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
