package server

import (
	"net/http"

	labeldomain "github.com/etiquetou/etiquetou/internal/label/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateLabel(c *gin.Context) {
	var req labeldomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	label, err := s.labelsvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, label)
}

func (s *Server) ListOrderLabels(c *gin.Context) {
	labels, err := s.labelsvc.ListByOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"labels": labels})
}
