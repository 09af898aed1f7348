package server

import (
	"net/http"

	orderdomain "github.com/etiquetou/etiquetou/internal/order/domain"
	"github.com/etiquetou/etiquetou/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListOrders(c *gin.Context) {
	var paging pagination.Pagination
	if err := c.ShouldBindQuery(&paging); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.ordersvc.List(c.Request.Context(), orderdomain.ListRequest{
		Status: c.Query("status"),
		Paging: paging,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req orderdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	order, err := s.ordersvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (s *Server) UpdateOrder(c *gin.Context) {
	var req orderdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = c.Param("id")

	order, err := s.ordersvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (s *Server) MarkOrdersPrinted(c *gin.Context) {
	var req orderdomain.MarkPrintedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.ordersvc.MarkPrinted(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) UserStats(c *gin.Context) {
	stats, err := s.ordersvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
