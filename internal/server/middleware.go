package server

import (
	"github.com/etiquetou/etiquetou/internal/usercontext"
	"github.com/gin-gonic/gin"
)

// WebAuthRequired authenticates the session cookie and installs the user ID
// into the request context for ownership-scoped queries downstream.
func (s *Server) WebAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.sessions.Clear(c)
			AbortWithError(c, err)
			return
		}

		ctx := usercontext.WithUserID(c.Request.Context(), session.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
