package server

import (
	"errors"
	"net/http"

	authdomain "github.com/etiquetou/etiquetou/internal/auth/domain"
	integrationdomain "github.com/etiquetou/etiquetou/internal/integration/domain"
	labeldomain "github.com/etiquetou/etiquetou/internal/label/domain"
	orderdomain "github.com/etiquetou/etiquetou/internal/order/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
)

// ErrorHandlingMiddleware converts errors attached to the gin context into a
// JSON error envelope. Handlers never write error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Code:    err.Error(),
			Message: "validation error",
		}
	case isUnauthorizedError(err):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isEntitlementError(err):
		return http.StatusForbidden, errorPayload{
			Type:    "entitlement_denied",
			Code:    err.Error(),
			Message: "plan ceiling exceeded",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, authdomain.ErrUserExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Code:    "user_exists",
			Message: "conflict",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, authdomain.ErrInvalidEmail),
		errors.Is(err, authdomain.ErrInvalidPassword),
		errors.Is(err, authdomain.ErrInvalidName),
		errors.Is(err, orderdomain.ErrInvalidID),
		errors.Is(err, orderdomain.ErrInvalidPlatform),
		errors.Is(err, orderdomain.ErrInvalidPlatformOrder),
		errors.Is(err, orderdomain.ErrInvalidCustomerName),
		errors.Is(err, orderdomain.ErrInvalidAddress),
		errors.Is(err, orderdomain.ErrInvalidShippingMethod),
		errors.Is(err, orderdomain.ErrInvalidProducts),
		errors.Is(err, orderdomain.ErrInvalidStatus),
		errors.Is(err, orderdomain.ErrInvalidPageToken),
		errors.Is(err, orderdomain.ErrInvalidTransition),
		errors.Is(err, integrationdomain.ErrInvalidID),
		errors.Is(err, integrationdomain.ErrInvalidPlatform),
		errors.Is(err, integrationdomain.ErrInvalidCredentials),
		errors.Is(err, labeldomain.ErrInvalidID),
		errors.Is(err, labeldomain.ErrInvalidFormat):
		return true
	default:
		return false
	}
}

func isUnauthorizedError(err error) bool {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked),
		errors.Is(err, orderdomain.ErrInvalidUser),
		errors.Is(err, integrationdomain.ErrInvalidUser):
		return true
	default:
		return false
	}
}

func isEntitlementError(err error) bool {
	switch {
	case errors.Is(err, orderdomain.ErrBatchLimitExceeded),
		errors.Is(err, integrationdomain.ErrIntegrationLimitExceeded),
		errors.Is(err, labeldomain.ErrLabelQuotaExceeded):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, integrationdomain.ErrNotFound),
		errors.Is(err, labeldomain.ErrOrderNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
