package handlers

import (
	"net/http"

	"toursbackend/internal/domain"
	"toursbackend/internal/http/middleware"
	"toursbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP responses. Persistence
// causes are logged, never returned.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, "validation failed", domain.AsValidationErrors(err).Fields())
	case domain.IsAuthorization(err):
		RespondError(c, http.StatusUnauthorized, err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error(), nil)
	default:
		utils.LogError(middleware.GetRequestID(c), "http", c.Request.Method+" "+c.FullPath(), err)
		RespondError(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
