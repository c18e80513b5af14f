package httpapi

import (
	"errors"
	"net/http"

	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib/runner"
	"github.com/gin-gonic/gin"
)

func statusCode(err error) int {
	switch {
	case errors.Is(err, lib.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lib.ErrInvalidCommand):
		return http.StatusBadRequest
	case errors.Is(err, lib.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, runner.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		// spawn and kill failures
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	code := statusCode(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, v1.ErrorResponse{Message: err.Error()})
}
