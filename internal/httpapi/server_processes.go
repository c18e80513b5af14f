package httpapi

import (
	"net/http"

	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"github.com/SanjoDeundiak/process-supervisor/internal/auth"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
	"github.com/gin-gonic/gin"
)

// GET /api/v1/processes
func (s *Server) listProcesses(c *gin.Context) {
	ctx := c.Request.Context()

	response := []v1.Process{}
	for _, summary := range s.runner.List() {
		if auth.Authorize(ctx, summary.Owner) != nil {
			continue
		}
		response = append(response, *v1.FromSummary(&summary))
	}

	c.JSON(http.StatusOK, response)
}

// POST /api/v1/processes
func (s *Server) createProcess(c *gin.Context) {
	ctx := c.Request.Context()

	var request v1.CreateProcessRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, v1.ErrorResponse{Message: "request body must be a JSON object with a non-empty cmd"})
		return
	}

	command, err := lib.ParseCommand(request.Cmd, request.Args)
	if err != nil {
		writeError(c, err)
		return
	}

	summary, err := s.runner.Create(ctx, lib.CreateRequest{Command: command, Owner: auth.Owner(ctx)})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, v1.FromSummary(summary))
}

// GET /api/v1/processes/:id
func (s *Server) getProcess(c *gin.Context) {
	id := c.Param("id")
	if !s.authorize(c, id) {
		return
	}

	summary, err := s.runner.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.FromSummary(summary))
}

// DELETE /api/v1/processes/:id
func (s *Server) deleteProcess(c *gin.Context) {
	id := c.Param("id")
	if !s.authorize(c, id) {
		return
	}

	if err := s.runner.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// authorize writes the error response and reports false unless the caller may access process id.
func (s *Server) authorize(c *gin.Context, id string) bool {
	summary, err := s.runner.Status(id)
	if err != nil {
		writeError(c, err)
		return false
	}

	if err := auth.Authorize(c.Request.Context(), summary.Owner); err != nil {
		writeError(c, err)
		return false
	}

	return true
}
