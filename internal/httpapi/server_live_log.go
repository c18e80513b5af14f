package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/processes/:id/live_log
//
// Streams output lines produced after the request arrived as text/plain, flushing after every
// line. The response ends when the process finishes or the client goes away.
func (s *Server) liveLog(c *gin.Context) {
	id := c.Param("id")
	if !s.authorize(c, id) {
		return
	}

	sub, err := s.runner.Subscribe(id)
	if err != nil {
		writeError(c, err)
		return
	}
	defer sub.Close()

	ctx := c.Request.Context()

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	for {
		select {
		case <-ctx.Done():
			s.logger.DebugContext(ctx, "Live log client went away", "id", id)
			return
		case line, ok := <-sub.Lines():
			if !ok {
				return
			}
			if _, err := c.Writer.WriteString(line); err != nil {
				s.logger.DebugContext(ctx, "Failed to write live log line", "id", id, "error", err)
				return
			}
			c.Writer.Flush()
		}
	}
}
