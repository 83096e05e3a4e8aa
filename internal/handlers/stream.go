package handlers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/launchpad/internal/models"
	"github.com/pandeptwidyaop/launchpad/internal/services"
)

type StreamHandler struct {
	launchService *services.LaunchService
}

func NewStreamHandler(launchService *services.LaunchService) *StreamHandler {
	return &StreamHandler{
		launchService: launchService,
	}
}

// Stream sends the completion of a launch as a server-sent event.
// GET /api/launches/:id/stream
func (h *StreamHandler) Stream(c *gin.Context) {
	id := c.Param("id")

	// Subscribe before reading the record so a completion in between is not lost.
	ch := h.launchService.Subscribe(id)
	defer h.launchService.Unsubscribe(id, ch)

	record, err := h.launchService.Get(id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	if record.Status.Done() {
		writeComplete(c.Writer, record.Response())
		c.Writer.Flush()
		return
	}

	_, _ = fmt.Fprintf(c.Writer, "event: status\ndata: %s\n\n", record.Status)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case resp, ok := <-ch:
			if ok {
				writeComplete(w, resp)
			}
			return false
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func writeComplete(w io.Writer, resp models.LaunchResponse) {
	data, _ := json.Marshal(resp)
	_, _ = fmt.Fprintf(w, "event: complete\ndata: %s\n\n", data)
}
