package activity

import (
	"io"
	"log/slog"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

func NewHandler(logger *slog.Logger, broker broker) Handler {
	return Handler{
		logger: logger,
		broker: broker,
	}
}

type broker interface {
	Subscribe() (string, <-chan Event)
	Unsubscribe(id string)
}

type Handler struct {
	logger *slog.Logger
	broker broker
}

// Subscribe streams activity events to the admin panel until the client
// disconnects.
func (h Handler) Subscribe(c *gin.Context) {
	id, events := h.broker.Subscribe()
	defer func() {
		h.broker.Unsubscribe(id)
		h.logger.Info("Closing activity subscriber", "subscriberId", id)
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			_ = sse.Encode(w, sse.Event{
				Event: event.Type,
				Data:  event.Message,
			})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
