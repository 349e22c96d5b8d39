package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// HandleRequestMiddleware tags the request with an id, stores a logger
// carrying that id in the request context and logs the outcome.
func (h *handlerImpl) HandleRequestMiddleware(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to generate request id")
			id = uuid.New()
		}
		requestID = id.String()
	}
	c.Header(requestIDHeader, requestID)

	logger := h.logger.With().
		Str("request_id", requestID).
		Logger()
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

	start := time.Now()
	c.Next()

	event := logger.Info()
	if status := c.Writer.Status(); status >= 500 {
		event = logger.Error()
	}
	event.
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Dur("latency", time.Since(start)).
		Str("client_ip", c.ClientIP()).
		Msg("handled request")
}

// log returns the request-scoped logger set by HandleRequestMiddleware.
func (h *handlerImpl) log(c *gin.Context) *zerolog.Logger {
	if l := zerolog.Ctx(c.Request.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &h.logger
}
