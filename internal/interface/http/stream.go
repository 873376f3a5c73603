package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ahsan786123/solar-time-app/internal/domain/location"
	"github.com/Ahsan786123/solar-time-app/internal/domain/session"
	"github.com/Ahsan786123/solar-time-app/internal/domain/solartime"
	"github.com/Ahsan786123/solar-time-app/pkg/metrics"
)

// streamMessage is one SSE data payload. Type is one of loading, located,
// tick or error.
type streamMessage struct {
	Type       string                `json:"type"`
	Coordinate *solartime.Coordinate `json:"coordinate,omitempty"`
	Details    *solartime.Details    `json:"details,omitempty"`
	Frame      *solartime.Frame      `json:"frame,omitempty"`
	Code       string                `json:"code,omitempty"`
	Message    string                `json:"message,omitempty"`
}

// streamRenderer forwards session output to the connection's writer loop.
// Ticks are dropped rather than queued when the client falls behind.
type streamRenderer struct {
	messages chan streamMessage
	done     <-chan struct{}
}

func (r *streamRenderer) send(msg streamMessage) {
	select {
	case r.messages <- msg:
	case <-r.done:
	}
}

func (r *streamRenderer) Loading() {
	r.send(streamMessage{Type: "loading"})
}

func (r *streamRenderer) Located(coord solartime.Coordinate, details solartime.Details) {
	r.send(streamMessage{Type: "located", Coordinate: &coord, Details: &details})
}

func (r *streamRenderer) Tick(frame solartime.Frame) {
	select {
	case r.messages <- streamMessage{Type: "tick", Frame: &frame}:
	default:
	}
}

func (r *streamRenderer) Failed(message string, err error) {
	r.send(streamMessage{Type: "error", Code: location.Code(err), Message: message})
}

// Stream serves a live clock over Server-Sent Events. The session runs for
// as long as the client stays connected; a hidden page closes its
// EventSource, which stops the refresh timer.
func (h *Handler) Stream(c *gin.Context) {
	source, httpErr := h.resolveSource(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}

	ip := c.ClientIP()
	if !h.streams.acquire(ip) {
		metrics.StreamRejected()
		h.logger.Warn("stream limit exceeded", "ip", ip)
		abortWithError(c, NewHTTPError(http.StatusTooManyRequests, "too_many_streams", "too many concurrent streams", nil))
		return
	}
	defer h.streams.release(ip)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "stream_unsupported", "streaming not supported", nil))
		return
	}

	ctx := c.Request.Context()
	renderer := &streamRenderer{messages: make(chan streamMessage, 8), done: ctx.Done()}
	sess := session.New(h.session, h.calc, source, renderer, h.logger)
	defer sess.Close()

	rc := http.NewResponseController(c.Writer)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug("could not clear write deadline", "error", err)
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	start := time.Now()
	metrics.StreamOpened()
	h.logger.Info("stream connected", "session_id", sess.ID(), "ip", ip)
	defer func() {
		metrics.StreamClosed()
		h.logger.Info("stream disconnected", "session_id", sess.ID(), "ip", ip, "duration_seconds", int(time.Since(start).Seconds()))
	}()

	sess.RequestLocation(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-renderer.messages:
			payload, err := json.Marshal(msg)
			if err != nil {
				h.logger.Error("marshal stream message failed", "error", err)
				continue
			}
			frame := make([]byte, 0, len(payload)+8)
			frame = append(frame, "data: "...)
			frame = append(frame, payload...)
			frame = append(frame, "\n\n"...)
			if _, err := c.Writer.Write(frame); err != nil {
				h.logger.Warn("stream send error", "session_id", sess.ID(), "ip", ip, "error", err)
				return
			}
			flusher.Flush()
			if msg.Type == "error" {
				return
			}
		}
	}
}
