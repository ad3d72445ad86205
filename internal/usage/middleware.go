package usage

import (
	"bytes"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ubuygold/folioapi/internal/auth"
	"github.com/ubuygold/folioapi/internal/model"

	"github.com/gin-gonic/gin"
)

// bodyCaptureWriter tees the response body into buf, keeping at most limit bytes.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	buf   bytes.Buffer
	limit int
}

func (w *bodyCaptureWriter) capture(b []byte) {
	room := w.limit - w.buf.Len()
	if room <= 0 {
		return
	}
	if len(b) > room {
		b = b[:room]
	}
	w.buf.Write(b)
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.capture(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

// clampText cuts s to at most n bytes on a character boundary and drops
// invalid UTF-8, which text columns on postgres and mysql reject.
func clampText(s string, n int) string {
	if len(s) > n {
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n]
	}
	return strings.ToValidUTF8(s, "")
}

// TrackUsage records one usage log for every request that carries a validated
// API key, whatever the outcome of the rest of the chain. It must run after
// auth.ValidateAPIKey. Requests without a key pass through unrecorded.
func TrackUsage(recorder *Recorder, maxBodyBytes int) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey, ok := auth.APIKeyFromContext(c)
		if !ok {
			c.Next()
			return
		}

		start := time.Now()
		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, limit: maxBodyBytes}
		c.Writer = writer

		var once sync.Once
		record := func(status int) {
			once.Do(func() {
				recorder.Record(model.UsageLog{
					APIKeyID:     apiKey.ID,
					Method:       c.Request.Method,
					Endpoint:     clampText(c.Request.URL.RequestURI(), model.MaxEndpointLength),
					StatusCode:   status,
					ResponseBody: strings.ToValidUTF8(writer.buf.String(), ""),
					DurationMs:   time.Since(start).Milliseconds(),
					ClientIP:     c.ClientIP(),
					CreatedAt:    start,
				})
			})
		}

		defer func() {
			if err := recover(); err != nil {
				record(http.StatusInternalServerError)
				panic(err)
			}
		}()

		c.Next()
		record(writer.Status())
	}
}
