package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"hotelms/pkg/logger"
)

const timeoutMessage = "Request timeout"

// timeoutWriter buffers headers in its own map and forwards to the real
// writer only while the request has not timed out. The handler goroutine may
// outlive ServeHTTP, so it must never touch the real writer's header map.
type timeoutWriter struct {
	w        http.ResponseWriter
	h        http.Header
	mu       sync.Mutex
	timedOut bool
	written  bool
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.h
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut || tw.written {
		return
	}
	tw.writeHeaderLocked(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}

	if !tw.written {
		tw.writeHeaderLocked(http.StatusOK)
	}

	return tw.w.Write(b)
}

// writeHeaderLocked copies the buffered headers out. Caller holds tw.mu.
func (tw *timeoutWriter) writeHeaderLocked(code int) {
	dst := tw.w.Header()
	for k, vv := range tw.h {
		dst[k] = append([]string(nil), vv...)
	}
	tw.written = true
	tw.w.WriteHeader(code)
}

func RequestTimeout(timeout time.Duration, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)

			tw := &timeoutWriter{w: w, h: make(http.Header)}

			done := make(chan struct{})
			panicked := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case <-done:
				return
			case p := <-panicked:
				panic(p)
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if !tw.written {
					log.Warn("Request timed out",
						"request_id", RequestIDFromContext(r.Context()),
						"method", r.Method,
						"path", r.URL.Path,
						"timeout", timeout.String(),
					)
					writeRejection(w, log, "RequestTimeout", http.StatusInternalServerError, timeoutMessage)
					tw.written = true
				}
			}
		})
	}
}
