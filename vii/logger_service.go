package vii

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LoggerService logs one line per request with method, path, status,
// latency and (when RequestIDService ran first) the request id.
type LoggerService struct {
	Logger *zap.Logger
}

type loggerStart struct {
	t time.Time
}

func (s LoggerService) Before(r *http.Request, w http.ResponseWriter) (*http.Request, error) {
	_ = w
	return WithValidated(r, loggerStart{t: time.Now()}), nil
}

func (s LoggerService) After(r *http.Request, w http.ResponseWriter) error {
	if s.Logger == nil || r == nil {
		return nil
	}
	st, ok := Validated[loggerStart](r)
	if !ok || st.t.IsZero() {
		return nil
	}

	status := StatusOf(w)
	if status == 0 {
		status = http.StatusOK
	}

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(st.t)),
	}
	if id, ok := RequestIDFrom(r); ok {
		fields = append(fields, zap.String("request_id", id))
	}
	s.Logger.Info("request", fields...)
	return nil
}
