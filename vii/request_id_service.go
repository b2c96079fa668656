package vii

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type requestID string

// RequestIDService reuses an inbound X-Request-ID or assigns a new UUID,
// echoes it on the response and stores it for RequestIDFrom.
type RequestIDService struct{}

func (RequestIDService) Before(r *http.Request, w http.ResponseWriter) (*http.Request, error) {
	id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
	if id == "" || len(id) > 128 {
		id = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, id)
	return WithValidated(r, requestID(id)), nil
}

func (RequestIDService) After(r *http.Request, w http.ResponseWriter) error {
	_ = r
	_ = w
	return nil
}

// RequestIDFrom returns the id assigned by RequestIDService.
func RequestIDFrom(r *http.Request) (string, bool) {
	id, ok := Validated[requestID](r)
	if !ok || id == "" {
		return "", false
	}
	return string(id), true
}
