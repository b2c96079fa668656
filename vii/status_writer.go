package vii

import "net/http"

// statusWriter remembers the status code written through it.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	if sw, ok := w.(*statusWriter); ok {
		return sw
	}
	return &statusWriter{ResponseWriter: w}
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(p)
}

func (w *statusWriter) Status() int { return w.status }

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// StatusOf reports the status written so far through w, or 0 when unknown.
func StatusOf(w http.ResponseWriter) int {
	if s, ok := w.(interface{ Status() int }); ok {
		return s.Status()
	}
	return 0
}
