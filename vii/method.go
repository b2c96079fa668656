package vii

import "net/http"

// Methods is a convenience namespace so users can write: vii.Method.GET, vii.Method.OPEN, etc.
type Methods struct {
	GET, HEAD string

	// WebSocket lifecycle "methods"
	OPEN, MESSAGE, CLOSE string
}

// Method lists the method strings the router understands.
// WS methods are routed exactly like HTTP methods.
var Method = Methods{
	GET:  http.MethodGet,
	HEAD: http.MethodHead,

	OPEN:    "OPEN",
	MESSAGE: "MESSAGE",
	CLOSE:   "CLOSE",
}
