package vii

import "net/http"

// Route is a request handler with lifecycle hooks.
// Errors returned from Handle are passed to OnErr, then to App.OnErr.
type Route interface {
	Handle(r *http.Request, w http.ResponseWriter) error
	OnMount(app *App) error
	OnErr(r *http.Request, w http.ResponseWriter, err error)
}

// Optional interfaces a Route may implement.

// WithValidators provides validators that run before services and before Handle().
type WithValidators interface {
	Validators() []AnyValidator
}

// WithServices provides services that run after validators.
// Before() runs in-order, After() runs in reverse order.
type WithServices interface {
	Services() []Service
}

// Service wraps routes. Before may replace the request (typically to store
// a value with WithValidated); After sees the request Before returned.
type Service interface {
	Before(r *http.Request, w http.ResponseWriter) (*http.Request, error)
	After(r *http.Request, w http.ResponseWriter) error
}

// ServiceKeyer lets two values of one service type run in the same
// pipeline. Without it, services are deduplicated by concrete type.
type ServiceKeyer interface {
	ServiceKey() string
}
