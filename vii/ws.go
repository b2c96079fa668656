package vii

import (
	"net/http"
	"strings"

	"golang.org/x/net/websocket"
)

func isWebSocketUpgrade(r *http.Request) bool {
	if r == nil {
		return false
	}
	conn := strings.ToLower(r.Header.Get("Connection"))
	upg := strings.ToLower(r.Header.Get("Upgrade"))
	return strings.Contains(conn, "upgrade") && upg == "websocket"
}

// wsWriter lets websocket handlers answer through the usual ResponseWriter;
// each Write is sent as one text message.
type wsWriter struct {
	hdr    http.Header
	conn   *websocket.Conn
	status int
}

func newWSWriter(conn *websocket.Conn) *wsWriter {
	return &wsWriter{hdr: make(http.Header), conn: conn, status: http.StatusSwitchingProtocols}
}

func (w *wsWriter) Header() http.Header        { return w.hdr }
func (w *wsWriter) WriteHeader(statusCode int) { w.status = statusCode }
func (w *wsWriter) Status() int                { return w.status }

func (w *wsWriter) Write(p []byte) (int, error) {
	if err := websocket.Message.Send(w.conn, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (a *App) hasWSRoutes(path string) bool {
	for _, m := range []string{Method.OPEN, Method.MESSAGE, Method.CLOSE} {
		if route, _ := a.lookup(m, path); route != nil {
			return true
		}
	}
	return false
}

func (a *App) dispatchWS(method string, base *http.Request, w http.ResponseWriter, decorate func(*http.Request) *http.Request) {
	route, params := a.lookup(method, base.URL.Path)
	if route == nil {
		return
	}
	req := base.Clone(base.Context())
	req.Method = method
	if params != nil {
		req = WithValidated(req, params)
	}
	if decorate != nil {
		req = decorate(req)
	}
	_ = compilePipeline(a, route).serve(w, req)
}

func (a *App) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	if !a.hasWSRoutes(r.URL.Path) {
		if a.OnNotFound != nil {
			a.OnNotFound(a, r, w)
			return
		}
		http.NotFound(w, r)
		return
	}

	server := websocket.Server{
		Handler: func(conn *websocket.Conn) {
			base := r.Clone(r.Context())
			base = WithValidated(base, WSConn{Conn: conn})
			writer := newWSWriter(conn)

			a.dispatchWS(Method.OPEN, base, writer, nil)

			var closeErr error
			for {
				var msg []byte
				if err := websocket.Message.Receive(conn, &msg); err != nil {
					closeErr = err
					break
				}
				a.dispatchWS(Method.MESSAGE, base, writer, func(req *http.Request) *http.Request {
					return WithValidated(req, WSMessage{Data: msg})
				})
			}

			a.dispatchWS(Method.CLOSE, base, writer, func(req *http.Request) *http.Request {
				return WithValidated(req, WSClose{Err: closeErr})
			})
		},
	}
	server.ServeHTTP(w, r)
}
