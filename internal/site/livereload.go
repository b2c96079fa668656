package site

import (
	"context"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/phillip-england/dinos/vii"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/net/websocket"
)

// ReloadMessage is sent to every live client when the data file changes.
const ReloadMessage = "reload"

var watchDebounce = 100 * time.Millisecond

// Notifier receives change notifications from Watch.
type Notifier interface {
	Broadcast(msg string) int
}

// Hub tracks open live-reload connections. It holds no catalog data.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast sends msg to every client and returns how many received it.
// Clients that fail to receive are dropped.
func (h *Hub) Broadcast(msg string) int {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	sent := 0
	for _, c := range conns {
		if err := websocket.Message.Send(c, msg); err != nil {
			h.remove(c)
			continue
		}
		sent++
	}
	return sent
}

// liveRoute is mounted for OPEN, MESSAGE and CLOSE on LivePath.
type liveRoute struct {
	hub    *Hub
	logger *zap.Logger
}

func (rt *liveRoute) OnMount(app *vii.App) error { return nil }

func (rt *liveRoute) Handle(r *http.Request, w http.ResponseWriter) error {
	conn, ok := vii.WS(r)
	if !ok {
		return errors.New("live reload: no websocket connection")
	}
	switch r.Method {
	case vii.Method.OPEN:
		rt.hub.add(conn)
	case vii.Method.CLOSE:
		rt.hub.remove(conn)
	}
	return nil
}

func (rt *liveRoute) OnErr(r *http.Request, w http.ResponseWriter, err error) {
	rt.logger.Warn("live reload failed", zap.String("method", r.Method), zap.Error(err))
}

// Watch notifies n whenever the file at path is written, created, renamed
// or removed. Bursts of events within watchDebounce collapse into one
// notification. It returns nil once ctx is done.
func Watch(ctx context.Context, path string, n Notifier, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "failed to watch %s", filepath.Dir(abs))
	}

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&relevant == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Stop()
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			clients := n.Broadcast(ReloadMessage)
			logger.Info("data file changed", zap.String("path", abs), zap.Int("clients", clients))
		}
	}
}
