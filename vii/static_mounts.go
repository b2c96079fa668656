package vii

import (
	"net/http"
	"sort"
	"strings"
)

type staticMount struct {
	prefix  string
	handler http.Handler
}

func (m staticMount) covers(path string) bool {
	return path == m.prefix || m.prefix == "/" || strings.HasPrefix(path, m.prefix+"/")
}

// addStatic keeps mounts ordered longest prefix first, so the first
// covering mount is the most specific one.
func (a *App) addStatic(m staticMount) {
	a.static = append(a.static, m)
	sort.SliceStable(a.static, func(i, j int) bool {
		return len(a.static[i].prefix) > len(a.static[j].prefix)
	})
}

func (a *App) tryStatic(w http.ResponseWriter, r *http.Request) bool {
	if a == nil || r == nil {
		return false
	}
	for _, m := range a.static {
		if m.covers(r.URL.Path) {
			m.handler.ServeHTTP(w, r)
			return true
		}
	}
	return false
}
