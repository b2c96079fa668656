package site

import (
	"net/http"

	"github.com/phillip-england/dinos/internal/dinos"
	"github.com/phillip-england/dinos/vii"
)

// IndexRoute lists every dinosaur. Any data failure renders an empty list.
type IndexRoute struct {
	site *Site
}

func (rt *IndexRoute) OnMount(app *vii.App) error { return nil }

func (rt *IndexRoute) Handle(r *http.Request, w http.ResponseWriter) error {
	records, err := rt.site.catalog.List(r.Context())
	if err != nil {
		rt.site.logFailure(r, err)
		records = []dinos.Record{}
	}
	return rt.site.render(w, r, rt.site.failureStatus(err), "index.html", map[string]any{
		"Dinos": records,
	})
}

func (rt *IndexRoute) OnErr(r *http.Request, w http.ResponseWriter, err error) {
	rt.site.renderFailed(r, w, err)
}
