package site

import (
	"net/http"

	"github.com/phillip-england/dinos/internal/dinos"
	"github.com/phillip-england/dinos/vii"
)

type dinoName string

type dinoNameParam struct{}

func (dinoNameParam) Validate(r *http.Request) (dinoName, error) {
	return dinoName(vii.Param(r, "name")), nil
}

// DinoRoute shows one dinosaur by name. Any failure, including a miss,
// renders the "Dinosaur not found" page.
type DinoRoute struct {
	site *Site
}

func (rt *DinoRoute) OnMount(app *vii.App) error { return nil }

func (rt *DinoRoute) Validators() []vii.AnyValidator {
	return []vii.AnyValidator{vii.SV[dinoName](dinoNameParam{})}
}

func (rt *DinoRoute) Handle(r *http.Request, w http.ResponseWriter) error {
	name, _ := vii.Validated[dinoName](r)

	var dino *dinos.Record
	rec, err := rt.site.catalog.Lookup(r.Context(), string(name))
	if err != nil {
		rt.site.logFailure(r, err)
	} else {
		dino = &rec
	}

	title := ""
	if dino != nil {
		title = dino.Name
	}
	return rt.site.render(w, r, rt.site.failureStatus(err), "dino.html", map[string]any{
		"Dino":  dino,
		"Name":  string(name),
		"Title": title,
	})
}

func (rt *DinoRoute) OnErr(r *http.Request, w http.ResponseWriter, err error) {
	rt.site.renderFailed(r, w, err)
}
