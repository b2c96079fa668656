package vii

import (
	"errors"
	"net/http"
)

// compiledPipeline is the ordered work for one route: route validators, then
// each service's validators and Before, then Handle, then After in reverse.
type compiledPipeline struct {
	app             *App
	route           Route
	routeValidators []AnyValidator
	nodes           []serviceNode
}

func compilePipeline(app *App, route Route) *compiledPipeline {
	var rv []AnyValidator
	if rvs, ok := route.(WithValidators); ok {
		rv = rvs.Validators()
	}

	var roots []Service
	if app != nil && len(app.services) > 0 {
		roots = append(roots, app.services...)
	}
	if rs, ok := route.(WithServices); ok {
		roots = append(roots, rs.Services()...)
	}

	var nodes []serviceNode
	if len(roots) > 0 {
		nodes = resolveServices(roots)
	}

	return &compiledPipeline{
		app:             app,
		route:           route,
		routeValidators: rv,
		nodes:           nodes,
	}
}

func (p *compiledPipeline) serve(w http.ResponseWriter, r *http.Request) error {
	r = withApp(r, p.app)

	var err error
	if r, err = runValidators(r, p.routeValidators); err != nil {
		return p.fail(r, w, err)
	}

	for i := range p.nodes {
		n := p.nodes[i]
		if r, err = runValidators(r, n.validators); err != nil {
			return p.fail(r, w, err)
		}
		if r, err = n.svc.Before(r, w); err != nil {
			return p.fail(r, w, err)
		}
	}

	if err := p.route.Handle(r, w); err != nil {
		return p.fail(r, w, err)
	}

	for i := len(p.nodes) - 1; i >= 0; i-- {
		if err := p.nodes[i].svc.After(r, w); err != nil {
			return p.fail(r, w, err)
		}
	}

	return nil
}

func runValidators(r *http.Request, vals []AnyValidator) (*http.Request, error) {
	for _, v := range vals {
		if v == nil {
			continue
		}
		var err error
		r, err = v.ValidateAny(r)
		if err != nil {
			return r, err
		}
	}
	return r, nil
}

func (p *compiledPipeline) fail(r *http.Request, w http.ResponseWriter, err error) error {
	if errors.Is(err, ErrHalt) {
		return nil
	}
	p.route.OnErr(r, w, err)
	if p.app != nil && p.app.OnErr != nil {
		p.app.OnErr(p.app, p.route, r, w, err)
	}
	return err
}
