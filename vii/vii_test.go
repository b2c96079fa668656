package vii

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPatternMatch(t *testing.T) {
	pr, err := compilePattern("/eras/{era}/{name}", nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	params, ok := pr.match("/eras/cretaceous/Rex")
	if !ok {
		t.Fatalf("expected match")
	}
	if params["era"] != "cretaceous" || params["name"] != "Rex" {
		t.Fatalf("unexpected params: %#v", params)
	}

	for _, path := range []string{"/eras/cretaceous", "/eras//Rex", "/periods/cretaceous/Rex", "/eras/cretaceous/Rex/x"} {
		if _, ok := pr.match(path); ok {
			t.Fatalf("%s: expected no match", path)
		}
	}
}

func TestCompilePatternRejects(t *testing.T) {
	for _, p := range []string{"/a{name}", "/{name}x", "/{}", "/{a}/{a}"} {
		if _, err := compilePattern(p, nil); err == nil {
			t.Fatalf("%s: expected error", p)
		}
	}
}

type svcA struct{}

func (svcA) Before(r *http.Request, w http.ResponseWriter) (*http.Request, error) { return r, nil }
func (svcA) After(r *http.Request, w http.ResponseWriter) error                   { return nil }

type svcB struct{ deps []Service }

func (s svcB) Services() []Service                                                { return s.deps }
func (svcB) Before(r *http.Request, w http.ResponseWriter) (*http.Request, error) { return r, nil }
func (svcB) After(r *http.Request, w http.ResponseWriter) error                   { return nil }

type svcCycle struct{}

func (svcCycle) Services() []Service                                                  { return []Service{svcCycle{}} }
func (svcCycle) Before(r *http.Request, w http.ResponseWriter) (*http.Request, error) { return r, nil }
func (svcCycle) After(r *http.Request, w http.ResponseWriter) error                   { return nil }

func TestResolveServicesDependenciesFirst(t *testing.T) {
	nodes := resolveServices([]Service{svcB{deps: []Service{svcA{}}}, svcA{}})
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if _, ok := nodes[0].svc.(svcA); !ok {
		t.Fatalf("expected dependency first, got %T", nodes[0].svc)
	}
}

func TestResolveServicesCyclePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on cycle")
		}
	}()
	resolveServices([]Service{svcCycle{}})
}

func TestStatusWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := newStatusWriter(rec)
	if newStatusWriter(sw) != sw {
		t.Fatalf("expected wrapping to be idempotent")
	}
	if sw.Status() != 0 {
		t.Fatalf("expected 0 before write")
	}
	sw.WriteHeader(http.StatusTeapot)
	sw.WriteHeader(http.StatusOK)
	if sw.Status() != http.StatusTeapot {
		t.Fatalf("expected first status to stick, got %d", sw.Status())
	}
}

func TestStaticMountsOrderedBySpecificity(t *testing.T) {
	a := New()
	for _, p := range []string{"/a", "/a/b/c", "/a/b"} {
		a.addStatic(staticMount{prefix: p, handler: http.NotFoundHandler()})
	}
	want := []string{"/a/b/c", "/a/b", "/a"}
	for i, m := range a.static {
		if m.prefix != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], m.prefix)
		}
	}
	if !a.static[2].covers("/a/x") || a.static[2].covers("/ab") {
		t.Fatalf("unexpected prefix coverage for /a")
	}
}
