package vii

import (
	"fmt"
	"net/http"
	"strings"
)

// PathParams holds the values captured by a pattern route, keyed by name.
type PathParams map[string]string

type patternRoute struct {
	pattern  string
	segments []string // literal segment, or "{name}"
	route    Route
}

func compilePattern(pattern string, route Route) (patternRoute, error) {
	segs := splitPath(pattern)
	seen := map[string]bool{}
	for _, s := range segs {
		if !strings.ContainsAny(s, "{}") {
			continue
		}
		name, ok := paramName(s)
		if !ok {
			return patternRoute{}, fmt.Errorf("vii: bad segment %q in pattern %q (params must fill the whole segment)", s, pattern)
		}
		if seen[name] {
			return patternRoute{}, fmt.Errorf("vii: duplicate param %q in pattern %q", name, pattern)
		}
		seen[name] = true
	}
	return patternRoute{pattern: pattern, segments: segs, route: route}, nil
}

func (p patternRoute) match(path string) (PathParams, bool) {
	segs := splitPath(path)
	if len(segs) != len(p.segments) {
		return nil, false
	}
	params := PathParams{}
	for i, want := range p.segments {
		got := segs[i]
		if name, ok := paramName(want); ok {
			if got == "" {
				return nil, false
			}
			params[name] = got
			continue
		}
		if got != want {
			return nil, false
		}
	}
	return params, true
}

func paramName(seg string) (string, bool) {
	if len(seg) < 3 || seg[0] != '{' || seg[len(seg)-1] != '}' {
		return "", false
	}
	name := seg[1 : len(seg)-1]
	if strings.ContainsAny(name, "{}/") {
		return "", false
	}
	return name, true
}

// splitPath splits "/a/b" into ["a", "b"]; "/" yields [""].
func splitPath(path string) []string {
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}

// Param returns the decoded path segment captured as name, or "".
func Param(r *http.Request, name string) string {
	params, ok := Validated[PathParams](r)
	if !ok {
		return ""
	}
	return params[name]
}
