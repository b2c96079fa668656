package vii

import (
	"encoding/json"
	"html/template"
	"strings"
	"unicode"
)

// TemplateFuncsCommon returns helpers most page templates want. Callers may
// add to the returned map before registering templates.
func TemplateFuncsCommon() template.FuncMap {
	return template.FuncMap{
		"lower":   strings.ToLower,
		"upper":   strings.ToUpper,
		"title":   tmplTitle, // avoid removed strings.Title
		"trim":    strings.TrimSpace,
		"default": tmplDefault,
		"json":    tmplJSON,
	}
}

func tmplJSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return template.JS(b)
}

func tmplTitle(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	parts := strings.Fields(s)
	for i := range parts {
		r := []rune(strings.ToLower(parts[i]))
		if len(r) == 0 {
			continue
		}
		r[0] = unicode.ToTitle(r[0])
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

func tmplDefault(fallback any, v any) any {
	if v == nil {
		return fallback
	}
	switch x := v.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case bool:
		if !x {
			return fallback
		}
		return x
	default:
		return v
	}
}
