package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		without string
	}{
		{name: "emphasis", in: "*small* arms", want: "<em>small</em> arms"},
		{name: "link", in: "[wiki](https://example.org)", want: `href="https://example.org"`},
		{name: "raw html dropped", in: "hi <img src=x onerror=alert(1)>", without: "onerror"},
		{name: "javascript url", in: "[x](javascript:alert(1))", without: "javascript:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(renderMarkdown(tt.in))
			if tt.want != "" {
				assert.Contains(t, got, tt.want)
			}
			if tt.without != "" {
				assert.NotContains(t, got, tt.without)
			}
		})
	}
}
