package codeblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTitle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		ok       bool
		fileName string
		lang     string
		indent   int
	}{
		{name: "plain", text: "code:a.txt", ok: true, fileName: "a.txt", lang: "txt"},
		{name: "indented", text: "  code:b.go", ok: true, fileName: "b.go", lang: "go", indent: 2},
		{name: "explicit lang", text: "code:b(js)", ok: true, fileName: "b", lang: "js"},
		{name: "lang differs from extension", text: "code:run.txt(sh)", ok: true, fileName: "run.txt", lang: "sh"},
		{name: "no extension", text: "code:Makefile", ok: true, fileName: "Makefile", lang: "Makefile"},
		{name: "multiple dots", text: "code:a.b.c", ok: true, fileName: "a.b.c", lang: "c"},
		{name: "trailing whitespace", text: "code:a.txt   ", ok: true, fileName: "a.txt", lang: "txt"},
		{name: "tab indent", text: "\tcode:c.py", ok: true, fileName: "c.py", lang: "py", indent: 1},
		{name: "trailing dot rejected", text: "code:foo.", ok: false},
		{name: "no filename", text: "code:", ok: false},
		{name: "not a title", text: "hello world", ok: false},
		{name: "prefix before code", text: "xcode:a.txt", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, ok := parseTitle(tt.text)

			require.Equal(t, tt.ok, ok)

			if !tt.ok {
				return
			}

			assert.Equal(t, tt.fileName, title.fileName)
			assert.Equal(t, tt.lang, title.lang)
			assert.Equal(t, tt.indent, title.indent)
		})
	}
}

func TestBodyText(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		titleIndent int
		ok          bool
		body        string
	}{
		{name: "deeper than title", text: "  hello", titleIndent: 0, ok: true, body: "hello"},
		{name: "residual indent kept", text: "    x=1", titleIndent: 2, ok: true, body: "  x=1"},
		{name: "equal indent terminates", text: "  y", titleIndent: 2, ok: false},
		{name: "shallower terminates", text: "done", titleIndent: 2, ok: false},
		{name: "whitespace-only deeper", text: "    ", titleIndent: 2, ok: true, body: "  "},
		{name: "empty line terminates", text: "", titleIndent: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ok := bodyText(tt.text, tt.titleIndent)

			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.body, body)
		})
	}
}
