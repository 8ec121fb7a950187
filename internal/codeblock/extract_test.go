package codeblock

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkLines(texts ...string) []Line {
	lines := make([]Line, len(texts))
	for i, text := range texts {
		lines[i] = Line{ID: fmt.Sprintf("l%d", i), Text: text}
	}

	return lines
}

func bodyTexts(b *Block) []string {
	texts := make([]string, len(b.Body))
	for i, line := range b.Body {
		texts[i] = line.Text
	}

	return texts
}

func TestExtractSingleBlock(t *testing.T) {
	lines := mkLines("code:a.txt", "  hello", "  world", "done")

	blocks := Extract(lines, nil)

	require.Len(t, blocks, 1)

	b := blocks[0]
	assert.Equal(t, "a.txt", b.Filename)
	assert.Equal(t, "txt", b.Lang)
	assert.Equal(t, lines[0], b.Title)
	assert.Equal(t, []string{"  hello", "  world"}, bodyTexts(b))

	require.NotNil(t, b.Next)
	assert.Equal(t, "done", b.Next.Text)
	assert.Equal(t, "l3", b.Next.ID)
}

func TestExtractIndentedTitle(t *testing.T) {
	lines := mkLines("  code:b(js)", "    x=1", "  y")

	blocks := Extract(lines, nil)

	require.Len(t, blocks, 1)

	b := blocks[0]
	assert.Equal(t, "b", b.Filename)
	assert.Equal(t, "js", b.Lang)
	assert.Equal(t, []string{"  x=1"}, bodyTexts(b))

	require.NotNil(t, b.Next)
	assert.Equal(t, "  y", b.Next.Text)
}

func TestExtractRejectsTrailingDotTitle(t *testing.T) {
	blocks := Extract(mkLines("code:c.", "text"), nil)

	assert.Empty(t, blocks)
}

func TestExtractConsecutiveTitles(t *testing.T) {
	lines := mkLines("code:d.py", "code:e.py", "  z")

	blocks := Extract(lines, &Filter{Lang: "py"})

	require.Len(t, blocks, 2)

	first, second := blocks[0], blocks[1]

	assert.Empty(t, first.Body)
	require.NotNil(t, first.Next)
	assert.Equal(t, "code:e.py", first.Next.Text)

	assert.Equal(t, []string{"  z"}, bodyTexts(second))
	assert.Nil(t, second.Next)
}

func TestExtractEmptyInput(t *testing.T) {
	assert.Empty(t, Extract(nil, nil))
	assert.Empty(t, Extract([]Line{}, &Filter{Lang: "go"}))
}

func TestExtractBlockRunsToEndOfInput(t *testing.T) {
	blocks := Extract(mkLines("code:f.sh", "  echo hi"), nil)

	require.Len(t, blocks, 1)
	assert.Nil(t, blocks[0].Next)
	assert.Equal(t, []string{"  echo hi"}, bodyTexts(blocks[0]))
}

func TestExtractEmptyBodyBlock(t *testing.T) {
	lines := mkLines("  code:g.rb", " shallower")

	blocks := Extract(lines, nil)

	require.Len(t, blocks, 1)
	assert.Empty(t, blocks[0].Body)
	require.NotNil(t, blocks[0].Next)
	assert.Equal(t, " shallower", blocks[0].Next.Text)
}

func TestExtractWhitespaceOnlyBodyLine(t *testing.T) {
	lines := mkLines("code:h.c", "  int x;", "    ", "  int y;", "end")

	blocks := Extract(lines, nil)

	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"  int x;", "    ", "  int y;"}, bodyTexts(blocks[0]))
}

func TestExtractFilterByFilename(t *testing.T) {
	lines := mkLines(
		"code:a.go",
		"  package a",
		"code:b.go",
		"  package b",
	)

	blocks := Extract(lines, &Filter{Filename: "b.go"})

	require.Len(t, blocks, 1)
	assert.Equal(t, "b.go", blocks[0].Filename)
	assert.Equal(t, []string{"  package b"}, bodyTexts(blocks[0]))
}

func TestExtractFilterMatchesNothing(t *testing.T) {
	lines := mkLines("code:a.go", "  package a")

	assert.Empty(t, Extract(lines, &Filter{Lang: "rust"}))
}

func TestExtractFilteredBlocksStillTerminate(t *testing.T) {
	// A rejected block's body must not leak into a later block.
	lines := mkLines(
		"code:skip.js",
		"  var a = 1",
		"code:keep.go",
		"  package keep",
	)

	blocks := Extract(lines, &Filter{Lang: "go"})

	require.Len(t, blocks, 1)
	assert.Equal(t, "keep.go", blocks[0].Filename)
	assert.Equal(t, []string{"  package keep"}, bodyTexts(blocks[0]))
}

func TestExtractFilterDoesNotChangeFields(t *testing.T) {
	lines := mkLines(
		"code:a.go",
		"  package a",
		"code:b.js",
		"  var b",
		"tail",
	)

	all := Extract(lines, nil)
	only := Extract(lines, &Filter{Filename: "b.js", Lang: "js"})

	require.Len(t, all, 2)
	require.Len(t, only, 1)
	assert.Equal(t, all[1], only[0])
}

func TestExtractIsIdempotent(t *testing.T) {
	lines := mkLines("code:a.py", "  x", "code:b.py", "  y", "z")

	first := Extract(lines, &Filter{Lang: "py"})
	second := Extract(lines, &Filter{Lang: "py"})

	assert.Equal(t, first, second)
}

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		name     string
		filter   *Filter
		filename string
		lang     string
		want     bool
	}{
		{name: "nil filter", filter: nil, filename: "a.go", lang: "go", want: true},
		{name: "empty filter", filter: &Filter{}, filename: "a.go", lang: "go", want: true},
		{name: "lang match", filter: &Filter{Lang: "go"}, filename: "a.go", lang: "go", want: true},
		{name: "lang mismatch", filter: &Filter{Lang: "js"}, filename: "a.go", lang: "go", want: false},
		{name: "filename match", filter: &Filter{Filename: "a.go"}, filename: "a.go", lang: "go", want: true},
		{name: "filename mismatch", filter: &Filter{Filename: "b.go"}, filename: "a.go", lang: "go", want: false},
		{name: "both required", filter: &Filter{Filename: "a.go", Lang: "js"}, filename: "a.go", lang: "go", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.filename, tt.lang))
		})
	}
}

type failingSource struct{ err error }

func (s failingSource) Lines(context.Context) ([]Line, error) {
	return nil, s.err
}

func TestExtractFrom(t *testing.T) {
	t.Run("static source", func(t *testing.T) {
		src := Static(mkLines("code:a.txt", "  hi"))

		blocks, err := ExtractFrom(context.Background(), src, nil)

		require.NoError(t, err)
		require.Len(t, blocks, 1)
		assert.Equal(t, "a.txt", blocks[0].Filename)
	})

	t.Run("resolution failure surfaces", func(t *testing.T) {
		wantErr := errors.New("fetch failed")

		blocks, err := ExtractFrom(context.Background(), failingSource{err: wantErr}, nil)

		assert.Nil(t, blocks)
		assert.ErrorIs(t, err, wantErr)
	})
}

func TestBlockText(t *testing.T) {
	blocks := Extract(mkLines("code:a.txt", "  one", "  two"), nil)

	require.Len(t, blocks, 1)
	assert.Equal(t, "  one\n  two\n", blocks[0].Text())

	empty := &Block{}
	assert.Equal(t, "", empty.Text())
}
