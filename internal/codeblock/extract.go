package codeblock

import (
	"context"
	"strings"
)

// Block is one extracted code block. Title is the `code:` line that opened
// it, Body holds the block's lines with residual indentation relative to the
// title, and Next is the line that closed the block, or nil when the block
// ran to the end of the page.
type Block struct {
	Filename string
	Lang     string
	Title    Line
	Body     []Line
	Next     *Line
}

// Blocks is an ordered sequence of extracted blocks.
type Blocks []*Block

// Text returns the block's body as a single string with one body line per
// output line, ending with a newline unless the body is empty.
func (b *Block) Text() string {
	if len(b.Body) == 0 {
		return ""
	}

	var sb strings.Builder

	for _, line := range b.Body {
		sb.WriteString(line.Text)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Filter restricts which blocks Extract collects. An empty field imposes no
// constraint; both non-empty fields must match exactly. A nil *Filter
// collects every block.
type Filter struct {
	Filename string
	Lang     string
}

// Match reports whether a block with the given filename and language passes
// the filter.
func (f *Filter) Match(filename, lang string) bool {
	if f == nil {
		return true
	}

	if f.Filename != "" && f.Filename != filename {
		return false
	}

	if f.Lang != "" && f.Lang != lang {
		return false
	}

	return true
}

// Extract runs a single forward pass over lines and returns the code blocks
// that pass the filter, in page order. Filtering happens when a title line is
// recognized, so rejected blocks never accumulate bodies.
//
// The pass never skips a line: a terminator is re-examined in the same
// iteration as a possible new title, since a title line is always indented
// at most as deep as the body it opened and therefore closes it.
func Extract(lines []Line, filter *Filter) Blocks {
	var blocks Blocks

	var (
		title *codeTitle
		open  *Block
	)

	for i := range lines {
		line := lines[i]

		if title != nil {
			body, ok := bodyText(line.Text, title.indent)
			if ok {
				if open != nil {
					entry := line
					entry.Text = body
					open.Body = append(open.Body, entry)
				}

				continue
			}

			if open != nil {
				next := line
				open.Next = &next
				open = nil
			}

			title = nil
		}

		parsed, ok := parseTitle(line.Text)
		if !ok {
			continue
		}

		title = &parsed

		if filter.Match(parsed.fileName, parsed.lang) {
			open = &Block{
				Filename: parsed.fileName,
				Lang:     parsed.lang,
				Title:    line,
			}
			blocks = append(blocks, open)
		}
	}

	return blocks
}

// Source supplies the ordered line sequence of a document. Resolution may
// involve I/O; Extract itself never does.
type Source interface {
	Lines(ctx context.Context) ([]Line, error)
}

// Static is an already materialized line sequence.
type Static []Line

// Lines implements Source.
func (s Static) Lines(context.Context) ([]Line, error) {
	return []Line(s), nil
}

// ExtractFrom resolves src exactly once and extracts its code blocks. A
// resolution failure is returned as-is, so a missing document remains
// distinguishable from a document with no code blocks.
func ExtractFrom(ctx context.Context, src Source, filter *Filter) (Blocks, error) {
	lines, err := src.Lines(ctx)
	if err != nil {
		return nil, err
	}

	return Extract(lines, filter), nil
}
