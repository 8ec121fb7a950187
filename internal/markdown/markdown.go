// Package markdown maps fenced code blocks in a Markdown document onto the
// same block shape the Scrapbox extractor produces, so every command can
// read local .md files as well as pages.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/MijinkoSD/sbcode/internal/codeblock"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Extract parses source and returns its fenced code blocks, filtered the
// same way the line extractor filters. Fences delimit blocks explicitly, so
// Next is always nil and body lines carry no IDs.
func Extract(source []byte, filter *codeblock.Filter) (codeblock.Blocks, error) {
	parser := goldmark.DefaultParser()
	reader := text.NewReader(source)
	root := parser.Parse(reader).OwnerDocument()

	var (
		blocks codeblock.Blocks
		index  int
	)

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb := asFencedCodeBlock(node, entering)
		if fcb == nil {
			return ast.WalkContinue, nil
		}

		block, berr := extractBlock(fcb, source, index)
		if berr != nil {
			return ast.WalkContinue, berr
		}

		index++

		if filter.Match(block.Filename, block.Lang) {
			blocks = append(blocks, block)
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return blocks, nil
}

func asFencedCodeBlock(node ast.Node, entering bool) *ast.FencedCodeBlock {
	if entering || node.Kind() != ast.KindFencedCodeBlock {
		return nil
	}

	if fcb, ok := node.(*ast.FencedCodeBlock); ok {
		return fcb
	}

	return nil
}

func extractBlock(fcb *ast.FencedCodeBlock, source []byte, index int) (*codeblock.Block, error) {
	lang, file, err := extractInfo(fcb, source)
	if err != nil {
		return nil, err
	}

	if file == "" {
		file = defaultFilename(lang, index)
	}

	block := &codeblock.Block{
		Filename: file,
		Lang:     lang,
		Title:    codeblock.Line{Text: fenceTitle(file, lang)},
		Body:     extractBody(fcb, source),
	}

	return block, nil
}

func extractBody(fcb *ast.FencedCodeBlock, source []byte) []codeblock.Line {
	var body []codeblock.Line

	lines := fcb.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)

		lineText := string(bytes.TrimRight(seg.Value(source), "\r\n"))
		body = append(body, codeblock.Line{Text: lineText})
	}

	return body
}

// defaultFilename names blocks whose info string has no file=... entry,
// mirroring how untitled blocks would be dumped to disk.
func defaultFilename(lang string, index int) string {
	if lang == "" {
		return fmt.Sprintf("block_%d.txt", index)
	}

	return fmt.Sprintf("block_%d.%s", index, strings.ToLower(lang))
}

func fenceTitle(file, lang string) string {
	return fmt.Sprintf("code:%s(%s)", file, lang)
}
