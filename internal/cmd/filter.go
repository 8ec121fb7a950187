package cmd

import (
	"fmt"
	"strings"

	"github.com/MijinkoSD/sbcode/internal/codeblock"
	"github.com/gobwas/glob"
	"github.com/google/shlex"
)

// matchFunc is a post-extraction predicate, used only when the filename
// filter needs glob semantics the inline exact-match filter cannot express.
type matchFunc func(b *codeblock.Block) bool

// buildFilter turns the --lang, --file and --select flags into an inline
// extraction filter plus an optional glob post-pass. A literal filename goes
// into the inline filter so unwanted blocks never collect bodies; a glob
// pattern leaves the filename unconstrained inline and matches afterwards.
func (o *options) buildFilter() error {
	file, lang := o.file, o.lang

	if o.sel != "" {
		selFile, selLang, err := parseSelect(o.sel)
		if err != nil {
			return err
		}

		if selFile != "" {
			file = selFile
		}

		if selLang != "" {
			lang = selLang
		}
	}

	if file == "" && lang == "" {
		o.filter = nil
		o.match = nil

		return nil
	}

	if !strings.ContainsAny(file, `*?[{\`) {
		o.filter = &codeblock.Filter{Filename: file, Lang: lang}
		o.match = nil

		return nil
	}

	pattern, err := glob.Compile(file)
	if err != nil {
		return fmt.Errorf("bad --file pattern %q: %w", file, err)
	}

	o.filter = &codeblock.Filter{Lang: lang}
	o.match = func(b *codeblock.Block) bool {
		return pattern.Match(b.Filename)
	}

	return nil
}

// parseSelect splits a --select value into its file= and lang= entries.
func parseSelect(sel string) (string, string, error) {
	words, err := shlex.Split(sel)
	if err != nil {
		return "", "", fmt.Errorf("bad --select value: %w", err)
	}

	var file, lang string

	for _, word := range words {
		key, value, found := strings.Cut(word, "=")
		if !found {
			return "", "", fmt.Errorf("bad --select entry %q: want key=value", word)
		}

		switch key {
		case "file":
			file = value
		case "lang":
			lang = value
		default:
			return "", "", fmt.Errorf("bad --select key %q: want file or lang", key)
		}
	}

	return file, lang, nil
}

// applyMatch filters blocks through the glob post-pass, if any.
func (o *options) applyMatch(blocks codeblock.Blocks) codeblock.Blocks {
	if o.match == nil {
		return blocks
	}

	var kept codeblock.Blocks

	for _, b := range blocks {
		if o.match(b) {
			kept = append(kept, b)
		}
	}

	return kept
}
