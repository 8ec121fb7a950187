package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/MijinkoSD/sbcode/internal/codeblock"
	"github.com/MijinkoSD/sbcode/internal/markdown"
	"github.com/MijinkoSD/sbcode/internal/scrapbox"
)

var errMissingProject = fmt.Errorf("no project given: use project/title or --project")

// resolveBlocks loads the blocks of a SOURCE argument: a local Markdown
// file when the argument names one on disk, otherwise a Scrapbox page.
func resolveBlocks(ctx context.Context, opts *options, arg string) (codeblock.Blocks, error) {
	if isMarkdownFile(arg) {
		src, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}

		blocks, err := markdown.Extract(src, opts.filter)
		if err != nil {
			return nil, err
		}

		return opts.applyMatch(blocks), nil
	}

	project, title, err := splitPage(arg, opts.project)
	if err != nil {
		return nil, err
	}

	ref := scrapbox.PageRef{
		Client:  scrapbox.New(opts.baseURL, opts.session),
		Project: project,
		Title:   title,
	}

	blocks, err := codeblock.ExtractFrom(ctx, ref, opts.filter)
	if err != nil {
		return nil, err
	}

	return opts.applyMatch(blocks), nil
}

func isMarkdownFile(arg string) bool {
	if !strings.HasSuffix(strings.ToLower(arg), ".md") {
		return false
	}

	info, err := os.Stat(arg)

	return err == nil && !info.IsDir()
}

// splitPage resolves a page argument to project and title. Titles may
// themselves contain slashes, so only the first one separates the project.
func splitPage(arg, defaultProject string) (string, string, error) {
	if project, title, found := strings.Cut(arg, "/"); found && project != "" && title != "" {
		return project, title, nil
	}

	if defaultProject == "" {
		return "", "", fmt.Errorf("%q: %w", arg, errMissingProject)
	}

	return defaultProject, arg, nil
}
