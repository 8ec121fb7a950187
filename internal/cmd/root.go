// Package cmd implements the sbcode command line interface.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/MijinkoSD/sbcode/internal/codeblock"
	"github.com/MijinkoSD/sbcode/internal/config"
	"github.com/spf13/cobra"
)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

type statusFunc func(format string, args ...interface{})

// options carries flag and config state shared by all subcommands.
type options struct {
	lang    string
	file    string
	sel     string
	quiet   bool
	dir     string
	keep    bool
	baseURL string
	session string
	project string

	status statusFunc
	filter *codeblock.Filter
	match  matchFunc
}

func (o *options) createStatus(w io.Writer) {
	if o.quiet {
		o.status = func(string, ...interface{}) {}

		return
	}

	o.status = func(format string, args ...interface{}) {
		fmt.Fprintf(w, format, args...)
	}
}

// applyConfig fills in settings not overridden on the command line.
func (o *options) applyConfig(cfg config.Config) {
	if o.baseURL == "" {
		o.baseURL = cfg.BaseURL
	}

	if o.session == "" {
		o.session = cfg.Session
	}

	if o.project == "" {
		o.project = cfg.Project
	}
}

// Execute runs the CLI with the given arguments and exits the process with
// a non-zero status on failure.
func Execute(args []string, stdout, stderr io.Writer) {
	root := rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "sbcode",
		Short: "Extract code blocks from Scrapbox pages and Markdown files",
		Long: `sbcode reads code blocks out of Scrapbox pages (code:filename(lang)
notation) or local Markdown files and lists, prints, dumps or executes them.

A SOURCE argument is either project/title for a Scrapbox page, a bare page
title when a default project is configured, or a path to an existing .md
file.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.createStatus(cmd.ErrOrStderr())

			cfg, err := config.Init()
			if err != nil {
				return err
			}

			opts.applyConfig(cfg)

			return opts.buildFilter()
		},

		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.lang, "lang", "l", "", "only blocks with this language")
	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "only blocks with this filename (glob allowed)")
	cmd.PersistentFlags().StringVar(&opts.sel, "select", "", "filter as key=value words, e.g. 'lang=go file=main.go'")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Scrapbox API base URL")
	cmd.PersistentFlags().StringVar(&opts.session, "session", "", "connect.sid cookie for private projects")
	cmd.PersistentFlags().StringVarP(&opts.project, "project", "p", "", "default Scrapbox project")

	cmd.AddCommand(listCmd(opts), catCmd(opts), dumpCmd(opts), execCmd(opts))

	return cmd
}

func quietFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress status output")
}

func dirFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "target directory")
}
