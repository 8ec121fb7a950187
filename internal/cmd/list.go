package cmd

import (
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

func listCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "list [flags] source",
		Aliases: []string{"ls"},
		Short:   "List code blocks in a page or Markdown file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := resolveBlocks(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}

			tbl := table.New("#", "FILE", "LANG", "LINES").WithWriter(cmd.OutOrStdout())

			for i, b := range blocks {
				tbl.AddRow(i, b.Filename, b.Lang, len(b.Body))
			}

			tbl.Print()

			return nil
		},

		DisableAutoGenTag: true,
	}

	return cmd
}
