package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func catCmd(opts *options) *cobra.Command {
	var titles bool

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "cat [flags] source",
		Short: "Print code block bodies to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := resolveBlocks(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for i, b := range blocks {
				if titles {
					if i > 0 {
						fmt.Fprintln(out)
					}

					fmt.Fprintf(out, "--- %s (%s) ---\n", b.Filename, b.Lang)
				}

				if _, err := io.WriteString(out, b.Text()); err != nil {
					return err
				}
			}

			return nil
		},

		DisableAutoGenTag: true,
	}

	cmd.Flags().BoolVarP(&titles, "titles", "t", false, "print a header line before each block")

	return cmd
}
