package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MijinkoSD/sbcode/internal/codeblock"
	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

var errMissingCommand = fmt.Errorf("command is required after '--'")

func execCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "exec [flags] source -- command",
		Aliases: []string{"e"},
		Short:   "Run a shell command once per code block",
		Long: `Writes each matching code block to a file in a working directory and runs
the given shell command once per block. The command may use placeholders:

  {}       path of the block's file
  {file}   the block's filename
  {lang}   the block's language
  {index}  zero-based block index
  {dir}    the working directory`,
		Args: checkExecArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scr, source := script(cmd, args)
			if len(scr) == 0 {
				return errMissingCommand
			}

			if !cmd.Flag("dir").Changed {
				dir, err := os.MkdirTemp(".", "sbcode-exec-")
				if err != nil {
					return err
				}

				opts.dir = dir

				if !opts.keep {
					defer os.RemoveAll(dir)
				}
			}

			blocks, err := resolveBlocks(cmd.Context(), opts, source)
			if err != nil {
				return err
			}

			return execBlocks(cmd.Context(), blocks, opts, scr, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},

		DisableAutoGenTag: true,
	}

	dirFlag(cmd, opts)
	quietFlag(cmd, opts)

	cmd.Flags().BoolVarP(&opts.keep, "keep", "k", false, "don't remove the temporary directory")

	return cmd
}

// checkExecArgs wants exactly one source argument before the dash.
func checkExecArgs(cmd *cobra.Command, args []string) error {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		dash = len(args)
	}

	if dash != 1 {
		return fmt.Errorf("expected one source argument, got %d", dash)
	}

	return nil
}

func script(cmd *cobra.Command, args []string) (string, string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return "", args[0]
	}

	return strings.Join(args[dash:], " "), args[0]
}

func execBlocks(ctx context.Context, blocks codeblock.Blocks, opts *options, scr string, stdout, stderr io.Writer) error {
	absDir, err := filepath.Abs(opts.dir)
	if err != nil {
		return err
	}

	var failures int

	for i, b := range blocks {
		target := filepath.Join(absDir, tempFilename(b, i))

		if err := os.WriteFile(target, []byte(b.Text()), fileMode); err != nil {
			return err
		}

		expanded := expandCommand(scr, b, i, target, absDir)

		opts.status("--- block %d (%s, %s) ---\n", i, b.Filename, b.Lang)

		exitCode, execErr := runCommand(ctx, expanded, absDir, stdout, stderr)
		if execErr != nil {
			return execErr
		}

		if exitCode != 0 {
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d block(s) failed", failures)
	}

	return nil
}

func tempFilename(b *codeblock.Block, index int) string {
	return fmt.Sprintf("%d_%s", index, filepath.Base(filepath.FromSlash(b.Filename)))
}

func expandCommand(scr string, b *codeblock.Block, index int, target, dir string) string {
	expanded := strings.ReplaceAll(scr, "{}", target)
	expanded = strings.ReplaceAll(expanded, "{file}", b.Filename)
	expanded = strings.ReplaceAll(expanded, "{lang}", b.Lang)
	expanded = strings.ReplaceAll(expanded, "{index}", fmt.Sprint(index))
	expanded = strings.ReplaceAll(expanded, "{dir}", dir)

	return expanded
}

func runCommand(ctx context.Context, command, dir string, stdout, stderr io.Writer) (int, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return -1, err
	}

	runner, err := interp.New(interp.Dir(dir), interp.StdIO(os.Stdin, stdout, stderr))
	if err != nil {
		return -1, err
	}

	err = runner.Run(ctx, file)
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return int(status), nil
		}

		return -1, err
	}

	return 0, nil
}
