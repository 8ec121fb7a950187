package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MijinkoSD/sbcode/internal/codeblock"
	"github.com/spf13/cobra"
)

// writeFS is the writable filesystem surface dump needs. The real
// implementation wraps the os package; tests use memoryfs.
type writeFS interface {
	MkdirAll(path string, perm fs.FileMode) error
	WriteFile(path string, data []byte, perm fs.FileMode) error
}

type osFS struct{}

func (osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (osFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func dumpCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "dump [flags] source",
		Short: "Write each code block to a file named after it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := resolveBlocks(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}

			return dumpBlocks(blocks, opts.dir, osFS{}, opts.status)
		},

		DisableAutoGenTag: true,
	}

	dirFlag(cmd, opts)
	quietFlag(cmd, opts)

	return cmd
}

func dumpBlocks(blocks codeblock.Blocks, dir string, fsys writeFS, status statusFunc) error {
	for i, b := range blocks {
		// Block titles come from the page; a name like ../x must not
		// escape the target directory.
		if !filepath.IsLocal(filepath.FromSlash(b.Filename)) {
			return fmt.Errorf("unsafe block filename %q", b.Filename)
		}

		target := filepath.Join(dir, filepath.FromSlash(b.Filename))

		if err := fsys.MkdirAll(filepath.Dir(target), dirMode); err != nil {
			return err
		}

		if err := fsys.WriteFile(target, []byte(b.Text()), fileMode); err != nil {
			return err
		}

		status("wrote block %d (%s) to %s\n", i, b.Lang, target)
	}

	return nil
}
