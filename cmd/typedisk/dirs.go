package typedisk

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/typedisk/pkg/disk"
	"github.com/arthur-debert/typedisk/pkg/paths"
)

func newCopyDirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "copydir SRC DST",
		Short:   MsgCopyDirShort,
		Args:    cobra.ExactArgs(2),
		GroupID: "dirs",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.dirArg(args[0])
			if err != nil {
				return err
			}
			dst, err := a.dirArg(args[1])
			if err != nil {
				return err
			}

			n, err := a.disk.CopyDirectory(src, dst)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgCopiedDir, n, a.styles.Render("DirPath", dst.String()))
			return err
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	var (
		force   bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:     "rm DIR",
		Short:   MsgRmShort,
		Long:    MsgRmLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "dirs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if timeout < 0 {
				return fmt.Errorf(MsgErrInvalidDelay)
			}
			dir, err := a.dirArg(args[0])
			if err != nil {
				return err
			}

			if force {
				err = a.disk.DeleteDirReadOnly(dir)
			} else {
				ctx := cmd.Context()
				if timeout > 0 {
					var cancel context.CancelFunc
					ctx, cancel = context.WithTimeout(ctx, timeout)
					defer cancel()
				}
				err = a.disk.DeleteDirContext(ctx, dir)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgDeleted, a.styles.Render("DirPath", dir.String()))
			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	cmd.Flags().DurationVar(&timeout, "timeout", 0, MsgFlagTimeout)
	return cmd
}

func newEmptyCmd(a *app) *cobra.Command {
	var preserveVCS bool

	cmd := &cobra.Command{
		Use:     "empty DIR",
		Short:   MsgEmptyShort,
		Args:    cobra.ExactArgs(1),
		GroupID: "dirs",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.dirArg(args[0])
			if err != nil {
				return err
			}
			if err := a.disk.EmptyDirectory(dir, preserveVCS); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgEmptied, a.styles.Render("DirPath", dir.String()))
			return err
		},
	}

	cmd.Flags().BoolVar(&preserveVCS, "preserve-vcs", false, MsgFlagPreserveVCS)
	return cmd
}

func newLsCmd(a *app) *cobra.Command {
	var (
		pattern   string
		recursive bool
		dirs      bool
		format    string
	)

	cmd := &cobra.Command{
		Use:     "ls [DIR]",
		Short:   MsgLsShort,
		Example: MsgLsExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "dirs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			root := a.cwd
			if len(args) == 1 {
				var err error
				if root, err = a.dirArg(args[0]); err != nil {
					return err
				}
			}

			opts := []disk.ListOption{disk.WithPattern(pattern)}
			if recursive {
				opts = append(opts, disk.Recursive())
			}

			result := listing{Root: root.String()}
			if dirs {
				for dir, err := range a.disk.ListDirectories(root, opts...) {
					if err != nil {
						return err
					}
					rel, err := paths.RelativizeDir(dir, root)
					if err != nil {
						return err
					}
					result.Directories = append(result.Directories, rel.String())
				}
			} else {
				for file, err := range a.disk.ListFiles(root, opts...) {
					if err != nil {
						return err
					}
					rel, err := paths.Relativize(file, root)
					if err != nil {
						return err
					}
					result.Files = append(result.Files, rel.String())
				}
			}

			out := cmd.OutOrStdout()
			if format == formatYAML {
				return writeYAML(out, result)
			}

			if len(result.Files) == 0 && len(result.Directories) == 0 {
				_, err := fmt.Fprintln(out, a.styles.Render("Muted", MsgNoEntries))
				return err
			}
			for _, name := range result.Files {
				if _, err := fmt.Fprintln(out, a.styles.Render("FilePath", name)); err != nil {
					return err
				}
			}
			for _, name := range result.Directories {
				if _, err := fmt.Fprintln(out, a.styles.Render("DirPath", name)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "*", MsgFlagPattern)
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, MsgFlagRecursive)
	cmd.Flags().BoolVarP(&dirs, "dirs", "d", false, MsgFlagDirs)
	addFormatFlag(cmd, &format)
	return cmd
}
