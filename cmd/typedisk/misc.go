package typedisk

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/typedisk/pkg/paths"
)

func newRelCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "rel PATH ROOT",
		Short:   MsgRelShort,
		Args:    cobra.ExactArgs(2),
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			root, err := a.dirArg(args[1])
			if err != nil {
				return err
			}
			target, err := a.dirArg(args[0])
			if err != nil {
				return err
			}

			// Existing directories relativize as directories, anything else
			// as a file.
			var rel string
			isDir, err := a.disk.DirExists(target)
			if err != nil {
				return err
			}
			if isDir {
				r, err := paths.RelativizeDir(target, root)
				if err != nil {
					return err
				}
				rel = r.String()
			} else {
				file, err := a.fileArg(args[0])
				if err != nil {
					return err
				}
				r, err := paths.Relativize(file, root)
				if err != nil {
					return err
				}
				rel = r.String()
			}

			out := cmd.OutOrStdout()
			if format == formatYAML {
				return writeYAML(out, relResult{Path: target.String(), Root: root.String(), Relative: rel})
			}
			_, err = fmt.Fprintf(out, MsgRelativeLine, rel)
			return err
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			rendered, err := a.cfg.Render()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}
