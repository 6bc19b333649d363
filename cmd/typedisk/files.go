package typedisk

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/typedisk/internal/hashutil"
)

func newWriteCmd(a *app) *cobra.Command {
	var readOnly bool

	cmd := &cobra.Command{
		Use:     "write FILE",
		Short:   MsgWriteShort,
		Example: MsgWriteExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "files",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := a.fileArg(args[0])
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if readOnly {
				data, err := io.ReadAll(in)
				if err != nil {
					return fmt.Errorf(MsgErrReadStdin, err)
				}
				err = a.disk.WriteAllBytesRO(file, data)
				if err != nil {
					return err
				}
			} else {
				err = a.disk.WriteStream(file, func(w io.Writer) error {
					_, err := io.Copy(w, in)
					return err
				})
				if err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgWritten, a.styles.Render("FilePath", file.String()))
			return err
		},
	}

	cmd.Flags().BoolVar(&readOnly, "readonly", false, MsgFlagReadOnly)
	return cmd
}

func newReadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "read FILE",
		Short:   MsgReadShort,
		Args:    cobra.ExactArgs(1),
		GroupID: "files",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := a.fileArg(args[0])
			if err != nil {
				return err
			}
			data, err := a.disk.ReadAllBytes(file)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "copy SRC DST",
		Short:   MsgCopyShort,
		Args:    cobra.ExactArgs(2),
		GroupID: "files",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.fileArg(args[0])
			if err != nil {
				return err
			}

			// An existing directory as destination keeps the source name.
			dir, err := a.dirArg(args[1])
			if err != nil {
				return err
			}
			isDir, err := a.disk.DirExists(dir)
			if err != nil {
				return err
			}
			if isDir {
				dst, err := a.disk.CopyToDir(src, dir)
				if err != nil {
					return err
				}
				return a.printCopied(cmd, src.String(), dst.String())
			}

			dst, err := a.fileArg(args[1])
			if err != nil {
				return err
			}
			if err := a.disk.CopyFile(src, dst); err != nil {
				return err
			}
			return a.printCopied(cmd, src.String(), dst.String())
		},
	}
}

func (a *app) printCopied(cmd *cobra.Command, src, dst string) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgCopied,
		a.styles.Render("FilePath", src), a.styles.Render("FilePath", dst))
	return err
}

func newUniqueCmd(a *app) *cobra.Command {
	var create bool

	cmd := &cobra.Command{
		Use:     "unique FILE",
		Short:   MsgUniqueShort,
		Args:    cobra.ExactArgs(1),
		GroupID: "files",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := a.fileArg(args[0])
			if err != nil {
				return err
			}

			find := a.disk.FindUnique
			if create {
				find = a.disk.CreateUnique
			}
			unique, err := find(file)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgUniqueLine, unique.String())
			return err
		},
	}

	cmd.Flags().BoolVar(&create, "create", false, MsgFlagCreate)
	return cmd
}

func newDigestCmd(a *app) *cobra.Command {
	var (
		algo   string
		format string
	)

	cmd := &cobra.Command{
		Use:     "digest FILE",
		Short:   MsgDigestShort,
		Args:    cobra.ExactArgs(1),
		GroupID: "files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			newHash, err := hashutil.Lookup(algo)
			if err != nil {
				return err
			}
			algo = hashutil.CanonicalName(algo)
			file, err := a.fileArg(args[0])
			if err != nil {
				return err
			}

			sum, err := a.disk.ContentDigest(file, newHash)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatYAML {
				return writeYAML(out, digestResult{Path: file.String(), Algorithm: algo, Digest: sum})
			}
			_, err = fmt.Fprintf(out, MsgDigestLine, a.styles.Render("Digest", sum), file.String())
			return err
		},
	}

	cmd.Flags().StringVar(&algo, "algo", "sha256", MsgFlagAlgo)
	_ = cmd.RegisterFlagCompletionFunc("algo", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return hashutil.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	addFormatFlag(cmd, &format)
	return cmd
}
