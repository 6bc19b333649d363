package typedisk

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVar(format, "format", formatText, MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{formatText, formatYAML}, cobra.ShellCompDirectiveNoFileComp
	})
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatYAML:
		return nil
	default:
		return fmt.Errorf(MsgErrUnknownFmt, format)
	}
}

// writeYAML encodes v with two-space indentation.
func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// listing is the yaml shape of ls.
type listing struct {
	Root        string   `yaml:"root"`
	Files       []string `yaml:"files,omitempty"`
	Directories []string `yaml:"directories,omitempty"`
}

// digestResult is the yaml shape of digest.
type digestResult struct {
	Path      string `yaml:"path"`
	Algorithm string `yaml:"algorithm"`
	Digest    string `yaml:"digest"`
}

// relResult is the yaml shape of rel.
type relResult struct {
	Path     string `yaml:"path"`
	Root     string `yaml:"root"`
	Relative string `yaml:"relative"`
}
