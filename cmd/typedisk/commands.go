package typedisk

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/typedisk/internal/version"
	"github.com/arthur-debert/typedisk/pkg/cobrax/topics"
	"github.com/arthur-debert/typedisk/pkg/config"
	"github.com/arthur-debert/typedisk/pkg/disk"
	"github.com/arthur-debert/typedisk/pkg/logging"
	"github.com/arthur-debert/typedisk/pkg/paths"
	"github.com/arthur-debert/typedisk/pkg/ui/styles"
)

//go:embed topics
var topicFiles embed.FS

// app carries the state every subcommand shares once the root command's
// pre-run has loaded configuration.
type app struct {
	configPath string
	verbosity  int

	cfg    *config.Config
	disk   *disk.Disk
	mode   paths.CaseMode
	cwd    paths.AbsDir
	styles *styles.Styles
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "typedisk",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "files",
		Title: "FILE COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "dirs",
		Title: "DIRECTORY COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newWriteCmd(a))
	rootCmd.AddCommand(newReadCmd(a))
	rootCmd.AddCommand(newCopyCmd(a))
	rootCmd.AddCommand(newUniqueCmd(a))
	rootCmd.AddCommand(newDigestCmd(a))
	rootCmd.AddCommand(newCopyDirCmd(a))
	rootCmd.AddCommand(newRmCmd(a))
	rootCmd.AddCommand(newEmptyCmd(a))
	rootCmd.AddCommand(newLsCmd(a))
	rootCmd.AddCommand(newRelCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	initTopics(rootCmd)

	return rootCmd
}

// initTopics installs the help command that also serves the embedded topics.
func initTopics(rootCmd *cobra.Command) {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return
	}

	renderer := &topics.GlamourRenderer{Style: "notty"}
	if styles.ColorEnabled(os.Stdout) {
		renderer = topics.NewGlamourRenderer()
	}
	if err := topics.InitializeWithOptions(rootCmd, sub, topics.Options{
		Extensions: []string{".md"},
		Renderer:   renderer,
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
}

// setup loads configuration, configures logging and builds the Disk the
// subcommands operate through.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath, nil)
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}

	verbosity := a.verbosity
	if cfg.Log.Verbosity > verbosity {
		verbosity = cfg.Log.Verbosity
	}
	logging.SetupLogger(verbosity)
	logging.LogCommand(cmd.CommandPath(), args)

	mode, err := cfg.CaseMode()
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	cwd, err := paths.CurrentDirectory()
	if err != nil {
		return fmt.Errorf(MsgErrCurrentDir, err)
	}
	if mode != cwd.Mode() {
		if cwd, err = paths.NewAbsDirMode(cwd.String(), mode); err != nil {
			return fmt.Errorf(MsgErrCurrentDir, err)
		}
	}

	st, err := styles.New(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.mode = mode
	a.cwd = cwd
	a.styles = st
	a.disk = disk.NewFromConfig(cfg)

	log.Debug().
		Str("command", cmd.Name()).
		Str("cwd", cwd.String()).
		Str("case", mode.String()).
		Msg("Command started")
	return nil
}

// absolute turns a CLI argument into a canonical absolute path string,
// resolving relative arguments against the current directory.
func (a *app) absolute(arg string) string {
	p := paths.Normalize(arg)
	if !filepath.IsAbs(p) {
		p = filepath.Join(a.cwd.String(), p)
	}
	return filepath.Clean(p)
}

func (a *app) fileArg(arg string) (paths.AbsFile, error) {
	return paths.NewAbsFileMode(a.absolute(arg), a.mode)
}

func (a *app) dirArg(arg string) (paths.AbsDir, error) {
	return paths.NewAbsDirMode(a.absolute(arg), a.mode)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionLine, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
