package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toolbox"
	"github.com/vango-dev/toolbox/internal/config"
	"github.com/vango-dev/toolbox/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	verbose    bool
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "toolbox",
		Short: "Progressive enhancement helpers for server-rendered HTML",
		Long: `toolbox inspects and serves the conventions used by progressively
enhanced pages:

  • data-component mount points, their props and refs
  • social share links
  • user agent detection`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default: toolbox.json or toolbox.yaml in the working directory)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		scanCmd(flags),
		shareCmd(flags),
		metaCmd(flags),
		detectCmd(),
		serveCmd(flags),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

// loadConfig reads the config file named by --config, or the working
// directory's config file when present, or the defaults.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.Load(".")
		if errors.HasCode(err, "E101") {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newKit(flags *globalFlags, stderr io.Writer, opts ...toolbox.Option) (*toolbox.Kit, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	base := []toolbox.Option{
		toolbox.WithConfig(cfg),
		toolbox.WithLogger(cfg.Logger(stderr)),
	}
	return toolbox.New(append(base, opts...)...)
}

// readInput reads the named file, or stdin when name is "-".
func readInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.New("E120").
			WithDetail(fmt.Sprintf("cannot open %s", name)).
			Wrap(err)
	}
	return f, nil
}
