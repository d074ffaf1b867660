package main

import (
	"log/slog"

	"github.com/authenticvision/filetools/bsize"
	"github.com/authenticvision/filetools/configutil"
	"github.com/authenticvision/filetools/logutil"
	"github.com/authenticvision/filetools/mainutil"
	"github.com/spf13/cobra"
)

// Config is read from the --config file and FILETOOLS_* environment variables. Flags given
// on the command line take precedence over both.
type Config struct {
	Locale Locale     `yaml:"locale" env:"FILETOOLS_LOCALE" env-default:"en-US" env-description:"locale for the decimal separator of sizes" usage:"locale for the decimal separator of sizes, e.g. de-DE"`
	Scan   ScanConfig `yaml:"scan" env-prefix:"FILETOOLS_SCAN_"`
}

type ScanConfig struct {
	MinSize bsize.Bytes `yaml:"min_size" env:"MIN_SIZE" env-description:"skip smaller files" usage:"skip files smaller than this, e.g. 4M or 10MB"`
	Output  string      `yaml:"output" env:"OUTPUT" env-default:"text" env-description:"output format of scan" usage:"text, json or yaml"`
}

type app struct {
	log        logutil.Config
	configPath string
	cfg        Config
}

func newRootCommand() *cobra.Command {
	a := &app{log: logutil.DefaultConfig}
	cmd := mainutil.RootCommand(cobra.Command{
		Use:   "filetools",
		Short: "Read time stamps from file names and convert byte sizes",
		Long: "Read time stamps from file names and convert byte sizes.\n\n" +
			configutil.Describe[Config](),
	}, &a.log, a.setup)
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "read configuration from a YAML, JSON or TOML file")
	configutil.BindFlags(flags, "", &a.cfg)
	cmd.AddCommand(
		a.newStampCommand(),
		a.newSizeCommand(),
		a.newScanCommand(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	loaded, err := configutil.Load[Config](a.configPath)
	if err != nil {
		return logutil.NewError(err, "load configuration", slog.String("path", a.configPath))
	}
	configutil.Overlay(cmd.Flags(), "", &a.cfg, loaded)
	ctx := cmd.Context()
	logutil.FromContext(ctx).DebugContext(ctx, "configuration loaded",
		slog.String("locale", string(a.cfg.Locale)),
		slog.String("min_size", a.cfg.Scan.MinSize.String()),
		slog.String("output", a.cfg.Scan.Output))
	return nil
}
