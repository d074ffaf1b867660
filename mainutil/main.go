package mainutil

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/authenticvision/filetools/buildinfo"
	"github.com/authenticvision/filetools/configutil"
	"github.com/authenticvision/filetools/logutil"
	"github.com/spf13/cobra"
)

// Hook runs before any sub-command, after the process logger has been installed.
type Hook func(cmd *cobra.Command, args []string) error

// RootCommand turns cmdTmpl into a root command with persistent --log-level and --log-format
// flags bound to log. Before any sub-command runs, the process logger is installed, then setup
// runs, then the PersistentPreRunE or PersistentPreRun already set on cmdTmpl.
func RootCommand(cmdTmpl cobra.Command, log *logutil.Config, setup Hook) *cobra.Command {
	cmd := &cmdTmpl
	configutil.BindFlags(cmd.PersistentFlags(), "log-", log)

	next := cmd.PersistentPreRunE
	if next == nil && cmd.PersistentPreRun != nil {
		preRun := cmd.PersistentPreRun
		next = func(cmd *cobra.Command, args []string) error {
			preRun(cmd, args)
			return nil
		}
	}
	cmd.PersistentPreRun = nil
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := setupContext(log, cmd); err != nil {
			return err
		}
		if setup != nil {
			if err := setup(cmd, args); err != nil {
				return err
			}
		}
		if next != nil {
			return next(cmd, args)
		}
		return nil
	}

	cmd.SilenceErrors = true // for logging them ourselves via slog
	cmd.SilenceUsage = true

	if cmd.Version == "" {
		cmd.Version = buildinfo.String()
	}

	return cmd
}

func setupContext(cfg *logutil.Config, cmd *cobra.Command) error {
	// logutil replaces slog.Default() and the older log package's output
	if err := cfg.InstallForProcess(); err != nil {
		return err
	}
	log := slog.Default()

	// replaced log handler must be applied to current and possibly separate root command
	cmd.SetContext(logutil.WithLogContext(cmd.Context(), log))
	if rootCmd := cmd.Root(); rootCmd != cmd {
		rootCmd.SetContext(logutil.WithLogContext(rootCmd.Context(), log))
		// func Run will now log command failure in the requested format
	}

	LogVersion(cmd)
	return nil
}

// Run executes the given command and exits with an appropriate status code.
// The command's context is canceled upon SIGINT or SIGTERM.
func Run(cmd *cobra.Command) {
	os.Exit(Execute(cmd))
}

// Execute is Run without the exit. It returns the process status code.
func Execute(cmd *cobra.Command) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logutil.WithLogContext(ctx, slog.Default()) // usually unused, hit with e.g. --help
	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		ctx := cmd.Context() // might be different from ctx set up above
		if ctx == nil {
			ctx = context.Background()
		}
		log := logutil.FromContext(ctx)
		log.ErrorContext(ctx, "command failed", logutil.Err(err))
		return 1
	}
	return 0
}

// LogVersion logs the application's version embedded via buildinfo at debug level.
func LogVersion(cmd *cobra.Command) {
	attrs := []any{
		slog.String("git_commit", buildinfo.GitCommit),
		slog.Any("git_commit_date", buildinfo.GitCommitDate),
	}
	if buildinfo.Version != "" {
		attrs = append(attrs, slog.String("version", buildinfo.Version))
	}

	ctx := cmd.Context()
	log := logutil.FromContext(ctx)
	log.DebugContext(ctx, "starting "+cmd.Root().DisplayName(), attrs...)
}
