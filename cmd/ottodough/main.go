// OttoDough: a sourdough ratio calculator with a few site-building helpers.
//
// Usage:
//
//	ottodough [calc] [--verbose] [--quiet]
//	ottodough presets
//	ottodough color <hex> [--lang Odin] [--alpha 255] [--name NAME]
//	ottodough palette {list,create,rename,delete,add,remove}
//	ottodough og [--content DIR] [--out DIR] [--font FILE]
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottodough/internal/config"
	"github.com/hammamikhairi/ottodough/internal/logger"
)

var (
	// Global flags
	configPath string
	verbose    bool
	quiet      bool
	logFile    string

	cfg     *config.Config
	log     *logger.Logger
	logSink io.Closer

	restoreStdLog func()
)

var rootCmd = &cobra.Command{
	Use:   "ottodough",
	Short: "Sourdough ratio calculator",
	Long: `OttoDough keeps flour, water, starter and salt in baker's percentages.

Edit any mass or ratio and everything else follows. Run without a
subcommand to start the interactive calculator.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c

		level := logger.ParseLevel(cfg.Log.Level)
		if verbose {
			level = logger.LevelVerbose
		}
		if quiet {
			level = logger.LevelOff
		}

		file := cfg.Log.File
		if cmd.Flags().Changed("log-file") {
			file = logFile
		}
		log = logger.New(level, openLogOutput(file))
		restoreStdLog = log.RedirectStdLog()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if restoreStdLog != nil {
			restoreStdLog()
		}
		if log != nil {
			_ = log.Sync()
		}
		if logSink != nil {
			_ = logSink.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./ottodough.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose/debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "disable all logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "file to write logs to (use \"stderr\" to log to console)")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(colorCmd)
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(ogCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// openLogOutput returns the log destination. Logs go to a file by default
// so the REPL stays clean; "stderr" or an empty path logs to the console.
func openLogOutput(path string) io.Writer {
	if path == "" || path == "stderr" {
		return os.Stderr
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr
	}
	logSink = f
	return f
}
