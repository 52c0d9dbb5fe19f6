// Command accgen generates accessor methods from a declaration file.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goversion "github.com/caarlos0/go-version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/diag"
)

var (
	version   = "0.0.1"
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""
)

// errReported marks a failure whose diagnostics were already printed.
var errReported = errors.New("errors reported")

// options are the settings shared by every subcommand, resolved from flags,
// ACCGEN_* environment variables and an optional .accgen config file.
type options struct {
	Format    string   `mapstructure:"format"`
	Output    string   `mapstructure:"output"`
	Color     bool     `mapstructure:"color"`
	Debug     bool     `mapstructure:"debug"`
	LogFile   string   `mapstructure:"log-file"`
	Templates []string `mapstructure:"template"`
}

var (
	opts       options
	configFile string
	logCloser  func()
)

var rootCmd = &cobra.Command{
	Use:           config.Application,
	Short:         config.Description,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadOptions(cmd); err != nil {
			return err
		}
		return setupLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a settings file. Defaults to .accgen.{yaml,toml} in the working directory.")
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("log-file", "", "Path to a file where logs should be written. If empty, logs go to stderr.")
	flags.Bool("color", true, "Colorize diagnostics")

	rootCmd.AddCommand(generateCmd, checkCmd, versionCmd)
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			diag.NewPrinter(os.Stderr, opts.Color).Print(err)
		}
		os.Exit(1)
	}
}

// loadOptions binds the flags of cmd and resolves opts.
func loadOptions(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix("ACCGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("." + config.Application)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read settings: %w", err)
		}
	}
	if err := v.Unmarshal(&opts); err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}
	slog.Debug("settings loaded", "file", v.ConfigFileUsed())
	return nil
}

func setupLogging() error {
	logWriter := os.Stderr
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logWriter = f
		logCloser = func() { _ = f.Close() }
	}

	logLevel := slog.LevelWarn
	if opts.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	})))
	return nil
}

func buildVersion(version, commit, date, builtBy, treeState string) goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(config.Application, config.Description, config.WebSite),
		func(i *goversion.Info) {
			i.ASCIIName = config.UI
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if treeState != "" {
				i.GitTreeState = treeState
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}
