// Package cmd provides the jsonconf command-line interface for inspecting
// and editing JSON configuration documents.
//
// Configuration System:
//
//	The CLI reads its own settings from several sources with clear precedence:
//	1. Command-line flags (--root, --log-level, etc.) - highest priority
//	2. JSONCONF_CONFIG_FILE environment variable - custom settings file path
//	3. Individual environment variables (JSONCONF_ROOT, JSONCONF_LOG_LEVEL, etc.)
//	4. Settings file (.jsonconf.yml) - lowest priority
//
// Environment Variables:
//
//	JSONCONF_CONFIG_FILE: Path to a custom settings file
//	JSONCONF_ROOT: Directory documents are resolved against
//	JSONCONF_LOG_LEVEL: debug, info, warn or error
//	JSONCONF_LOG_FORMAT: text or json
//	JSONCONF_SAVE_POLICY: all or dirty
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfgerrors "github.com/conneroisu/jsonconf/internal/errors"
	"github.com/conneroisu/jsonconf/internal/logging"
	"github.com/conneroisu/jsonconf/internal/store"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jsonconf",
	Short: "Inspect and edit JSON configuration documents",
	Long: `jsonconf works with flat JSON configuration documents: one JSON object
whose top-level properties are the configuration entries.

Quick Start:
  jsonconf show settings             Show the properties of ./settings.json
  jsonconf get settings port         Print one property
  jsonconf set settings port 8080    Set one property
  jsonconf fmt settings --check      Check that the document is formatted
  jsonconf watch settings            Print the document whenever it changes
  jsonconf demo                      Load, edit and save a typed registry

Document names without an extension get ".json" appended and are resolved
against --root.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Errors carrying a known code are followed by suggestions on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if suggestions := cfgerrors.Suggest(err); len(suggestions) > 0 {
		fmt.Fprint(rootCmd.ErrOrStderr(), cfgerrors.FormatSuggestions("", suggestions))
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "settings file (default is .jsonconf.yml, can also use JSONCONF_CONFIG_FILE env var)")
	flags.String("root", ".", "directory documents are resolved against")
	flags.StringP("log-level", "l", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("save-policy", "all", "what saving writes (all, dirty)")

	for _, name := range []string{"root", "log-level", "log-format", "save-policy"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	AddFlagValidation(rootCmd, "log-format", func(format string) error {
		return ValidateFormatWithSuggestion(format, []string{"text", "json"})
	})
}

// initConfig initializes the settings of the tool itself.
//
// Settings Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified settings file path
//  2. JSONCONF_CONFIG_FILE environment variable: Custom settings file path
//  3. Default: .jsonconf.yml in current directory
//
// Environment variables with the JSONCONF_ prefix override file values,
// with dashes in keys replaced by underscores (JSONCONF_LOG_LEVEL).
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("JSONCONF_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".jsonconf")
	}

	viper.SetEnvPrefix("JSONCONF")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// A missing settings file is fine; defaults and flags still apply.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(cmd *cobra.Command) (logging.Logger, error) {
	level, err := logging.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return nil, err
	}

	return logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: viper.GetString("log-format"),
		Output: cmd.ErrOrStderr(),
	}), nil
}

func newStore(cmd *cobra.Command) (*store.Store, logging.Logger, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}

	policy, err := store.ParseSavePolicy(viper.GetString("save-policy"))
	if err != nil {
		return nil, nil, err
	}

	return store.New(store.WithLogger(logger), store.WithSavePolicy(policy)), logger, nil
}

func resolveDocument(name string) string {
	return store.Resolve(viper.GetString("root"), name)
}
