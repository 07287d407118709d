package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/errenhanced/pkg/core/config"
	"github.com/msto63/errenhanced/pkg/enhanced"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "errenhanced",
	Short: "Compose and render enhanced errors",
	Long: `errenhanced builds errors enriched with identifiers, HTTP details,
system context, user info, application state and stack analysis, and
renders them as JSON, XML, CSV or YAML.

Settings are read from a TOML or YAML file (--config) and from
ERRENHANCED_* environment variables, e.g. ERRENHANCED_LOG_LEVEL=debug.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

// newFactory loads the settings and builds the error factory
func newFactory() (*enhanced.Factory, error) {
	settings, err := config.LoadSettings(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if verbose {
		settings.Log.Level = "debug"
	}
	return enhanced.NewFactory(settings)
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
