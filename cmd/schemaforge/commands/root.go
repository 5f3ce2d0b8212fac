// Package commands implements the CLI commands for schemaforge.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "schemaforge",
	Short: "Generate validated schema.org JSON-LD for any web page",
	Long: `Schemaforge fetches a page, classifies it against the schema.org
vocabulary using deterministic rules, and assembles a validated JSON-LD
structured-data document ready to embed.

Examples:
  # Generate structured data for a page
  schemaforge generate -u "https://example.com/product/42"

  # Steer classification with a free-text hint
  schemaforge generate -u "https://example.com/sale" \
      --hint "Product, strict, no reviews, cap 5"

  # Force headless rendering for JavaScript-heavy pages
  schemaforge generate -u "https://example.com/app" --render-mode headless`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.schemaforge.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".schemaforge")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SCHEMAFORGE")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
