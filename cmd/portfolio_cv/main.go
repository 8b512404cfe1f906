// Package main provides the portfolio_cv command: CV export and inspection, the
// portfolio assistant, and the portfolio web server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-cv/internal/config"
	"github.com/jonathan/portfolio-cv/internal/observability"
	"github.com/jonathan/portfolio-cv/internal/portfolio"
	"github.com/jonathan/portfolio-cv/internal/types"
)

var (
	configPath string
	verbose    bool

	// Set by the root command before any subcommand runs
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "portfolio_cv",
	Short: "Portfolio CV generator and site server",
	Long: "portfolio_cv renders a portfolio data file into a paginated A4 PDF CV, checks generated PDFs, " +
		"answers questions about the portfolio through an AI assistant, and serves the portfolio site.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logger, err = observability.NewLogger(verbose || cfg.Verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file if one is given, fills the gaps from the environment
// and the defaults, and validates the result
func loadConfig(path string) (config.Config, error) {
	file := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		file = loaded
	}
	if err := file.ApplyEnv(os.Getenv); err != nil {
		return config.Config{}, err
	}

	merged := file.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// loadPortfolio loads the data file at path, or the bundled sample when path is empty
func loadPortfolio(path string) (*types.Portfolio, error) {
	p, err := portfolio.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	source := path
	if source == "" {
		source = "bundled sample"
	}
	logger.Debug("loaded portfolio",
		zap.String("source", source),
		zap.String("name", p.Profile.Name),
		zap.Int("projects", len(p.Projects)))
	return p, nil
}

// stringFlag returns the flag value when it was set on the command line, otherwise fallback
func stringFlag(cmd *cobra.Command, name, value, fallback string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}

// intFlag returns the flag value when it was set on the command line, otherwise fallback
func intFlag(cmd *cobra.Command, name string, value, fallback int) int {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}
