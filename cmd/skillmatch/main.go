// Package main provides the skillmatch CLI: resume analysis from the command line and the HTTP
// API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath     string
	dictionaryPath string
	logLevel       string
	logFormat      string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "skillmatch",
		Short:         "Match resumes against job descriptions",
		Long:          "skillmatch extracts the skills a job description asks for, checks a resume for each of them (exact, alias and similarity matching), and scores the resume's ATS readiness.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML or JSON config file (flags override file values)")
	flags.StringVar(&opts.dictionaryPath, "dictionary", "", "Path to a skill dictionary JSON file (default: built-in dictionary)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: json or pretty")

	rootCmd.AddCommand(newServeCmd(opts), newAnalyzeCmd(opts), newSkillsCmd(opts))
	return rootCmd
}

// loadConfig merges the config file, defaults and persistent flags, then initializes logging.
func (o *globalOptions) loadConfig() (config.Config, error) {
	cfg := config.Defaults()
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded.MergeWithDefaults(config.Defaults())
	}

	if o.dictionaryPath != "" {
		cfg.Analysis.DictionaryPath = o.dictionaryPath
	}
	if o.logLevel != "" {
		cfg.Logger.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logger.Format = o.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	logger.Init(cfg.Logger)
	return cfg, nil
}

// newAnalyzer loads the configured dictionary and builds an analyzer over it.
func newAnalyzer(cfg config.Config) (*analysis.Analyzer, error) {
	dict, err := skills.LoadDictionary(cfg.Analysis.DictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill dictionary: %w", err)
	}
	logger.Debug().Int("skills", dict.Len()).Str("path", cfg.Analysis.DictionaryPath).Msg("skill dictionary loaded")
	return analysis.NewAnalyzer(dict), nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
