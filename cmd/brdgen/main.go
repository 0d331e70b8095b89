// Package main provides the CLI entry point for brdgen.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aathik/brdgen-go/pkg/brdgen"
	"github.com/aathik/brdgen-go/pkg/brdgen/config"
	"github.com/aathik/brdgen-go/pkg/brdgen/llm"
)

var (
	cfgFile    string
	outputDir  string
	model      string
	catalog    string
	timeout    time.Duration
	debug      bool
	promptOnly bool
	renderOnly string

	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "brdgen [input.xlsx]",
		Short: "Generate an MDM data model from a BRD/FRD spreadsheet",
		Long: `brdgen reads a BRD/FRD workbook, prompts a language model for an
Informatica MDM data model, validates the response, and renders a draw.io
diagram plus an HTML review report.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zapCfg := zap.NewDevelopmentConfig()
			if debug {
				zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			} else {
				zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
			}
			var err error
			logger, err = zapCfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: run,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "Config file path (default: ./brdgen.yaml)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for generated artifacts")
	rootCmd.Flags().StringVar(&model, "model", "", "Gemini model name")
	rootCmd.Flags().StringVar(&catalog, "catalog", "", "Path to a site-specific OOTB catalog file")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "Model call timeout (e.g. 120s)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&promptOnly, "prompt-only", false, "Write the prompt artifact and stop")
	rootCmd.Flags().StringVar(&renderOnly, "render-only", "", "Validate and render a saved response file instead of calling the model")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if renderOnly == "" && len(args) == 0 {
		return errors.New("an input workbook is required unless --render-only is given")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgFile, cwd)
	if err != nil {
		return err
	}

	// Flags win over file and environment.
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if model != "" {
		cfg.Model = model
	}
	if catalog != "" {
		cfg.Catalog = catalog
	}
	if timeout > 0 {
		cfg.TimeoutSeconds = int(timeout.Seconds())
	}

	var input string
	if len(args) > 0 {
		input = args[0]
	}
	opts := brdgen.DefaultOptions(input)
	opts.OutputDir = cfg.OutputDir
	opts.CatalogPath = cfg.Catalog
	opts.PromptOnly = promptOnly
	opts.ResponsePath = renderOnly
	opts.Logger = logger

	ctx := context.Background()
	if cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	// The model client is only needed for a full run.
	if !promptOnly && renderOnly == "" {
		apiKey := cfg.ResolveAPIKey()
		if apiKey == "" {
			return &brdgen.ConfigError{
				Setting: "api_key",
				Err:     errors.New("set BRDGEN_API_KEY or GEMINI_API_KEY"),
			}
		}
		client, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey:          apiKey,
			Model:           cfg.Model,
			MaxOutputTokens: int32(cfg.MaxOutputTokens),
		})
		if err != nil {
			return &brdgen.ConfigError{Setting: "gemini", Err: err}
		}
		opts.Client = client
	}

	summary, err := brdgen.Run(ctx, opts)
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

func printSummary(s *brdgen.Summary) {
	fmt.Printf("Run %s: %s\n", s.RunID, s.State)
	if s.Artifacts.Prompt != "" {
		fmt.Printf("  prompt:   %s\n", s.Artifacts.Prompt)
	}
	if s.Artifacts.Response != "" {
		fmt.Printf("  response: %s\n", s.Artifacts.Response)
	}
	if s.Artifacts.Diagram != "" {
		fmt.Printf("  diagram:  %s\n", s.Artifacts.Diagram)
	}
	if s.Artifacts.Report != "" {
		fmt.Printf("  report:   %s\n", s.Artifacts.Report)
	}
	if s.Artifacts.Response != "" {
		fmt.Printf("Entities: %d  Fields: %d  Relationships: %d\n",
			s.Entities, s.Fields, s.Relationships)
		if !s.Valid {
			fmt.Printf("Model response failed validation with %d problem(s); artifacts were still rendered for review.\n", len(s.Warnings))
		}
		for _, w := range s.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}
}
