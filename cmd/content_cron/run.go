package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-pipeline/internal/config"
	"github.com/jonathan/content-pipeline/internal/content"
	"github.com/jonathan/content-pipeline/internal/db"
	"github.com/jonathan/content-pipeline/internal/imagegen"
	"github.com/jonathan/content-pipeline/internal/imagestore"
	"github.com/jonathan/content-pipeline/internal/llm"
	"github.com/jonathan/content-pipeline/internal/observability"
	"github.com/jonathan/content-pipeline/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Process all calendar entries awaiting content generation",
	Long: `Discovers entries whose content flag is still false, generates text and an
image for each, saves the image locally and marks the entry completed.

Per-entry failures are reported and leave the entry pending for the next
scheduled run; the command only exits non-zero when discovery or store access
fails entirely.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values; the environment backfills the rest.`,
	RunE: runBatchCmd,
}

var (
	runConfigPath   string
	runDatabaseURL  string
	runGeminiKey    string
	runOpenAIKey    string
	runImagesDir    string
	runWorkers      int
	runGenTimeout   int
	runImageTimeout int
	runVerbose      bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	runCommand.Flags().StringVar(&runGeminiKey, "gemini-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().StringVar(&runOpenAIKey, "openai-key", "", "OpenAI API key for image generation (defaults to OPENAI_API_KEY env var)")
	runCommand.Flags().StringVar(&runImagesDir, "images-dir", "", "Directory for generated images (default generated_images)")
	runCommand.Flags().IntVar(&runWorkers, "workers", 0, "Bounded number of entries processed in parallel")
	runCommand.Flags().IntVar(&runGenTimeout, "gen-timeout", 0, "Content generation timeout in seconds")
	runCommand.Flags().IntVar(&runImageTimeout, "image-timeout", 0, "Image synthesis timeout in seconds")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Debug-level logging")

	rootCmd.AddCommand(runCommand)
}

func runBatchCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("gemini-key") {
		cfg.GeminiAPIKey = runGeminiKey
	}
	if cmd.Flags().Changed("openai-key") {
		cfg.OpenAIAPIKey = runOpenAIKey
	}
	if cmd.Flags().Changed("images-dir") {
		cfg.ImagesDir = runImagesDir
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = runWorkers
	}
	if cmd.Flags().Changed("gen-timeout") {
		cfg.GenTimeoutSeconds = runGenTimeout
	}
	if cmd.Flags().Changed("image-timeout") {
		cfg.ImageTimeoutSeconds = runImageTimeout
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Environment backfill, defaults, then startup validation.
	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Verbose {
		os.Setenv("LOG_LEVEL", "debug")
	}
	log := observability.JobLogger("content_cron")

	// Fatal: without the store there is no work list.
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	client, err := llm.NewClient(ctx, nil, cfg.GeminiAPIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	generator, err := content.NewGeminiGenerator(client)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx, pipeline.Options{
		Store:        database,
		Generator:    generator,
		Synthesizer:  imagegen.NewDallE(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, time.Duration(cfg.ImageTimeoutSeconds)*time.Second),
		Images:       imagestore.New(cfg.ImagesDir),
		Workers:      cfg.Workers,
		GenTimeout:   time.Duration(cfg.GenTimeoutSeconds) * time.Second,
		ImageTimeout: time.Duration(cfg.ImageTimeoutSeconds) * time.Second,
		Log:          log,
	})
	if err != nil {
		return err
	}

	// A completed run exits zero even when some entries failed; the failures
	// stay pending and the next scheduled invocation retries them.
	observability.NewPrinter(os.Stdout).PrintBatchResult(result)
	return nil
}
