// Package cli provides the command line interface built on cobra.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stacklight-labs/sitesmith/internal/adapters/driven/ai"
	"github.com/stacklight-labs/sitesmith/internal/adapters/driven/config/file"
	"github.com/stacklight-labs/sitesmith/internal/adapters/driven/identity"
	"github.com/stacklight-labs/sitesmith/internal/adapters/driven/images"
	"github.com/stacklight-labs/sitesmith/internal/adapters/driven/storage/sqlite"
	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driving"
	"github.com/stacklight-labs/sitesmith/internal/core/services"
	"github.com/stacklight-labs/sitesmith/internal/logger"
	"github.com/stacklight-labs/sitesmith/internal/metrics"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Wired services, populated lazily by the init helpers below. Commands
// check for nil so that tests can inject their own implementations.
var (
	configStore driven.ConfigStore
	promptStore *file.PromptStore

	dataStore     *sqlite.Store
	documentStore driven.DocumentStore
	assetStore    driven.AssetStore

	llmService       driven.LLMService
	generatorService driving.SiteGenerator
	editorService    driving.SiteEditor

	recorder metrics.Recorder = metrics.NoopRecorder{}

	pipelineSettings domain.PipelineSettings
)

var rootCmd = &cobra.Command{
	Use:   "sitesmith",
	Short: "Generate and edit single-file websites with AI",
	Long: `Sitesmith generates complete single-file websites from a business's
online presence, and applies natural-language edits to generated documents.

Run 'sitesmith settings wizard' first to configure your model provider.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	defer closeServices()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initConfig wires the config and prompt stores. Idempotent.
func initConfig() error {
	if configStore != nil {
		return nil
	}

	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config store: %w", err)
	}
	configStore = store

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("initialising prompt store: %w", err)
	}
	promptStore = prompts

	pipelineSettings = file.LoadPipelineSettings(configStore)
	return nil
}

// initStorage opens the document and asset database. Idempotent.
func initStorage() error {
	if documentStore != nil {
		return nil
	}
	if err := initConfig(); err != nil {
		return err
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	dataStore = store
	documentStore = store.DocumentStore()
	assetStore = store.AssetStore()
	return nil
}

// initPipeline wires the full generation and editing stack. It fails when
// no model provider is configured.
func initPipeline() error {
	if generatorService != nil && editorService != nil {
		return nil
	}
	if err := initStorage(); err != nil {
		return err
	}

	settings := file.LoadLLMSettings(configStore)
	svc, err := ai.CreateAndValidateLLMService(&settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return errors.New("no model provider configured. Run 'sitesmith settings wizard' first")
	}
	llmService = svc

	var extractor driven.IdentityExtractor
	if pipelineSettings.IdentityServiceURL != "" {
		extractor = identity.NewClient(identity.Config{BaseURL: pipelineSettings.IdentityServiceURL})
	}
	var imageGen driven.ImageGenerator
	if pipelineSettings.ImageServiceURL != "" {
		imageGen = images.NewClient(images.Config{BaseURL: pipelineSettings.ImageServiceURL})
	}

	pipeline := services.NewGenerationPipeline(llmService, extractor, imageGen, documentStore, recorder)
	pipeline.SetPromptStore(promptStore)
	if pipelineSettings.SectionBatchSize > 0 {
		delay := time.Duration(pipelineSettings.BatchDelayMillis) * time.Millisecond
		pipeline.SetBatching(pipelineSettings.SectionBatchSize, delay)
	}
	generatorService = pipeline

	editor := services.NewEditService(llmService, assetStore, recorder)
	editor.SetPromptStore(promptStore)
	editorService = editor

	return nil
}

func closeServices() {
	if llmService != nil {
		llmService.Close()
	}
	if dataStore != nil {
		if err := dataStore.Close(); err != nil {
			logger.Debug("closing database: %v", err)
		}
	}
}
