package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stacklight-labs/sitesmith/internal/adapters/driven/ai"
	"github.com/stacklight-labs/sitesmith/internal/adapters/driven/config/file"
	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the model provider and pipeline options.

Use subcommands to configure specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the model provider",
	Long:  `Configure the generative model provider used by every pipeline stage.`,
	RunE:  runSettingsLLM,
}

var settingsServicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Configure collaborator service endpoints",
	Long:  `Configure the identity extraction and image generation service URLs.`,
	RunE:  runSettingsServices,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsServicesCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	settings := file.LoadLLMSettings(configStore)
	pipeline := file.LoadPipelineSettings(configStore)

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Model]")
	cmd.Printf("  Provider: %s\n", settings.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Model)
	if settings.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.BaseURL)
	}
	if settings.Provider.RequiresAPIKey() {
		if settings.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Pipeline]")
	if pipeline.SectionBatchSize > 0 {
		cmd.Printf("  Section batch size: %d\n", pipeline.SectionBatchSize)
	} else {
		cmd.Printf("  Section batch size: (default)\n")
	}
	if pipeline.BatchDelayMillis > 0 {
		cmd.Printf("  Batch delay: %dms\n", pipeline.BatchDelayMillis)
	} else {
		cmd.Printf("  Batch delay: (default)\n")
	}
	cmd.Println()

	cmd.Println("[Services]")
	printServiceURL(cmd, "Identity extraction", pipeline.IdentityServiceURL)
	printServiceURL(cmd, "Image generation", pipeline.ImageServiceURL)
	cmd.Println()

	if !settings.IsConfigured() {
		cmd.Println("Run 'sitesmith settings wizard' to finish configuration.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printServiceURL(cmd *cobra.Command, label, url string) {
	if url == "" {
		cmd.Printf("  %s: (not set)\n", label)
		return
	}
	cmd.Printf("  %s: %s\n", label, url)
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	cmd.Println("Sitesmith Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Step 1: Configure Model Provider")
	cmd.Println("--------------------------------")
	cmd.Println("Every pipeline stage calls the model, so this is required.")
	cmd.Println()
	if err := configureLLMProvider(cmd, reader); err != nil {
		return err
	}

	cmd.Println("Step 2: Collaborator Services (optional)")
	cmd.Println("----------------------------------------")
	cmd.Println("Leave blank to skip; generation then requires a pre-extracted identity.")
	cmd.Println()
	if err := configureServices(cmd, reader); err != nil {
		return err
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("Run 'sitesmith generate <url>' to generate your first site.")

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	return configureLLMProvider(cmd, reader)
}

func runSettingsServices(cmd *cobra.Command, _ []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	return configureServices(cmd, reader)
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select Model Provider")
	providers := domain.AllAIProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := configStore.Set(file.KeyLLMProvider, string(selectedProvider)); err != nil {
		return fmt.Errorf("failed to save provider: %w", err)
	}
	if err := configStore.Set(file.KeyLLMModel, model); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}
	if apiKey != "" {
		if err := configStore.Set(file.KeyLLMAPIKey, apiKey); err != nil {
			return fmt.Errorf("failed to save API key: %w", err)
		}
	}

	// Validate the configuration by pinging the service.
	cmd.Print("Validating configuration... ")
	settings := file.LoadLLMSettings(configStore)
	svc, err := ai.CreateAndValidateLLMService(&settings)
	if err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("model configuration validation failed: %w", err)
	}
	if svc != nil {
		svc.Close()
	}
	cmd.Println("OK")

	cmd.Printf("Model provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

func configureServices(cmd *cobra.Command, reader *bufio.Reader) error {
	pipeline := file.LoadPipelineSettings(configStore)

	cmd.Printf("Identity extraction service URL [%s]: ", pipeline.IdentityServiceURL)
	if url := readLine(reader); url != "" {
		if err := configStore.Set(file.KeyIdentityServiceURL, url); err != nil {
			return fmt.Errorf("failed to save identity service URL: %w", err)
		}
	}

	cmd.Printf("Image generation service URL [%s]: ", pipeline.ImageServiceURL)
	if url := readLine(reader); url != "" {
		if err := configStore.Set(file.KeyImageServiceURL, url); err != nil {
			return fmt.Errorf("failed to save image service URL: %w", err)
		}
	}

	cmd.Println()
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
