package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage pipeline prompts",
	Long: `Inspect and reset the customisable prompt templates.

Prompts live as plain text files and are re-read on every pipeline run,
so edits take effect without restarting.`,
}

var promptsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the prompt directory",
	RunE:  runPromptsPath,
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompt files and whether they are customised",
	RunE:  runPromptsList,
}

var promptsResetCmd = &cobra.Command{
	Use:   "reset [name]",
	Short: "Reset a prompt to its default",
	Long:  `Deletes the prompt file so the built-in default is restored on next use.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptsReset,
}

func init() {
	promptsCmd.AddCommand(promptsPathCmd)
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsResetCmd)
	rootCmd.AddCommand(promptsCmd)
}

func runPromptsPath(cmd *cobra.Command, _ []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	cmd.Println(promptStore.Dir())
	return nil
}

func runPromptsList(cmd *cobra.Command, _ []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	entries, err := os.ReadDir(promptStore.Dir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cmd.Println("No prompt files yet; defaults are written on first pipeline run.")
			return nil
		}
		return fmt.Errorf("reading prompt directory: %w", err)
	}

	cmd.Printf("Prompts in %s:\n\n", promptStore.Dir())
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".txt")
		cmd.Printf("  %s\n", name)
	}

	return nil
}

func runPromptsReset(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	name := args[0]
	path := filepath.Join(promptStore.Dir(), name+".txt")
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no prompt named %q", name)
		}
		return fmt.Errorf("removing prompt file: %w", err)
	}

	promptStore.Reload()
	cmd.Printf("Prompt %q reset to default.\n", name)
	return nil
}
