package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stacklight-labs/sitesmith/internal/adapters/driving/tui"
	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driving"
)

var (
	generateName     string
	generateCategory string
	generateOutput   string
	generatePlain    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [url]",
	Short: "Generate a website from a business's online presence",
	Long: `Generates a complete single-file website from the given URL.

The URL is sent to the identity extraction service, and the extracted
brand identity drives manifest, blueprint and section generation.

Examples:
  sitesmith generate https://bellasbakery.example
  sitesmith generate https://bellasbakery.example -o site.html
  sitesmith generate https://bellasbakery.example --name "Bella's Bakery" --category bakery`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateName, "name", "", "business name override")
	generateCmd.Flags().StringVar(&generateCategory, "category", "", "business category hint")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write the document to a file")
	generateCmd.Flags().BoolVar(&generatePlain, "plain", false, "plain progress output, no interactive UI")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := initPipeline(); err != nil {
		return err
	}

	req := driving.GenerateRequest{
		SourceURL:    args[0],
		BusinessName: generateName,
		Category:     generateCategory,
	}

	var doc *domain.GeneratedDocument
	var err error
	if generatePlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		doc, err = generatePlainProgress(cmd, req)
	} else {
		doc, err = generateWithUI(cmd.Context(), req)
	}
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if !doc.Validation.Valid {
		cmd.Printf("Warning: %d unresolved placeholder tokens were stripped.\n", doc.Validation.Count)
	}

	if generateOutput != "" {
		if err := os.WriteFile(generateOutput, []byte(doc.HTML), 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		cmd.Printf("Document %s written to %s\n", doc.ID, generateOutput)
		return nil
	}

	cmd.Printf("Document generated: %s\n", doc.ID)
	cmd.Printf("Run 'sitesmith documents export %s -o site.html' to save it.\n", doc.ID)
	return nil
}

func generatePlainProgress(cmd *cobra.Command, req driving.GenerateRequest) (*domain.GeneratedDocument, error) {
	req.Progress = func(ev driving.ProgressEvent) {
		switch {
		case ev.SectionID != "" && ev.Failed:
			cmd.Printf("  section %s: degraded to placeholder\n", ev.SectionID)
		case ev.SectionID != "" && ev.Done:
			cmd.Printf("  section %s: done\n", ev.SectionID)
		case ev.Done:
			cmd.Printf("%s: done\n", ev.Stage)
		default:
			cmd.Printf("%s...\n", ev.Stage)
		}
	}
	return generatorService.Generate(cmd.Context(), req)
}

func generateWithUI(ctx context.Context, req driving.GenerateRequest) (*domain.GeneratedDocument, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(tui.NewProgress(req.SourceURL))
	req.Progress = func(ev driving.ProgressEvent) {
		program.Send(tui.EventMsg{Event: ev})
	}

	var doc *domain.GeneratedDocument
	var genErr error
	go func() {
		doc, genErr = generatorService.Generate(ctx, req)
		program.Send(tui.DoneMsg{Err: genErr})
	}()

	final, err := program.Run()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("progress UI: %w", err)
	}
	if progress, ok := final.(tui.Progress); ok && progress.Cancelled() {
		cancel()
		return nil, context.Canceled
	}
	return doc, genErr
}
