package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	documentsLimit      int
	documentsExportFile string
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage generated documents",
	Long:  `List, inspect, export, or delete generated documents.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated documents",
	RunE:  runDocumentsList,
}

var documentsShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsShow,
}

var documentsExportCmd = &cobra.Command{
	Use:   "export [doc-id]",
	Short: "Write a document's HTML to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsExport,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a generated document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

func init() {
	documentsListCmd.Flags().IntVarP(&documentsLimit, "limit", "n", 20, "maximum number of documents")
	documentsExportCmd.Flags().StringVarP(&documentsExportFile, "output", "o", "", "output file (default: <doc-id>.html)")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsShowCmd)
	documentsCmd.AddCommand(documentsExportCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if err := initStorage(); err != nil {
		return err
	}
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	docs, err := documentStore.List(cmd.Context(), documentsLimit)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents yet. Run 'sitesmith generate' to create one.")
		return nil
	}

	for _, doc := range docs {
		name := doc.BusinessName
		if name == "" {
			name = "(unnamed)"
		}
		cmd.Printf("  %s\n", doc.ID)
		cmd.Printf("    Business: %s\n", name)
		if doc.Category != "" {
			cmd.Printf("    Category: %s\n", doc.Category)
		}
		cmd.Printf("    Created:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentsShow(cmd *cobra.Command, args []string) error {
	if err := initStorage(); err != nil {
		return err
	}
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	doc, err := documentStore.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Business:  %s\n", doc.BusinessName)
	cmd.Printf("  Category:  %s\n", doc.Category)
	cmd.Printf("  Pipeline:  v%s\n", doc.PipelineVersion)
	cmd.Printf("  Size:      %d bytes\n", len(doc.HTML))
	cmd.Printf("  Created:   %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:   %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))

	if doc.Validation.Valid {
		cmd.Printf("  Validation: clean\n")
	} else {
		cmd.Printf("  Validation: %d unresolved tokens stripped\n", doc.Validation.Count)
		for _, token := range doc.Validation.Unresolved {
			cmd.Printf("    %s\n", token)
		}
	}

	return nil
}

func runDocumentsExport(cmd *cobra.Command, args []string) error {
	if err := initStorage(); err != nil {
		return err
	}
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	doc, err := documentStore.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	output := documentsExportFile
	if output == "" {
		output = doc.ID + ".html"
	}
	if err := os.WriteFile(output, []byte(doc.HTML), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	cmd.Printf("Document %s written to %s\n", doc.ID, output)
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if err := initStorage(); err != nil {
		return err
	}
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	if err := documentStore.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", args[0])
	return nil
}
