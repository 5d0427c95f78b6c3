package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

var (
	editFile   string
	editAttach string
	editOutput string
)

var editCmd = &cobra.Command{
	Use:   "edit [doc-id] [instruction]",
	Short: "Apply a natural-language edit to a document",
	Long: `Applies a natural-language edit instruction to a stored document,
or to a local HTML file with --file.

Edits are localized text changes. The document is never regenerated;
if the requested text cannot be found, the document is left untouched
and the reason is reported.

Examples:
  sitesmith edit 2f0c9a1e "change the phone number to 555-0199"
  sitesmith edit --file site.html "make the headline shorter"
  sitesmith edit 2f0c9a1e "replace the logo" --attach logo.png`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editFile, "file", "f", "", "edit a local HTML file instead of a stored document")
	editCmd.Flags().StringVar(&editAttach, "attach", "", "attach an image file to the instruction")
	editCmd.Flags().StringVarP(&editOutput, "output", "o", "", "write the result to a file instead of saving in place")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if err := initPipeline(); err != nil {
		return err
	}

	var docID, instruction, html string
	if editFile != "" {
		if len(args) != 1 {
			return fmt.Errorf("usage: sitesmith edit --file %s \"instruction\"", editFile)
		}
		instruction = args[0]
		data, err := os.ReadFile(editFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		html = string(data)
	} else {
		if len(args) != 2 {
			return fmt.Errorf("usage: sitesmith edit <doc-id> \"instruction\"")
		}
		docID = args[0]
		instruction = args[1]
		doc, err := documentStore.Get(cmd.Context(), docID)
		if err != nil {
			return fmt.Errorf("loading document: %w", err)
		}
		html = doc.HTML
	}

	req := domain.EditRequest{
		Instruction: instruction,
		CurrentHTML: html,
	}
	if editAttach != "" {
		att, err := readAttachment(editAttach)
		if err != nil {
			return err
		}
		req.Attachments = append(req.Attachments, att)
	}

	result, err := editorService.Edit(cmd.Context(), req)
	if err != nil && result == nil {
		return fmt.Errorf("edit failed: %w", err)
	}

	if !result.Changed {
		cmd.Println(result.UserMessage)
		return nil
	}

	cmd.Println(result.UserMessage)
	cmd.Printf("Applied %d of %d operations.\n", result.Applied, result.Attempted)

	output := editOutput
	switch {
	case output != "":
		if err := os.WriteFile(output, []byte(result.HTML), 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		cmd.Printf("Result written to %s\n", output)
	case editFile != "":
		if err := os.WriteFile(editFile, []byte(result.HTML), 0644); err != nil {
			return fmt.Errorf("writing file: %w", err)
		}
		cmd.Printf("Updated %s\n", editFile)
	default:
		doc, err := documentStore.Get(cmd.Context(), docID)
		if err != nil {
			return fmt.Errorf("reloading document: %w", err)
		}
		doc.HTML = result.HTML
		if err := documentStore.Save(cmd.Context(), doc); err != nil {
			return fmt.Errorf("saving document: %w", err)
		}
		cmd.Printf("Document %s updated.\n", docID)
	}

	return nil
}

func readAttachment(path string) (domain.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("reading attachment: %w", err)
	}

	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if mediaType == "" {
		mediaType = "image/png"
	}
	return domain.Attachment{MediaType: mediaType, Data: data}, nil
}
