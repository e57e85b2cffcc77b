package main

import (
	"fmt"
	"io"
	"os"

	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Normalize a bank CSV export and optionally store it",
		Long: `Reads a bank CSV export, prints the drafts and any rows that failed to
parse. With --commit the valid drafts are stored one at a time and the
outcome of each is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	cmd.Flags().Bool("commit", false, "store the valid drafts")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	commit, _ := cmd.Flags().GetBool("commit")
	ctx := cmd.Context()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	preview, err := a.services.Import.PreviewImport(ctx, f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printPreview(out, preview)

	if !commit || len(preview.Drafts) == 0 {
		return nil
	}

	res, err := a.services.Import.CommitImport(ctx, dto.CommitImportRequest{Drafts: preview.Drafts})
	if err != nil {
		return err
	}
	for _, item := range res.Results {
		if item.Error != "" {
			fmt.Fprintf(out, "row %d: failed: %s\n", item.Row, item.Error)
			continue
		}
		fmt.Fprintf(out, "row %d: stored as %s\n", item.Row, item.TransactionID)
	}
	fmt.Fprintf(out, "created %d, failed %d\n", res.Created, res.Failed)
	return nil
}

func printPreview(out io.Writer, p *dto.ImportPreviewResponse) {
	for _, d := range p.Drafts {
		t := d.Transaction
		fmt.Fprintf(out, "row %d: %s %-7s %12s  %s\n", d.Row, t.Date, t.Type, t.Amount.StringFixed(2), t.Description)
	}
	for _, e := range p.Errors {
		fmt.Fprintf(out, "row %d (line %d): invalid %s %q: %s\n", e.Row, e.Line, e.Field, e.Value, e.Error)
	}
	fmt.Fprintf(out, "%d rows, %d valid, %d failed\n", p.Total, p.Valid, p.Failed)
}
