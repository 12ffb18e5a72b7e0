package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"library-admin/overdue"
)

var overdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Overdue readers, exports and notification emails",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.runOverdue(cmd.Context())
	},
}

var overdueExportDir string

func init() {
	rootCmd.AddCommand(overdueCmd)
	overdueCmd.Flags().StringVar(&overdueExportDir, "export-dir", ".", "directory CSV/PDF exports are written to")
}

// runOverdue is the interactive overdue session, driving the workflow state
// machine: load readers, select one, export or notify.
func (a *app) runOverdue(ctx context.Context) error {
	wf := overdue.NewWorkflow(a.client, slog.Default())

	if err := wf.LoadReaders(ctx); err != nil {
		a.printf("%s\n", wf.Status())
	}
	a.printOverdueReaders(wf)

	a.printf("%s\n", a.heading("Commands: select <n> | books | csv | pdf | email | notify-all | readers | back"))
	for {
		a.printf("overdue> ")
		if !a.scanner().Scan() {
			return nil
		}
		line := strings.TrimSpace(a.scanner().Text())
		cmd, rest, _ := strings.Cut(line, " ")

		switch cmd {
		case "select":
			n := parseInt(strings.TrimSpace(rest))
			readers := wf.Readers()
			if n < 1 || n > len(readers) {
				a.printf("Pick a reader between 1 and %d.\n", len(readers))
				continue
			}
			r := readers[n-1]
			if err := wf.FetchBooks(ctx, r.ReaderID); err != nil {
				a.printf("%s\n", wf.Status())
				continue
			}
			a.printOverdueBooks(wf)
		case "books":
			a.printOverdueBooks(wf)
		case "csv":
			path, err := wf.ExportCSV(overdueExportDir)
			switch {
			case err != nil:
				a.printf("Export failed: %v\n", err)
			case path == "":
				a.printf("Nothing to export.\n")
			default:
				a.printf("Wrote %s\n", path)
			}
		case "pdf":
			path, err := wf.ExportPDF(overdueExportDir)
			switch {
			case err != nil:
				a.printf("Export failed: %v\n", err)
			case path == "":
				a.printf("Nothing to export.\n")
			default:
				a.printf("Wrote %s\n", path)
			}
		case "email":
			a.handleComposeEmail(ctx, wf)
		case "notify-all":
			a.printf("%s\n", wf.NotifyAll(ctx))
		case "readers":
			a.printOverdueReaders(wf)
		case "back", "quit", "exit":
			return nil
		case "":
		default:
			a.printf("Unknown command %q.\n", cmd)
		}
	}
}

func (a *app) printOverdueReaders(wf *overdue.Workflow) {
	readers := wf.Readers()
	a.printf("%s\n", a.heading(fmt.Sprintf("Readers with overdue books (%d)", len(readers))))
	if len(readers) == 0 {
		a.printf("No overdue readers.\n")
		return
	}
	for i, r := range readers {
		marker := " "
		if r.ReaderID == wf.Selected() {
			marker = ">"
		}
		a.printf("%s %2d. %s (ID: %s)\n", marker, i+1, r.ReaderName, r.ReaderID)
	}
}

func (a *app) printOverdueBooks(wf *overdue.Workflow) {
	books := wf.Books()
	a.printf("%s\n", a.heading(fmt.Sprintf("Overdue books for %s", wf.ReaderName())))
	if len(books) == 0 {
		a.printf("Select a reader to view overdue books.\n")
		return
	}
	for i, b := range books {
		a.printf("%2d. %s - Due %s\n", i+1, b.BookTitle, shortDate(b.DueDate))
	}
}

// handleComposeEmail edits and sends the per-reader reminder. The operator
// can replace the template line by line; a single "." keeps what is there.
func (a *app) handleComposeEmail(ctx context.Context, wf *overdue.Workflow) {
	if wf.Selected() == "" {
		a.printf("Select a reader first.\n")
		return
	}
	draft := wf.Compose(wf.Selected(), wf.ReaderName())

	a.printf("Message to %s:\n%s\n", draft.ReaderName, draft.Message)
	a.printf("Enter a replacement message (end with a single \".\"), or \".\" to keep the template:\n")

	var lines []string
	for a.scanner().Scan() {
		line := a.scanner().Text()
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		draft.Message = strings.Join(lines, "\n")
	}

	confirm, ok := a.prompt("Send? (y/N)")
	if !ok || !strings.EqualFold(confirm, "y") {
		wf.CancelDraft()
		a.printf("Cancelled.\n")
		return
	}
	a.printf("%s\n", wf.SendDraft(ctx, draft))
}
