package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"library-admin/library"
)

var lendingsCmd = &cobra.Command{
	Use:   "lendings",
	Short: "Manage lending records",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.loadLendings(cmd.Context()); err != nil {
			return err
		}
		return a.manageLendings(cmd.Context())
	},
}

var lendingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all lendings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.loadLendings(cmd.Context()); err != nil {
			return err
		}
		a.printLendings()
		return nil
	},
}

var lendingsNotifyCmd = &cobra.Command{
	Use:   "notify-overdue",
	Short: "Email every reader with an overdue lending",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.client.NotifyOverdueLendings(cmd.Context()); err != nil {
			return fmt.Errorf("failed: %w", err)
		}
		a.printf("Overdue notifications sent successfully!\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lendingsCmd)
	lendingsCmd.AddCommand(lendingsListCmd)
	lendingsCmd.AddCommand(lendingsNotifyCmd)
}

func (a *app) loadLendings(ctx context.Context) error {
	lendings, err := a.client.ListLendings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load lendings: %w", err)
	}
	a.lendings = lendings
	return nil
}

func lendingTitles(l library.Lending) string {
	titles := make([]string, 0, len(l.Books))
	for _, b := range l.Books {
		titles = append(titles, b.BookTitle)
	}
	return strings.Join(titles, ", ")
}

func shortDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("2006-01-02")
}

func (a *app) printLendings() {
	a.printf("%s\n", a.heading(fmt.Sprintf("Lendings (%d)", len(a.lendings))))
	if len(a.lendings) == 0 {
		a.printf("No lendings recorded.\n")
		return
	}
	a.printf("%-26s %-20s %-34s %-11s %-11s %-9s\n",
		"ID", "Reader", "Books", "Borrowed", "Due", "Status")
	a.printf("%s\n", strings.Repeat("-", 116))
	for _, l := range a.lendings {
		a.printf("%-26s %-20s %-34s %-11s %-11s %-9s\n",
			truncateString(l.ID, 26),
			truncateString(l.ReaderName, 20),
			truncateString(lendingTitles(l), 34),
			shortDate(l.BorrowDate),
			shortDate(l.DueDate),
			l.Status)
	}
}

func (a *app) manageLendings(ctx context.Context) error {
	a.printf("%s\n", a.heading("Lendings - commands: list | add | return | delete | notify-overdue | back"))
	a.printLendings()

	for {
		a.printf("lendings> ")
		if !a.scanner().Scan() {
			return nil
		}
		switch strings.TrimSpace(a.scanner().Text()) {
		case "list":
			a.printLendings()
		case "add":
			a.handleAddLending(ctx)
		case "return":
			a.handleReturnLending(ctx)
		case "delete":
			a.handleDeleteLending(ctx)
		case "notify-overdue":
			if err := a.client.NotifyOverdueLendings(ctx); err != nil {
				a.printf("Failed: %v\n", err)
			} else {
				a.printf("Overdue notifications sent successfully!\n")
			}
		case "back", "quit", "exit":
			return nil
		case "":
		default:
			a.printf("Unknown command.\n")
		}
	}
}

// handleAddLending builds a lending from the loaded reader and book
// collections so the denormalized name/title snapshots match real records.
func (a *app) handleAddLending(ctx context.Context) {
	if len(a.readers) == 0 {
		if err := a.loadReaders(ctx); err != nil {
			a.printf("Error fetching readers or books.\n")
			return
		}
	}
	if len(a.books) == 0 {
		if err := a.loadBooks(ctx); err != nil {
			a.printf("Error fetching readers or books.\n")
			return
		}
	}

	readerID, ok := a.prompt("Reader ID")
	if !ok {
		return
	}
	reader, found := library.Find(a.readers, readerID)
	if !found {
		a.printf("No reader with ID %s.\n", readerID)
		return
	}

	idsRaw, ok := a.prompt("Book IDs (comma separated)")
	if !ok {
		return
	}
	var books []library.LendingBook
	for _, id := range strings.Split(idsRaw, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		b, found := library.Find(a.books, id)
		if !found {
			a.printf("No book with ID %s.\n", id)
			return
		}
		books = append(books, library.LendingBook{ID: b.ID, BookTitle: b.Title})
	}

	var days int
	for {
		v, ok := a.promptDefault("Due in days", "14")
		if !ok {
			return
		}
		if err := setInt(&days)(v); err != nil || days < 1 {
			a.printf("Enter a whole number of days.\n")
			continue
		}
		break
	}
	now := time.Now().UTC()
	l := library.Lending{
		ReaderID:   reader.ID,
		ReaderName: reader.Name,
		Books:      books,
		BorrowDate: now.Format(time.RFC3339),
		DueDate:    now.AddDate(0, 0, days).Format(time.RFC3339),
		Status:     library.LendingBorrowed,
	}
	if fe := library.ValidateLending(l); !fe.Ok() {
		a.printf("Validation failed: %s\n", fe.Error())
		return
	}
	created, err := a.client.CreateLending(ctx, l)
	if err != nil {
		a.printf("Error saving lending: %v\n", err)
		return
	}
	a.lendings = library.Upsert(a.lendings, created)
	a.printf("Lent %d book(s) to %s, due %s\n", len(created.Books), created.ReaderName, shortDate(created.DueDate))
}

// handleReturnLending marks a lending returned: status flips and the return
// date is stamped now.
func (a *app) handleReturnLending(ctx context.Context) {
	id, ok := a.prompt("Lending ID")
	if !ok {
		return
	}
	l, found := library.Find(a.lendings, id)
	if !found {
		a.printf("No lending with ID %s in the loaded list.\n", id)
		return
	}
	if l.Status == library.LendingReturned {
		a.printf("Lending %s is already returned.\n", id)
		return
	}
	l.Status = library.LendingReturned
	l.ReturnDate = time.Now().UTC().Format(time.RFC3339)
	updated, err := a.client.UpdateLending(ctx, id, l)
	if err != nil {
		a.printf("Error saving lending: %v\n", err)
		return
	}
	a.lendings = library.Upsert(a.lendings, updated)
	a.printf("Marked lending %s returned.\n", id)
}

func (a *app) handleDeleteLending(ctx context.Context) {
	id, ok := a.prompt("Lending ID")
	if !ok {
		return
	}
	l, found := library.Find(a.lendings, id)
	if !found {
		a.printf("No lending with ID %s in the loaded list.\n", id)
		return
	}
	confirm, ok := a.prompt(fmt.Sprintf("Delete lending for %q? (y/N)", l.ReaderName))
	if !ok || !strings.EqualFold(confirm, "y") {
		return
	}
	if err := a.client.DeleteLending(ctx, id); err != nil {
		a.printf("Failed to delete lending: %v\n", err)
		return
	}
	a.lendings = library.Remove(a.lendings, id)
	a.printf("Deleted lending %s\n", id)
}
