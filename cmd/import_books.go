package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"library-admin/library"
)

var booksImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Bulk-create books from a CSV file",
	Long: `Reads a CSV with a header row of
title,author,category,isbn,publisher,price,quantity and creates one book per
row through the backend. Rows that fail validation or are rejected by the
backend are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.importBooks(cmd, args[0])
	},
}

func init() {
	booksCmd.AddCommand(booksImportCmd)
}

func (a *app) importBooks(cmd *cobra.Command, path string) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	a.printf("Importing books from %s...\n", path)
	successCount, errorCount := 0, 0
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read csv row: %w", err)
		}

		qty := parseInt(field(row, "quantity"))
		b := library.Book{
			Title:           field(row, "title"),
			Author:          field(row, "author"),
			Category:        field(row, "category"),
			ISBN:            field(row, "isbn"),
			Publisher:       field(row, "publisher"),
			Price:           parseFloat(field(row, "price")),
			Quantity:        qty,
			CopiesAvailable: qty,
		}

		a.printf("Importing: %s by %s... ", b.Title, b.Author)
		if fe := library.ValidateBook(b); !fe.Ok() {
			a.printf("SKIPPED - %s\n", fe.Error())
			errorCount++
			continue
		}
		created, err := a.client.CreateBook(cmd.Context(), b)
		if err != nil {
			a.printf("ERROR - %v\n", err)
			errorCount++
			continue
		}
		a.printf("SUCCESS (ID: %s)\n", created.BookID)
		successCount++
	}

	a.printf("\nImport complete!\n")
	a.printf("Successfully imported: %d books\n", successCount)
	a.printf("Errors: %d\n", errorCount)
	return nil
}
