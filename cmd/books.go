package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"library-admin/library"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Browse and manage the book catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.loadBooks(cmd.Context()); err != nil {
			return err
		}
		return a.browseBooks(cmd.Context())
	},
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books with search, filter, sort and paging",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.loadBooks(cmd.Context()); err != nil {
			return err
		}
		a.query = library.BookQuery{
			Search:   booksSearch,
			Category: booksCategory,
			MinPrice: booksMinPrice,
			MaxPrice: booksMaxPrice,
			Sort:     library.SortField(booksSort),
			Order:    library.SortOrder(booksOrder),
			Page:     booksPage,
		}
		a.printBookPage()
		return nil
	},
}

var (
	booksSearch   string
	booksCategory string
	booksMinPrice float64
	booksMaxPrice float64
	booksSort     string
	booksOrder    string
	booksPage     int
)

func init() {
	rootCmd.AddCommand(booksCmd)
	booksCmd.AddCommand(booksListCmd)

	def := library.DefaultQuery()
	booksListCmd.Flags().StringVarP(&booksSearch, "search", "s", def.Search, "search title, author or ISBN")
	booksListCmd.Flags().StringVarP(&booksCategory, "category", "c", def.Category, "category filter (\"All\" disables)")
	booksListCmd.Flags().Float64Var(&booksMinPrice, "min-price", def.MinPrice, "minimum price")
	booksListCmd.Flags().Float64Var(&booksMaxPrice, "max-price", def.MaxPrice, "maximum price")
	booksListCmd.Flags().StringVar(&booksSort, "sort", string(def.Sort), "sort field (title, price, quantity)")
	booksListCmd.Flags().StringVar(&booksOrder, "order", string(def.Order), "sort order (asc, desc)")
	booksListCmd.Flags().IntVarP(&booksPage, "page", "p", def.Page, "page number")
}

// loadBooks replaces the local collection wholesale.
func (a *app) loadBooks(ctx context.Context) error {
	books, err := a.client.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}
	a.books = books
	if a.query == (library.BookQuery{}) {
		a.query = library.DefaultQuery()
	}
	return nil
}

// printBookPage renders the current query's page as a fixed-width table
// with a pagination footer.
func (a *app) printBookPage() {
	page := a.query.Apply(a.books)

	a.printf("%s\n", a.heading(fmt.Sprintf("Books (total %d, matching %d)", len(a.books), page.Filtered)))
	if page.Filtered == 0 {
		a.printf("No books match the current filters.\n")
		return
	}

	a.printf("%-26s %-30s %-25s %-15s %9s %5s %6s\n",
		"ID", "Title", "Author", "Category", "Price", "Qty", "Avail")
	a.printf("%s\n", strings.Repeat("-", 122))
	for _, b := range page.Books {
		a.printf("%-26s %-30s %-25s %-15s %9.2f %5d %6d\n",
			truncateString(b.ID, 26),
			truncateString(b.Title, 30),
			truncateString(b.Author, 25),
			truncateString(b.DisplayCategory(), 15),
			b.Price, b.Quantity, b.CopiesAvailable)
	}

	prev, next := "(prev -)", "(next -)"
	if page.HasPrev() {
		prev = "(prev <)"
	}
	if page.HasNext() {
		next = "(next >)"
	}
	a.printf("Page %d of %d %s %s\n", page.Page, page.TotalPages, prev, next)
}

// browseBooks is the interactive books page: one command per line drives
// the query engine.
func (a *app) browseBooks(ctx context.Context) error {
	a.printf("%s\n", a.heading("Books - commands: search <q> | category <c> | price <min> <max> | sort <field> | order <asc|desc> | next | prev | reset | categories | add | edit | delete | back"))
	a.printBookPage()

	for {
		a.printf("books> ")
		if !a.scanner().Scan() {
			return nil
		}
		line := strings.TrimSpace(a.scanner().Text())
		cmd, rest, _ := strings.Cut(line, " ")

		switch cmd {
		case "search":
			a.query.Search = strings.TrimSpace(rest)
			a.query.Page = 1
		case "category":
			a.query.Category = strings.TrimSpace(rest)
			if a.query.Category == "" {
				a.query.Category = "All"
			}
			a.query.Page = 1
		case "price":
			lo, hi, ok := strings.Cut(strings.TrimSpace(rest), " ")
			if !ok {
				a.printf("Usage: price <min> <max>\n")
				continue
			}
			var minPrice, maxPrice float64
			if setFloat(&minPrice)(lo) != nil || setFloat(&maxPrice)(hi) != nil {
				a.printf("Usage: price <min> <max>\n")
				continue
			}
			a.query.MinPrice = minPrice
			a.query.MaxPrice = maxPrice
			a.query.Page = 1
		case "sort":
			switch library.SortField(strings.TrimSpace(rest)) {
			case library.SortByTitle, library.SortByPrice, library.SortByQuantity:
				a.query.Sort = library.SortField(strings.TrimSpace(rest))
			default:
				a.printf("Sort field must be title, price or quantity.\n")
				continue
			}
		case "order":
			switch library.SortOrder(strings.TrimSpace(rest)) {
			case library.Ascending, library.Descending:
				a.query.Order = library.SortOrder(strings.TrimSpace(rest))
			default:
				a.printf("Order must be asc or desc.\n")
				continue
			}
		case "next":
			if a.query.Apply(a.books).HasNext() {
				a.query.Page++
			}
		case "prev":
			if a.query.Apply(a.books).HasPrev() {
				a.query.Page--
			}
		case "reset":
			a.query.Reset()
		case "categories":
			a.printf("%s\n", strings.Join(library.Categories(a.books), ", "))
			continue
		case "add":
			a.handleAddBook(ctx)
		case "edit":
			a.handleEditBook(ctx)
		case "delete":
			a.handleDeleteBook(ctx)
		case "back", "quit", "exit", "":
			if cmd != "" {
				return nil
			}
		default:
			a.printf("Unknown command %q.\n", cmd)
			continue
		}
		a.printBookPage()
	}
}

// promptBookForm collects a book form, pre-filled from existing on edit.
func (a *app) promptBookForm(existing *library.Book) (library.Book, bool) {
	var b library.Book
	if existing != nil {
		b = *existing
	} else {
		b.Quantity = 1
		b.CopiesAvailable = 1
	}

	fields := []struct {
		label string
		get   func() string
		set   func(string) error
	}{
		{"Title", func() string { return b.Title }, setString(&b.Title)},
		{"Author", func() string { return b.Author }, setString(&b.Author)},
		{"Category", func() string { return b.Category }, setString(&b.Category)},
		{"ISBN", func() string { return b.ISBN }, setString(&b.ISBN)},
		{"Publisher", func() string { return b.Publisher }, setString(&b.Publisher)},
		{"Publish year", func() string { return fmt.Sprintf("%d", b.PublishYear) }, setInt(&b.PublishYear)},
		{"Description", func() string { return b.Description }, setString(&b.Description)},
		{"Price", func() string { return fmt.Sprintf("%.2f", b.Price) }, setFloat(&b.Price)},
		{"Quantity", func() string { return fmt.Sprintf("%d", b.Quantity) }, setInt(&b.Quantity)},
		{"Copies available", func() string { return fmt.Sprintf("%d", b.CopiesAvailable) }, setInt(&b.CopiesAvailable)},
	}
	// Numeric fields re-prompt on unparsable input rather than coercing it.
	for _, f := range fields {
		for {
			v, ok := a.promptDefault(f.label, f.get())
			if !ok {
				return b, false
			}
			if err := f.set(v); err != nil {
				a.printf("%v\n", err)
				continue
			}
			break
		}
	}
	return b, true
}

func (a *app) handleAddBook(ctx context.Context) {
	b, ok := a.promptBookForm(nil)
	if !ok {
		return
	}
	if fe := library.ValidateBook(b); !fe.Ok() {
		a.printf("Validation failed: %s\n", fe.Error())
		return
	}
	created, err := a.client.CreateBook(ctx, b)
	if err != nil {
		a.printf("Failed to save book: %v\n", err)
		return
	}
	a.books = library.Upsert(a.books, created)
	a.printf("Added book %s (%s)\n", created.Title, created.BookID)
}

func (a *app) handleEditBook(ctx context.Context) {
	id, ok := a.prompt("Book ID")
	if !ok {
		return
	}
	existing, found := library.Find(a.books, id)
	if !found {
		a.printf("No book with ID %s in the loaded list.\n", id)
		return
	}
	b, ok := a.promptBookForm(&existing)
	if !ok {
		return
	}
	if fe := library.ValidateBook(b); !fe.Ok() {
		a.printf("Validation failed: %s\n", fe.Error())
		return
	}
	updated, err := a.client.UpdateBook(ctx, id, b)
	if err != nil {
		a.printf("Failed to save book: %v\n", err)
		return
	}
	a.books = library.Upsert(a.books, updated)
	a.printf("Updated book %s\n", updated.Title)
}

func (a *app) handleDeleteBook(ctx context.Context) {
	id, ok := a.prompt("Book ID")
	if !ok {
		return
	}
	b, found := library.Find(a.books, id)
	if !found {
		a.printf("No book with ID %s in the loaded list.\n", id)
		return
	}
	confirm, ok := a.prompt(fmt.Sprintf("Delete %q? (y/N)", b.Title))
	if !ok || !strings.EqualFold(confirm, "y") {
		return
	}
	if err := a.client.DeleteBook(ctx, id); err != nil {
		a.printf("Failed to delete book: %v\n", err)
		return
	}
	a.books = library.Remove(a.books, id)
	a.printf("Deleted %s\n", b.Title)
}
