package cmd

import (
	"context"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"library-admin/library"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Library statistics computed from live data",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.showDashboard(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// showDashboard derives the stats the web dashboard displayed from the
// collections themselves; there is no dedicated stats endpoint.
func (a *app) showDashboard(ctx context.Context) error {
	if err := a.loadBooks(ctx); err != nil {
		return err
	}
	if err := a.loadReaders(ctx); err != nil {
		return err
	}
	if err := a.loadLendings(ctx); err != nil {
		return err
	}

	totalCopies, lentOut := 0, 0
	for _, b := range a.books {
		totalCopies += b.Quantity
		lentOut += b.Quantity - b.CopiesAvailable
	}

	activeReaders := 0
	for _, r := range a.readers {
		if r.Status != library.ReaderInactive {
			activeReaders++
		}
	}

	now := time.Now()
	borrowedNow, overdueNow := 0, 0
	for _, l := range a.lendings {
		if l.Status != library.LendingBorrowed {
			continue
		}
		borrowedNow++
		if due, err := time.Parse(time.RFC3339, l.DueDate); err == nil && due.Before(now) {
			overdueNow++
		}
	}

	a.printf("%s\n", a.heading("Library Dashboard"))
	a.printf("%-22s %d\n", "Titles", len(a.books))
	a.printf("%-22s %d (%d lent out)\n", "Copies owned", totalCopies, lentOut)
	a.printf("%-22s %d (%d active)\n", "Readers", len(a.readers), activeReaders)
	a.printf("%-22s %d\n", "Open lendings", borrowedNow)
	a.printf("%-22s %d\n", "Overdue lendings", overdueNow)

	// Recent activity: the five newest lendings by borrow date.
	recent := make([]library.Lending, len(a.lendings))
	copy(recent, a.lendings)
	sort.Slice(recent, func(i, j int) bool { return recent[i].BorrowDate > recent[j].BorrowDate })
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if len(recent) > 0 {
		a.printf("\n%s\n", a.heading("Recent activity"))
		for _, l := range recent {
			verb := "borrowed"
			if l.Status == library.LendingReturned {
				verb = "returned"
			}
			a.printf("  %s %s %s (%s)\n",
				shortDate(l.BorrowDate), l.ReaderName, verb,
				truncateString(lendingTitles(l), 50))
		}
	}
	return nil
}
