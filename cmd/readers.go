package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"library-admin/library"
)

var readersCmd = &cobra.Command{
	Use:   "readers",
	Short: "Manage library patrons",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.loadReaders(cmd.Context()); err != nil {
			return err
		}
		return a.manageReaders(cmd.Context())
	},
}

var readersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all readers",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.loadReaders(cmd.Context()); err != nil {
			return err
		}
		a.printReaders()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readersCmd)
	readersCmd.AddCommand(readersListCmd)
}

func (a *app) loadReaders(ctx context.Context) error {
	readers, err := a.client.ListReaders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load readers: %w", err)
	}
	a.readers = readers
	return nil
}

func (a *app) printReaders() {
	a.printf("%s\n", a.heading(fmt.Sprintf("Readers (%d)", len(a.readers))))
	if len(a.readers) == 0 {
		a.printf("No readers registered.\n")
		return
	}
	a.printf("%-26s %-25s %-28s %-14s %-9s %-9s\n",
		"ID", "Name", "Email", "Phone", "Status", "Type")
	a.printf("%s\n", strings.Repeat("-", 115))
	for _, r := range a.readers {
		a.printf("%-26s %-25s %-28s %-14s %-9s %-9s\n",
			truncateString(r.ID, 26),
			truncateString(r.Name, 25),
			truncateString(r.Email, 28),
			truncateString(r.Phone, 14),
			r.Status, r.MembershipType)
	}
}

func (a *app) manageReaders(ctx context.Context) error {
	a.printf("%s\n", a.heading("Readers - commands: list | add | edit | delete | back"))
	a.printReaders()

	for {
		a.printf("readers> ")
		if !a.scanner().Scan() {
			return nil
		}
		switch strings.TrimSpace(a.scanner().Text()) {
		case "list":
			a.printReaders()
		case "add":
			a.handleAddReader(ctx)
		case "edit":
			a.handleEditReader(ctx)
		case "delete":
			a.handleDeleteReader(ctx)
		case "back", "quit", "exit":
			return nil
		case "":
		default:
			a.printf("Unknown command.\n")
		}
	}
}

func (a *app) promptReaderForm(existing *library.Reader) (library.Reader, bool) {
	var r library.Reader
	if existing != nil {
		r = *existing
	} else {
		r.Status = library.ReaderActive
		r.MembershipType = library.MembershipStandard
	}

	fields := []struct {
		label string
		get   func() string
		set   func(string)
	}{
		{"Name", func() string { return r.Name }, func(v string) { r.Name = v }},
		{"Email", func() string { return r.Email }, func(v string) { r.Email = v }},
		{"Phone", func() string { return r.Phone }, func(v string) { r.Phone = v }},
		{"NIC", func() string { return r.NIC }, func(v string) { r.NIC = v }},
		{"Address", func() string { return r.Address }, func(v string) { r.Address = v }},
		{"Status (ACTIVE/INACTIVE)", func() string { return string(r.Status) }, func(v string) { r.Status = library.ReaderStatus(strings.ToUpper(v)) }},
		{"Membership (STANDARD/PREMIUM)", func() string { return string(r.MembershipType) }, func(v string) { r.MembershipType = library.MembershipType(strings.ToUpper(v)) }},
		{"Remarks", func() string { return r.Remarks }, func(v string) { r.Remarks = v }},
	}
	for _, f := range fields {
		v, ok := a.promptDefault(f.label, f.get())
		if !ok {
			return r, false
		}
		f.set(v)
	}
	return r, true
}

func (a *app) handleAddReader(ctx context.Context) {
	r, ok := a.promptReaderForm(nil)
	if !ok {
		return
	}
	if fe := library.ValidateReader(r); !fe.Ok() {
		a.printf("Validation failed: %s\n", fe.Error())
		return
	}
	created, err := a.client.CreateReader(ctx, r)
	if err != nil {
		a.printf("Failed to save reader: %v\n", err)
		return
	}
	a.readers = library.Upsert(a.readers, created)
	a.printf("Added reader %s\n", created.Name)
}

func (a *app) handleEditReader(ctx context.Context) {
	id, ok := a.prompt("Reader ID")
	if !ok {
		return
	}
	existing, found := library.Find(a.readers, id)
	if !found {
		a.printf("No reader with ID %s in the loaded list.\n", id)
		return
	}
	r, ok := a.promptReaderForm(&existing)
	if !ok {
		return
	}
	if fe := library.ValidateReader(r); !fe.Ok() {
		a.printf("Validation failed: %s\n", fe.Error())
		return
	}
	updated, err := a.client.UpdateReader(ctx, id, r)
	if err != nil {
		a.printf("Failed to save reader: %v\n", err)
		return
	}
	a.readers = library.Upsert(a.readers, updated)
	a.printf("Updated reader %s\n", updated.Name)
}

func (a *app) handleDeleteReader(ctx context.Context) {
	id, ok := a.prompt("Reader ID")
	if !ok {
		return
	}
	r, found := library.Find(a.readers, id)
	if !found {
		a.printf("No reader with ID %s in the loaded list.\n", id)
		return
	}
	confirm, ok := a.prompt(fmt.Sprintf("Delete %q? (y/N)", r.Name))
	if !ok || !strings.EqualFold(confirm, "y") {
		return
	}
	if err := a.client.DeleteReader(ctx, id); err != nil {
		a.printf("Failed to delete reader: %v\n", err)
		return
	}
	a.readers = library.Remove(a.readers, id)
	a.printf("Deleted %s\n", r.Name)
}
