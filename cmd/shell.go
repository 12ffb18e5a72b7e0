package cmd

import (
	"context"
	"strings"

	"library-admin/config"
)

// runShell is the interactive admin session: login once, then hop between
// the entity pages. The session cookie from login rides on every request
// until the shell exits.
func runShell() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	a.printf("%s\n", a.heading("Library Admin"))
	a.printf("Backend: %s\n", a.cfg.API.BaseURL)
	a.printf("Available commands:\n")
	a.printf("  Pages: books, readers, lendings, users, overdue, dashboard\n")
	a.printf("  Session: login, theme <light|dark>\n")
	a.printf("  System: exit\n")

	for {
		a.printf("\n> ")
		if !a.scanner().Scan() {
			return nil
		}
		line := strings.TrimSpace(a.scanner().Text())
		cmd, rest, _ := strings.Cut(line, " ")

		var err error
		switch cmd {
		case "login":
			err = a.handleLogin(ctx)
		case "books":
			if err = a.loadBooks(ctx); err == nil {
				err = a.browseBooks(ctx)
			}
		case "readers":
			if err = a.loadReaders(ctx); err == nil {
				err = a.manageReaders(ctx)
			}
		case "lendings":
			if err = a.loadLendings(ctx); err == nil {
				err = a.manageLendings(ctx)
			}
		case "users":
			if err = a.loadUsers(ctx); err == nil {
				err = a.manageUsers(ctx)
			}
		case "overdue":
			err = a.runOverdue(ctx)
		case "dashboard":
			err = a.showDashboard(ctx)
		case "theme":
			err = a.handleTheme(strings.TrimSpace(rest))
		case "exit", "quit":
			a.printf("Goodbye!\n")
			return nil
		case "":
		default:
			a.printf("Unknown command. Type one of the available commands listed above.\n")
		}
		if err != nil {
			a.printf("Error: %v\n", err)
		}
	}
}

// handleTheme shows or switches the theme from inside the shell, applying
// it to the running session as well as the config file.
func (a *app) handleTheme(arg string) error {
	if arg == "" {
		a.printf("Theme: %s\n", a.cfg.Theme)
		return nil
	}
	if err := config.SaveTheme(arg); err != nil {
		return err
	}
	a.cfg.Theme = arg
	a.printf("Theme set to %s\n", arg)
	return nil
}
