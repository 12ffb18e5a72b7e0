package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"library-admin/library"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage admin and staff accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.loadUsers(cmd.Context()); err != nil {
			return err
		}
		return a.manageUsers(cmd.Context())
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.loadUsers(cmd.Context()); err != nil {
			return err
		}
		a.printUsers()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
}

func (a *app) loadUsers(ctx context.Context) error {
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	a.users = users
	return nil
}

func (a *app) printUsers() {
	a.printf("%s\n", a.heading(fmt.Sprintf("Users (%d)", len(a.users))))
	if len(a.users) == 0 {
		a.printf("No accounts found.\n")
		return
	}
	a.printf("%-26s %-25s %-30s %-7s %-7s\n", "ID", "Name", "Email", "Role", "Active")
	a.printf("%s\n", strings.Repeat("-", 100))
	for _, u := range a.users {
		active := "no"
		if u.IsActive {
			active = "yes"
		}
		a.printf("%-26s %-25s %-30s %-7s %-7s\n",
			truncateString(u.ID, 26),
			truncateString(u.Name, 25),
			truncateString(u.Email, 30),
			u.Role, active)
	}
}

func (a *app) manageUsers(ctx context.Context) error {
	a.printf("%s\n", a.heading("Users - commands: list | add | edit | delete | back"))
	a.printUsers()

	for {
		a.printf("users> ")
		if !a.scanner().Scan() {
			return nil
		}
		switch strings.TrimSpace(a.scanner().Text()) {
		case "list":
			a.printUsers()
		case "add":
			a.handleAddUser(ctx)
		case "edit":
			a.handleEditUser(ctx)
		case "delete":
			a.handleDeleteUser(ctx)
		case "back", "quit", "exit":
			return nil
		case "":
		default:
			a.printf("Unknown command.\n")
		}
	}
}

// handleAddUser registers an account through the signup endpoint. The
// password is read masked and never echoed.
func (a *app) handleAddUser(ctx context.Context) {
	name, ok := a.prompt("Name")
	if !ok {
		return
	}
	email, ok := a.prompt("Email")
	if !ok {
		return
	}
	role, ok := a.promptDefault("Role (admin/staff)", string(library.RoleStaff))
	if !ok {
		return
	}
	password, err := readPassword(fmt.Sprintf("Password for %s", name))
	if err != nil {
		a.printf("Error reading password: %v\n", err)
		return
	}

	u := library.User{
		Name:     name,
		Email:    email,
		Role:     library.Role(strings.ToLower(role)),
		IsActive: true,
		Password: password,
	}
	if fe := library.ValidateUser(u, false); !fe.Ok() {
		a.printf("Validation failed: %s\n", fe.Error())
		return
	}
	created, err := a.client.Signup(ctx, u)
	if err != nil {
		a.printf("Failed to create user: %v\n", err)
		return
	}
	a.users = library.Upsert(a.users, created)
	a.printf("Created %s account for %s\n", created.Role, created.Name)
}

func (a *app) handleEditUser(ctx context.Context) {
	id, ok := a.prompt("User ID")
	if !ok {
		return
	}
	existing, found := library.Find(a.users, id)
	if !found {
		a.printf("No user with ID %s in the loaded list.\n", id)
		return
	}

	name, ok := a.promptDefault("Name", existing.Name)
	if !ok {
		return
	}
	email, ok := a.promptDefault("Email", existing.Email)
	if !ok {
		return
	}
	role, ok := a.promptDefault("Role (admin/staff)", string(existing.Role))
	if !ok {
		return
	}
	active, ok := a.promptDefault("Active (y/n)", boolYN(existing.IsActive))
	if !ok {
		return
	}
	// Empty keeps the current password.
	password, err := readPassword("New password (enter to keep)")
	if err != nil {
		a.printf("Error reading password: %v\n", err)
		return
	}

	u := library.User{
		Name:     name,
		Email:    email,
		Role:     library.Role(strings.ToLower(role)),
		IsActive: strings.EqualFold(active, "y") || strings.EqualFold(active, "yes"),
		Password: password,
	}
	if fe := library.ValidateUser(u, true); !fe.Ok() {
		a.printf("Validation failed: %s\n", fe.Error())
		return
	}
	updated, err := a.client.UpdateUser(ctx, id, u)
	if err != nil {
		a.printf("Failed to update user: %v\n", err)
		return
	}
	a.users = library.Upsert(a.users, updated)
	a.printf("Updated user %s\n", updated.Name)
}

func (a *app) handleDeleteUser(ctx context.Context) {
	id, ok := a.prompt("User ID")
	if !ok {
		return
	}
	u, found := library.Find(a.users, id)
	if !found {
		a.printf("No user with ID %s in the loaded list.\n", id)
		return
	}
	confirm, ok := a.prompt(fmt.Sprintf("Delete account %q? (y/N)", u.Email))
	if !ok || !strings.EqualFold(confirm, "y") {
		return
	}
	if err := a.client.DeleteUser(ctx, id); err != nil {
		a.printf("Failed to delete user: %v\n", err)
		return
	}
	a.users = library.Remove(a.users, id)
	a.printf("Deleted account %s\n", u.Email)
}

func boolYN(b bool) string {
	if b {
		return "y"
	}
	return "n"
}
