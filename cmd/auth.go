package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify admin credentials against the backend",
	Long: `Authenticates against /auth/login. The session cookie is held in
memory for the lifetime of the process; nothing is persisted. Within the
interactive shell the session carries over to every later request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.handleLogin(cmd.Context())
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password <email>",
	Short: "Start a password reset for an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.client.ForgotPassword(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to request password reset: %w", err)
		}
		a.printf("Password reset email sent to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
}

func (a *app) handleLogin(ctx context.Context) error {
	email, ok := a.prompt("Email")
	if !ok {
		return nil
	}
	password, err := readPassword("Password")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if user.Name != "" {
		a.printf("Logged in as %s (%s)\n", user.Name, user.Role)
	} else {
		a.printf("Logged in as %s\n", email)
	}
	return nil
}
