package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"library-admin/config"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show the current theme preference",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Println(cfg.Theme)
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set <light|dark>",
	Short: "Persist the theme preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveTheme(args[0]); err != nil {
			return err
		}
		fmt.Printf("Theme set to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeSetCmd)
}
