package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Unset all managed environment variables",
	Long: `Unset every managed environment variable, remove the managed keys
from ~/.claude/settings.json, delete stored OAuth state, and
deactivate the current profile. The profiles themselves are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := newManager()
		if err != nil {
			return err
		}
		if err := manager.Clear(); err != nil {
			return err
		}

		fmt.Println("Environment cleared. No profile active.")
		fmt.Printf("Source %s (or open a new terminal) to apply.\n", manager.Paths().EnvScriptPath)
		return nil
	},
}
