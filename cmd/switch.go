package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(switchCmd)
}

var switchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Switch to the specified profile",
	Long: `Switch to the specified profile.

Rewrites the active env script, patches the managed keys in
~/.claude/settings.json, and restores the profile's OAuth session when
it carries one. The shell wrapper installed by 'profilemgr install'
sources the env script afterwards so the switch takes effect in the
calling shell.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		manager, err := newManager()
		if err != nil {
			return err
		}
		if err := manager.Switch(name); err != nil {
			return err
		}

		profile, err := manager.Get(name)
		if err != nil {
			return err
		}

		successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Switched to: %s (%s)", name, profile.Description)))
		fmt.Printf("Environment written to %s\n", manager.Paths().EnvScriptPath)
		return nil
	},
}
