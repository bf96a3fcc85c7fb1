package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"profilemgr/config/models"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Long:  "List all saved profiles, marking the active one",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := newManager()
		if err != nil {
			return err
		}
		profiles, active, err := manager.List()
		if err != nil {
			return err
		}

		if len(profiles) == 0 {
			fmt.Println("No profiles configured. Run 'profilemgr add' to create one.")
			return nil
		}

		fmt.Println()
		printProfileList(profiles, active)
		fmt.Println()
		return nil
	},
}

// printProfileList prints the numbered profile table shared by the list
// and remove commands.
func printProfileList(profiles []models.Profile, active string) {
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

	for i, p := range profiles {
		badge := "[API]"
		if p.IsOAuth() {
			badge = "[OAuth]"
		}
		marker := ""
		if p.Name == active {
			marker = "  " + activeStyle.Render("[ACTIVE]")
		}
		fmt.Printf("  %d. %-20s %-8s - %s%s\n", i+1, p.Name, badge, p.Description, marker)
	}
}
