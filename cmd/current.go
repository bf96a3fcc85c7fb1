package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"profilemgr/internal/utils"
)

func init() {
	rootCmd.AddCommand(currentCmd)
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the active profile",
	Long:  "Show the currently active profile and its credential details",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := newManager()
		if err != nil {
			return err
		}
		profiles, active, err := manager.List()
		if err != nil {
			return err
		}

		if active == "" {
			fmt.Println("No active profile.")
			return nil
		}

		idx := -1
		for i := range profiles {
			if profiles[i].Name == active {
				idx = i
				break
			}
		}
		if idx < 0 {
			fmt.Printf("%s (profile data not found)\n", active)
			return nil
		}
		p := profiles[idx]

		fmt.Printf("%s (%s)\n", active, p.Description)

		switch {
		case p.IsOAuth():
			fmt.Println("  Type: OAuth (Claude Pro subscription)")
			if p.EmailAddress != "" {
				fmt.Printf("  Account: %s\n", p.EmailAddress)
			}
			if p.OrganizationName != "" {
				fmt.Printf("  Organization: %s\n", p.OrganizationName)
			}
			if p.AccountUUID != "" {
				fmt.Printf("  Account UUID: %s\n", p.AccountUUID)
			}
			fmt.Println("  Auth: native Claude Code OAuth (from ~/.claude.json)")
		case p.APIKey != "":
			fmt.Println("  Type: API key")
			fmt.Printf("  API key: %s\n", utils.MaskAPIKey(p.APIKey))
			if p.BaseURL != "" {
				fmt.Printf("  Base URL: %s\n", p.BaseURL)
			}
		default:
			fmt.Println("  Type: no auth (e.g. Ollama)")
			if p.BaseURL != "" {
				fmt.Printf("  Base URL: %s\n", p.BaseURL)
			}
		}

		if p.Model != "" {
			fmt.Printf("  Model: %s\n", p.Model)
		}
		return nil
	},
}
