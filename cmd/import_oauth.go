package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"profilemgr/config"
)

func init() {
	rootCmd.AddCommand(importOAuthCmd)
	importOAuthCmd.Flags().StringP("name", "n", "", "Profile name (default: claude-pro)")
	importOAuthCmd.Flags().StringP("description", "d", "", "Profile description")
	importOAuthCmd.Flags().StringP("model", "m", "", "Claude Code model override")
}

var importOAuthCmd = &cobra.Command{
	Use:   "import-oauth",
	Short: "Import an OAuth profile from the live Claude Code session",
	Long: `Import an OAuth profile from the live Claude Code session.

Reads the oauthAccount section of ~/.claude.json and the token bundle
in ~/.claude/.credentials.json, and stores them as a profile that can
be restored later. Requires a prior 'claude setup-token'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := newManager()
		if err != nil {
			return err
		}

		info := manager.ExtractOAuthInfo()
		if info == nil {
			return fmt.Errorf("%w: run 'claude setup-token' first to authenticate with Claude Pro", config.ErrNoOAuthAccount)
		}

		fmt.Println()
		fmt.Println("Found OAuth account")
		fmt.Printf("  Email: %s\n", info.EmailAddress)
		if info.DisplayName != "" {
			fmt.Printf("  Name: %s\n", info.DisplayName)
		}
		if info.OrganizationName != "" {
			fmt.Printf("  Organization: %s\n", info.OrganizationName)
		}
		if info.OrganizationRole != "" {
			fmt.Printf("  Role: %s\n", info.OrganizationRole)
		}
		fmt.Println()

		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		model, _ := cmd.Flags().GetString("model")

		if name == "" && isTerminal() {
			reader := bufio.NewReader(os.Stdin)
			name = promptLine(reader, "  Profile name (default: claude-pro): ")
			if description == "" {
				description = promptLine(reader, "  Description (blank for default): ")
			}
			if model == "" {
				model = promptLine(reader, "  Claude Code model override (blank for default): ")
			}
		}
		if name == "" {
			name = "claude-pro"
		}

		profile, activated, err := manager.ImportOAuth(name, description, model)
		if err != nil {
			return err
		}
		if activated {
			fmt.Printf("\nOAuth profile '%s' added and activated (first profile).\n", profile.Name)
		} else {
			fmt.Printf("\nOAuth profile '%s' added.\n", profile.Name)
			fmt.Printf("Use 'profilemgr switch %s' to activate.\n", profile.Name)
		}
		return nil
	},
}
