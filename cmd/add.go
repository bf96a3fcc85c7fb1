package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"profilemgr/config"
	"profilemgr/config/models"
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringP("type", "t", models.TypeAPI, `Profile type: "api" or "oauth"`)
	addCmd.Flags().StringP("key", "k", "", "API key (blank for keyless endpoints like Ollama)")
	addCmd.Flags().StringP("url", "u", "", "Base URL")
	addCmd.Flags().StringP("description", "d", "", "Profile description")
	addCmd.Flags().StringP("model", "m", "", "Claude Code model override")
}

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new profile",
	Long: `Add a new profile.

Usage 1: interactive (recommended)
  profilemgr add

Usage 2: command line arguments
  profilemgr add my-proxy --key sk-xxx --url https://proxy.example.com
  profilemgr add claude-pro --type oauth`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := newManager()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			if !isTerminal() {
				return fmt.Errorf("interactive add requires a terminal; use: profilemgr add <name> [--key <key>] [--url <url>]")
			}
			return addInteractive(manager, bufio.NewReader(os.Stdin))
		}

		name := args[0]
		profileType, _ := cmd.Flags().GetString("type")
		apiKey, _ := cmd.Flags().GetString("key")
		baseURL, _ := cmd.Flags().GetString("url")
		description, _ := cmd.Flags().GetString("description")
		model, _ := cmd.Flags().GetString("model")

		var profile models.Profile
		switch profileType {
		case models.TypeOAuth:
			info := manager.ExtractOAuthInfo()
			if info == nil {
				return fmt.Errorf("%w: run 'claude setup-token' first to authenticate with Claude Pro", config.ErrNoOAuthAccount)
			}
			profile = info.Profile(name, description, model)
		case models.TypeAPI:
			if description == "" {
				description = name
			}
			profile = models.Profile{
				Name:        name,
				Description: description,
				Type:        models.TypeAPI,
				APIKey:      apiKey,
				BaseURL:     baseURL,
				Model:       model,
			}
		default:
			return fmt.Errorf("unknown profile type: %s", profileType)
		}

		activated, err := manager.Add(profile)
		if err != nil {
			return err
		}
		if activated {
			fmt.Printf("Profile '%s' added and activated (first profile).\n", name)
		} else {
			fmt.Printf("Profile '%s' added.\n", name)
		}
		return nil
	},
}
