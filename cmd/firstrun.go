package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"profilemgr/config"
	"profilemgr/config/models"
	"profilemgr/internal/shell"
	"profilemgr/internal/utils"
)

// runFirstRun handles the empty-store experience: offer to import keys
// found in the shell rc files, otherwise walk the user through creating
// the first profile, then install the shell wrapper either way.
func runFirstRun(manager *config.Manager) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	fmt.Println()
	fmt.Println(headerStyle.Render("Claude Profile Manager - First Run Setup"))
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	detected := shell.DetectProfiles(shell.DefaultRCCandidates()...)
	if len(detected) > 0 {
		fmt.Printf("Found %d potential profile(s) in shell config:\n", len(detected))
		for _, p := range detected {
			fmt.Printf("  - %s: %s\n", p.Name, p.Description)
			fmt.Printf("    Key: %s  URL: %s\n", utils.MaskAPIKey(p.APIKey), p.BaseURL)
		}
		fmt.Println()

		answer := promptLine(reader, "Import these profiles? [Y/n]: ")
		if strings.ToLower(answer) != "n" {
			if err := manager.ImportProfiles(detected); err != nil {
				return err
			}
			fmt.Printf("\nImported %d profile(s). Active: %s\n", len(detected), detected[0].Name)
			return installShellFunction(manager)
		}
	}

	fmt.Println("No existing profiles found. Let's create your first profile.")
	fmt.Println()

	if err := addInteractive(manager, reader); err != nil {
		return err
	}
	return installShellFunction(manager)
}

// addInteractive prompts for a new profile's fields and adds it.
func addInteractive(manager *config.Manager, reader *bufio.Reader) error {
	fmt.Println()
	fmt.Println("Add new profile")

	name := promptLine(reader, "  Profile name (e.g. claude-direct): ")
	if name == "" {
		fmt.Println("Cancelled.")
		return nil
	}
	description := promptLine(reader, "  Description: ")

	fmt.Println()
	fmt.Println("  Profile types:")
	fmt.Println("    1. OAuth - use a Claude Pro subscription (via 'claude setup-token')")
	fmt.Println("    2. API key - use a key from the Anthropic Console or a proxy")
	fmt.Println()
	choice := promptLine(reader, "  Select type [1/2] (default: 2): ")

	var profile models.Profile
	if choice == "1" {
		info := manager.ExtractOAuthInfo()
		if info == nil {
			return fmt.Errorf("%w: run 'claude setup-token' first to authenticate with Claude Pro", config.ErrNoOAuthAccount)
		}

		fmt.Printf("\n  Found OAuth account: %s\n", info.EmailAddress)
		if info.OrganizationName != "" {
			fmt.Printf("  Organization: %s\n", info.OrganizationName)
		}
		fmt.Println()

		model := promptLine(reader, "  Claude Code model override (blank for default): ")
		profile = info.Profile(name, description, model)
	} else {
		apiKey := promptLine(reader, "  API key (blank for none, e.g. Ollama): ")
		baseURL := promptLine(reader, "  Base URL (e.g. https://api.anthropic.com): ")
		model := promptLine(reader, "  Claude Code model override (blank for default): ")
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
	}

	activated, err := manager.Add(profile)
	if err != nil {
		return err
	}
	if activated {
		fmt.Printf("\nProfile '%s' added and activated (first profile).\n", name)
	} else {
		fmt.Printf("\nProfile '%s' added.\n", name)
	}
	return nil
}

// installShellFunction appends the wrapper function to the current
// shell's rc file unless it is already there.
func installShellFunction(manager *config.Manager) error {
	rcPath, err := shell.DetectRC()
	if err != nil {
		return fmt.Errorf("failed to locate shell rc file: %w", err)
	}
	if _, err := os.Stat(rcPath); os.IsNotExist(err) {
		fmt.Printf("%s not found, skipping shell function install.\n", rcPath)
		return nil
	}

	installer := shell.NewInstaller(manager.Paths().EnvScriptPath)
	installed, err := installer.Install(rcPath)
	if err != nil {
		return err
	}
	if !installed {
		fmt.Printf("Shell function already in %s\n", rcPath)
		return nil
	}
	fmt.Printf("Added profilemgr shell function to %s\n", rcPath)
	fmt.Printf("Run: source %s  (or open a new terminal)\n", rcPath)
	return nil
}

// promptLine prints the prompt and returns the trimmed response line.
func promptLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
