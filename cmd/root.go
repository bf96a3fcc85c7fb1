package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"profilemgr/config"
	"profilemgr/internal/tui"
)

// Version information
var (
	version string
	commit  string
	date    string
)

// SetVersionInfo sets the version information
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

var rootCmd = &cobra.Command{
	Use:   "profilemgr",
	Short: "Credential profile manager for Claude Code",
	Long: `A command line tool for managing named credential profiles (API keys
and Claude Pro OAuth sessions) and switching which one Claude Code uses.

Switching a profile rewrites the sourceable env script, patches
~/.claude/settings.json, and restores OAuth state where the profile
carries one. Run without arguments for the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := newManager()
		if err != nil {
			return err
		}

		has, err := manager.HasProfiles()
		if err != nil {
			return err
		}
		if !has {
			return runFirstRun(manager)
		}
		return tui.Run(manager)
	},
}

// Execute executes the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`profilemgr {{.Version}}
Commit: ` + commit + `
Date: ` + date + `
`)

	return rootCmd.Execute()
}

func newManager() (*config.Manager, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize profile manager: %w", err)
	}
	return manager, nil
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
