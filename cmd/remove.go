package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"profilemgr/config/models"
)

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

var removeCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a profile",
	Long: `Remove a profile by name or by its number in the list.

When the removed profile was active, the first remaining profile
becomes active; removing the last profile deletes the env script
altogether. Without an argument the profile is chosen interactively.`,
	Args: cobra.MaximumNArgs(1),
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
			fmt.Println("No profiles to remove.")
			return nil
		}

		reader := bufio.NewReader(os.Stdin)

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			fmt.Println()
			printProfileList(profiles, active)
			fmt.Println()
			name = promptLine(reader, "Enter profile name or # to remove: ")
			if name == "" {
				fmt.Println("Cancelled.")
				return nil
			}
		}
		name = resolveProfileArg(profiles, name)

		if skip, _ := cmd.Flags().GetBool("yes"); !skip {
			fmt.Printf("Remove profile '%s'? [y/N]: ", name)
			answer, err := reader.ReadString('\n')
			// Piped input hits EOF here; proceed rather than refuse.
			if err == nil && strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		outcome, err := manager.Remove(name)
		if err != nil {
			return err
		}
		if outcome.WasActive && outcome.NewActive != "" {
			fmt.Printf("Active profile changed to: %s\n", outcome.NewActive)
		}
		fmt.Printf("Profile '%s' removed.\n", name)
		return nil
	},
}

// resolveProfileArg maps a 1-based list number onto the profile name it
// refers to; anything else passes through unchanged.
func resolveProfileArg(profiles []models.Profile, arg string) string {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 || idx > len(profiles) {
		return arg
	}
	return profiles[idx-1].Name
}
