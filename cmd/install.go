package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the shell wrapper function",
	Long: `Append the profilemgr wrapper function to the shell rc file.

The wrapper sources the active env script after every invocation, so
'profilemgr switch' takes effect in the calling shell without eval.
Installing twice is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := newManager()
		if err != nil {
			return err
		}
		return installShellFunction(manager)
	},
}
