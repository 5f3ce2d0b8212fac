package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		full, _ := cmd.Flags().GetBool("full")
		if full {
			fmt.Println(version.Full())
			return
		}
		fmt.Println(version.String())
	},
}

func init() {
	versionCmd.Flags().Bool("full", false, "print full build details")
	rootCmd.AddCommand(versionCmd)
}
