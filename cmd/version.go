package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// versionCmd prints the caller's installed chip8-emu version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the currently installed chip8-emu version",
	Long:  "Run `chip8-emu version` to print your current chip8-emu version",
	Args:  cobra.NoArgs,
	Run:   runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	if len(args) != 0 {
		fmt.Println("the version command does not take any arguments")
		os.Exit(1)
	}
	fmt.Println(currentReleaseVersion)
}
