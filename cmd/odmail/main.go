// Command odmail composes and sends OD approval emails from the shell using
// the same parser, matcher, composer and relays as the server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "odmail",
		Short:         "OD approval email generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config/config.yaml)")

	root.AddCommand(
		newSlotsCmd(),
		newGenerateCmd(&configPath),
		newSendCmd(&configPath),
		newVerifyCmd(&configPath),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
