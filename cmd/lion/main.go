package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:           "lion",
		Short:         "Lion post-quantum linkable ring signatures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().Bool(verboseKey, false, "Log at debug level")
	cmd.AddCommand(
		keygenCommand(),
		keyImageCommand(),
		signCommand(),
		verifyCommand(),
	)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lion:", err)
		os.Exit(1)
	}
}
