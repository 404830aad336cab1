package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planpoker",
	Short: "Real-time planning poker for agile teams",
	Long: `Planpoker runs collaborative estimation sessions: participants
pick a card in private, reveal votes together and see the rounded
average. State is shared through a relay endpoint and a broadcast
channel; the last write observed wins.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(joinCmd)
}
