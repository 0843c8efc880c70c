package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bectucalc",
	Short: "Offline BECTU timesheet calculator",
	Long: `bectucalc prices recorded shoot days against a rate card without a
running server. Entries and rate cards are plain JSON files using the same
field names as the API.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(weekCmd)
}
