package main

import (
	"fmt"
	"os"

	"github.com/seralba/journal/cmd"
	"github.com/seralba/journal/internal/configs"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "Journal - An encrypted journal that keeps its key in your OS keychain.",
	Long: `Journal is a command-line journal that encrypts every entry at rest.
The encryption key lives in your operating system's secure credential store,
never on disk, and key files left behind by older releases are migrated in
automatically.

Usage:
  journal <command> [flags]

Available Commands:
  key        Manage the encryption key
  entry      Write, read, and manage entries
  db         Back up and restore the encrypted database

Run 'journal help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("Journal", "alligator2", "cyan", true)
		banner.Print()
		fmt.Println()
		fmt.Printf("Welcome to Journal (%s profile)! Run 'journal --help' to see available commands.\n", configs.JournalSettings.Profile)
	},
}

func init() {
	rootCmd.AddCommand(cmd.KeyCmd)
	rootCmd.AddCommand(cmd.EntryCmd)
	rootCmd.AddCommand(cmd.DbCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
