package cmd

import (
	"github.com/spf13/cobra"

	logger "github.com/seralba/journal/internal/logging"
)

var EntryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Write, read, and manage encrypted journal entries",
	Long:  `Provides creation, listing, viewing, editing, and deletion of journal entries. Entries are encrypted at rest with the key held in the OS keychain.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing entry command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	EntryCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	EntryCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	EntryCmd.AddCommand(entryNewCmd)
	EntryCmd.AddCommand(entryListCmd)
	EntryCmd.AddCommand(entryShowCmd)
	EntryCmd.AddCommand(entryEditCmd)
	EntryCmd.AddCommand(entryDeleteCmd)
}

// resetEntryCommandState resets the entry commands' global state for testing.
func resetEntryCommandState() {
	newTitle = ""
	newBody = ""
	editTitle = ""
	editBody = ""
	deleteAll = false
	deleteForce = false
}
