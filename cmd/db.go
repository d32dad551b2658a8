package cmd

import (
	"github.com/spf13/cobra"

	logger "github.com/seralba/journal/internal/logging"
)

var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Back up and restore the encrypted database",
	Long:  `Exports and imports the encrypted database file. Copies stay encrypted; the key never leaves the OS keychain.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing db command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	DbCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	DbCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	DbCmd.AddCommand(dbExportCmd)
	DbCmd.AddCommand(dbImportCmd)
}

// resetDbCommandState resets the db commands' global state for testing.
func resetDbCommandState() {
	exportDest = ""
}
