package cmd

import (
	logger "github.com/seralba/journal/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	KeyCmd = &cobra.Command{
		Use:   "key",
		Short: "Manage the encryption key held in the OS keychain",
		Long:  `Provides initialization, authorization, legacy key file migration, and health checks for the encryption key.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing key command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	KeyCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	KeyCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	KeyCmd.AddCommand(keyInitCmd)
	KeyCmd.AddCommand(keyAuthorizeCmd)
	KeyCmd.AddCommand(keyMigrateCmd)
	KeyCmd.AddCommand(keyStatusCmd)
}

// Helper functions for testing

// GetKeyCmd returns the KeyCmd for testing.
func GetKeyCmd() *cobra.Command {
	return KeyCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetEntryCommandState()
	resetDbCommandState()
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
