package cmd

import (
	kerrors "github.com/seralba/journal/internal/errors"
	"github.com/seralba/journal/internal/keychain"
	"github.com/seralba/journal/internal/ui"

	"github.com/spf13/cobra"
)

var keyInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Ensure an encryption key exists in the OS keychain",
	Long: `Ensures the keychain holds an encryption key, migrating a legacy on-disk
key file when one exists and generating a fresh key otherwise. Safe to run
any number of times.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting key init command")
		spinner, cleanup := startSpinner("Preparing encryption key...", verbose)
		defer cleanup()

		manager, err := keychain.Open(Logger)
		if err != nil {
			Logger.Errorf("Failed to open key manager: %v", err)
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + kerrors.UserMessage(err)
			return nil
		}

		if _, err := manager.InitializeKey(); err != nil {
			Logger.Errorf("Key initialization failed: %v", err)
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + kerrors.UserMessage(err)
			return nil
		}

		Logger.Infof("Key init command completed successfully")
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Encryption key is ready\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("journal entry new") + " to write your first entry"
		return nil
	},
}
