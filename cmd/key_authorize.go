package cmd

import (
	kerrors "github.com/seralba/journal/internal/errors"
	"github.com/seralba/journal/internal/keychain"
	"github.com/seralba/journal/internal/ui"

	"github.com/spf13/cobra"
)

var keyAuthorizeCmd = &cobra.Command{
	Use:   "authorize",
	Short: "Verify the encryption key can be read from the OS keychain",
	Long: `Confirms the keychain grants access to the encryption key, triggering the
OS permission prompt if one is pending. The key itself is never printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting key authorize command")
		spinner, cleanup := startSpinner("Checking keychain access...", verbose)
		defer cleanup()

		manager, err := keychain.Open(Logger)
		if err != nil {
			Logger.Errorf("Failed to open key manager: %v", err)
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + kerrors.UserMessage(err)
			return nil
		}

		if err := manager.Authorize(); err != nil {
			Logger.Errorf("Authorization failed: %v", err)
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + kerrors.UserMessage(err)
			return nil
		}

		Logger.Infof("Key authorize command completed successfully")
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Keychain access confirmed"
		return nil
	},
}
