package cmd

import (
	kerrors "github.com/seralba/journal/internal/errors"
	"github.com/seralba/journal/internal/keychain"
	"github.com/seralba/journal/internal/ui"

	"github.com/spf13/cobra"
)

var keyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move a legacy on-disk key file into the OS keychain",
	Long: `Looks for a key file left behind by older releases and moves its contents
into the keychain. The file is backed up before the move and restored if
anything goes wrong, so the key is never lost partway through.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting key migrate command")
		spinner, cleanup := startSpinner("Migrating legacy key file...", verbose)
		defer cleanup()

		manager, err := keychain.Open(Logger)
		if err != nil {
			Logger.Errorf("Failed to open key manager: %v", err)
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + kerrors.UserMessage(err)
			return nil
		}

		path, err := manager.DetectExistingKeyFile()
		if err != nil {
			Logger.Errorf("Key file detection failed: %v", err)
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + kerrors.UserMessage(err)
			return nil
		}
		if path == "" {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " No legacy key file found, nothing to migrate"
			return nil
		}

		Logger.Debugf("Found legacy key file at: %s", path)
		if err := manager.MigrateExistingKey(path); err != nil {
			Logger.Errorf("Migration failed: %v", err)
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + kerrors.UserMessage(err)
			return nil
		}

		Logger.Infof("Key migrate command completed successfully")
		spinner.FinalMSG = ui.Success.Sprint("✓") + " The following changes were made:\n" +
			"    moved into keychain: " + ui.Path.Sprint(path)
		return nil
	},
}
