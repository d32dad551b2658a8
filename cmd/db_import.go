package cmd

import (
	"github.com/seralba/journal/internal/configs"
	kerrors "github.com/seralba/journal/internal/errors"
	"github.com/seralba/journal/internal/store"
	"github.com/seralba/journal/internal/ui"

	"github.com/spf13/cobra"
)

var dbImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the database with a previously exported copy",
	Long: `Replaces the database with the given export. The current database is kept
next to it as a .backup file, so a bad import can be undone by hand. The
import must have been written with the key in this machine's keychain.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting db import command")
		spinner, cleanup := startSpinner("Importing database...", verbose)
		defer cleanup()

		settings := configs.JournalSettings
		if settings.DataDir == "" {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + kerrors.UserMessage(kerrors.ErrConfigDirNotFound)
			return nil
		}

		if err := store.ImportDatabase(settings.DataDir, args[0]); err != nil {
			Logger.Errorf("Import failed: %v", err)
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + kerrors.UserMessage(err)
			return nil
		}

		Logger.Infof("Db import command completed successfully")
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Imported " + ui.Path.Sprint(args[0]) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("journal entry list") + " to confirm the entries decrypt"
		return nil
	},
}
