package cmd

import (
	"os"

	"github.com/seralba/journal/internal/configs"
	kerrors "github.com/seralba/journal/internal/errors"
	"github.com/seralba/journal/internal/store"
	"github.com/seralba/journal/internal/ui"

	"github.com/spf13/cobra"
)

var exportDest string

func init() {
	dbExportCmd.Flags().StringVarP(&exportDest, "dest", "o", "", "directory to export into (defaults to the current directory)")
}

var dbExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an encrypted copy of the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting db export command")
		spinner, cleanup := startSpinner("Exporting database...", verbose)
		defer cleanup()

		settings := configs.JournalSettings
		if settings.DataDir == "" {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + kerrors.UserMessage(kerrors.ErrConfigDirNotFound)
			return nil
		}

		dest := exportDest
		if dest == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to resolve current directory: %v", err)
			}
			dest = cwd
		}

		exported, err := store.ExportDatabase(settings.DataDir, dest)
		if err != nil {
			Logger.Errorf("Export failed: %v", err)
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + kerrors.UserMessage(err)
			return nil
		}

		Logger.Infof("Db export command completed successfully")
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Exported database to " + ui.Path.Sprint(exported) + "\n" +
			ui.Muted.Sprint("the copy is encrypted; it is unreadable without the key in your keychain")
		return nil
	},
}
