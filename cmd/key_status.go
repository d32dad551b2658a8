package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seralba/journal/internal/configs"
	kerrors "github.com/seralba/journal/internal/errors"
	"github.com/seralba/journal/internal/keychain"
	"github.com/seralba/journal/internal/ui"

	"github.com/spf13/cobra"
)

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the state of the key, the keychain, and the data directory",
	Long: `Reports where application data lives, whether the keychain holds an
encryption key, and whether a legacy on-disk key file is still present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting key status command")
		spinner, cleanup := startSpinner("Gathering key status...", verbose)
		defer cleanup()

		settings := configs.JournalSettings
		spinner.Stop()

		fmt.Println("Key status:")
		fmt.Println()
		fmt.Printf("  profile:        %s\n", ui.Highlight.Sprint(settings.Profile))

		if settings.DataDir == "" {
			fmt.Printf("  data directory: %s could not be resolved\n", ui.Error.Sprint("✗"))
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + kerrors.UserMessage(kerrors.ErrConfigDirNotFound)
			return nil
		}
		fmt.Printf("  data directory: %s\n", ui.Path.Sprint(settings.DataDir))

		dbPath := filepath.Join(settings.DataDir, "journal.db")
		if _, err := os.Stat(dbPath); err == nil {
			fmt.Printf("  database:       %s %s\n", ui.Success.Sprint("✓"), ui.Path.Sprint(dbPath))
		} else {
			fmt.Printf("  database:       %s not created yet\n", ui.Muted.Sprint("-"))
		}

		manager, err := keychain.Open(Logger)
		if err != nil {
			fmt.Printf("  keychain:       %s %s\n", ui.Error.Sprint("✗"), kerrors.UserMessage(err))
			return nil
		}

		hasProblem := false
		switch _, err := manager.GetKey(); {
		case err == nil:
			fmt.Printf("  keychain:       %s key present\n", ui.Success.Sprint("✓"))
		case errors.Is(err, kerrors.ErrKeyNotFound):
			fmt.Printf("  keychain:       %s no key stored\n", ui.Warning.Sprint("⚠"))
			hasProblem = true
		default:
			fmt.Printf("  keychain:       %s %s\n", ui.Error.Sprint("✗"), kerrors.UserMessage(err))
			hasProblem = true
		}

		legacyPath, err := manager.DetectExistingKeyFile()
		if err != nil {
			fmt.Printf("  legacy file:    %s %s\n", ui.Error.Sprint("✗"), kerrors.UserMessage(err))
			hasProblem = true
		} else if legacyPath != "" {
			fmt.Printf("  legacy file:    %s %s\n", ui.Warning.Sprint("⚠"), ui.Path.Sprint(legacyPath))
			hasProblem = true
		} else {
			fmt.Printf("  legacy file:    %s none\n", ui.Success.Sprint("✓"))
		}

		if hasProblem {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Attention needed\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("journal key init") + " to repair the key setup"
		} else {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Everything looks healthy"
		}
		return nil
	},
}
