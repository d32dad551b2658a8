package cmd

import (
	"context"
	"fmt"

	kerrors "github.com/seralba/journal/internal/errors"
	"github.com/seralba/journal/internal/ui"
	"github.com/seralba/journal/internal/utils"

	"github.com/spf13/cobra"
)

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting entry list command")
		spinner, cleanup := startSpinner("Loading entries...", verbose)
		defer cleanup()

		ctx := context.Background()
		s, err := openJournal(ctx)
		if err != nil {
			Logger.Errorf("Failed to open journal: %v", err)
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + kerrors.UserMessage(err)
			return nil
		}
		defer func() {
			if err := s.Close(); err != nil {
				Logger.Warnf("Failed to close store: %v", err)
			}
		}()

		entries, err := s.Entries(ctx)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to list entries: %v", err)
		}

		spinner.Stop()
		if len(entries) == 0 {
			spinner.FinalMSG = ui.Muted.Sprint("no entries yet") + "\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("journal entry new") + " to write one"
			return nil
		}

		for _, entry := range entries {
			title := utils.Truncate(entry.Title, 60)
			if title == "" {
				title = ui.Muted.Sprint("untitled")
			}
			fmt.Printf("  %4d  %s  %s\n", entry.ID, entry.CreatedAt.Local().Format("2006-01-02 15:04"), title)
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" %d entries", len(entries))
		return nil
	},
}
