package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	kerrors "github.com/seralba/journal/internal/errors"
	"github.com/seralba/journal/internal/ui"

	"github.com/spf13/cobra"
)

var (
	deleteAll   bool
	deleteForce bool
)

func init() {
	entryDeleteCmd.Flags().BoolVar(&deleteAll, "all", false, "delete every entry")
	entryDeleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation required by --all")
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a journal entry, or all of them with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting entry delete command")

		if deleteAll == (len(args) == 1) {
			return fmt.Errorf("pass either an entry id or --all")
		}
		if deleteAll && !deleteForce {
			return fmt.Errorf("deleting every entry is irreversible, re-run with --force to confirm")
		}

		spinner, cleanup := startSpinner("Deleting...", verbose)
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

		if deleteAll {
			if err := s.DeleteAllEntries(ctx); err != nil {
				return Logger.ErrorfAndReturn("Failed to delete entries: %v", err)
			}
			Logger.Infof("All entries deleted")
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Deleted all entries"
			return nil
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entry id %q", args[0])
		}

		switch err := s.DeleteEntry(ctx, id); {
		case errors.Is(err, kerrors.ErrEntryNotFound):
			spinner.FinalMSG = ui.Error.Sprint("✗") + fmt.Sprintf(" No entry with id %d", id)
			return nil
		case err != nil:
			return Logger.ErrorfAndReturn("Failed to delete entry: %v", err)
		}

		Logger.Infof("Entry %d deleted successfully", id)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Deleted entry " + ui.Highlight.Sprintf("%d", id)
		return nil
	},
}
