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
	editTitle string
	editBody  string
)

func init() {
	entryEditCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title for the entry")
	entryEditCmd.Flags().StringVarP(&editBody, "body", "b", "", "new body for the entry")
}

var entryEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update the title or body of an existing entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting entry edit command")

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entry id %q", args[0])
		}
		if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("body") {
			return fmt.Errorf("nothing to change, pass --title or --body")
		}

		spinner, cleanup := startSpinner("Saving entry...", verbose)
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

		entry, err := s.Entry(ctx, id)
		if errors.Is(err, kerrors.ErrEntryNotFound) {
			spinner.FinalMSG = ui.Error.Sprint("✗") + fmt.Sprintf(" No entry with id %d", id)
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load entry: %v", err)
		}

		title, body := entry.Title, entry.Body
		if cmd.Flags().Changed("title") {
			title = editTitle
		}
		if cmd.Flags().Changed("body") {
			body = editBody
		}

		if err := s.SaveEntry(ctx, id, title, body); err != nil {
			return Logger.ErrorfAndReturn("Failed to save entry: %v", err)
		}

		Logger.Infof("Entry %d updated successfully", id)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Updated entry " + ui.Highlight.Sprintf("%d", id)
		return nil
	},
}
