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

var entryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting entry show command")

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entry id %q", args[0])
		}

		spinner, cleanup := startSpinner("Loading entry...", verbose)
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

		spinner.Stop()
		title := entry.Title
		if title == "" {
			title = ui.Muted.Sprint("untitled")
		}
		fmt.Printf("%s %s\n", ui.Highlight.Sprint(title), ui.Muted.Sprint(entry.CreatedAt.Local().Format("2006-01-02 15:04")))
		if entry.Body != "" {
			fmt.Println()
			fmt.Println(entry.Body)
		}
		return nil
	},
}
