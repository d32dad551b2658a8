package cmd

import (
	"context"
	"strings"

	kerrors "github.com/seralba/journal/internal/errors"
	"github.com/seralba/journal/internal/ui"
	"github.com/seralba/journal/internal/utils"

	"github.com/spf13/cobra"
)

var (
	newTitle string
	newBody  string
)

func init() {
	entryNewCmd.Flags().StringVarP(&newTitle, "title", "t", "", "title of the entry")
	entryNewCmd.Flags().StringVarP(&newBody, "body", "b", "", "body of the entry")
}

var entryNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new encrypted journal entry",
	Long: `Creates a new entry. The body can be given with --body or piped on stdin:

  echo "Dear diary..." | journal entry new --title "Today"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting entry new command")

		if newBody == "" && utils.IsStdinPiped() {
			Logger.Debugf("Reading entry body from stdin")
			data, err := utils.ReadStdin()
			if err != nil {
				return err
			}
			newBody = strings.TrimRight(string(data), "\n")
		}

		spinner, cleanup := startSpinner("Creating entry...", verbose)
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

		entry, err := s.CreateEntry(ctx)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to create entry: %v", err)
		}
		if newTitle != "" || newBody != "" {
			if err := s.SaveEntry(ctx, entry.ID, newTitle, newBody); err != nil {
				return Logger.ErrorfAndReturn("Failed to save entry: %v", err)
			}
		}

		Logger.Infof("Entry %d created successfully", entry.ID)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Created entry " + ui.Highlight.Sprintf("%d", entry.ID) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprintf("journal entry edit %d", entry.ID) + " to change it later"
		return nil
	},
}
