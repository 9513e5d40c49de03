package author

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/cli/render"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/database"
	"github.com/zvonler/pitchpulse/model"
)

func initContentCommand() *cobra.Command {
	contentCommand := &cobra.Command{
		Use:   "content <username>",
		Short: "Prints the content of an author's posts and comments",
		Args:  cobra.ExactArgs(1),
		Run:   runContentCommand,
	}
	return contentCommand
}

func runContentCommand(cmd *cobra.Command, args []string) {
	var err error
	var sdb *database.ScraperDB
	var entries []model.AuthoredEntry

	if sdb, err = configuration.OpenExistingDatabase(); err == nil {
		defer sdb.Close()
		if entries, err = sdb.AuthorEntries(args[0]); err == nil {
			err = render.Entries(entries)
		}
	}

	if err != nil {
		log.Fatal(err)
	}
}
