package post

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/cli/render"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/database"
	"github.com/zvonler/pitchpulse/model"
)

func initGrepCommand() *cobra.Command {
	grepCommand := &cobra.Command{
		Use:   "grep <regex>...",
		Short: "Locates comments matching one or more regular expression(s)",
		Args:  cobra.MinimumNArgs(1),
		Run:   runGrepCommand,
	}
	return grepCommand
}

func runGrepCommand(cmd *cobra.Command, args []string) {
	var err error
	var sdb *database.ScraperDB
	var matches []model.AuthoredEntry

	if sdb, err = configuration.OpenExistingDatabase(); err == nil {
		defer sdb.Close()
		if matches, err = sdb.GrepComments(args); err == nil {
			err = render.Entries(matches)
		}
	}

	if err != nil {
		log.Fatal(err)
	}
}
