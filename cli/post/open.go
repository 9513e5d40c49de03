package post

import (
	"log"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/database"
	"github.com/zvonler/pitchpulse/model"
)

func initOpenCommand() *cobra.Command {
	openCommand := &cobra.Command{
		Use:   "open <post_id | post_URL>",
		Short: "Opens a post in a browser.",
		Args:  cobra.ExactArgs(1),
		Run:   runOpenCommand,
	}
	return openCommand
}

func runOpenCommand(cmd *cobra.Command, args []string) {
	var err error
	var sdb *database.ScraperDB
	var post model.StoredPost

	if sdb, err = configuration.OpenExistingDatabase(); err == nil {
		defer sdb.Close()
		if post, err = sdb.FindPost(args[0]); err == nil {
			err = browser.OpenURL(post.URL)
		}
	}

	if err != nil {
		log.Fatal(err)
	}
}
