package post

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/cli/render"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/database"
	"github.com/zvonler/pitchpulse/model"
)

func initPresentCommand() *cobra.Command {
	presentCommand := &cobra.Command{
		Use:   "present <post_id | post_URL>",
		Short: "Formats the content of a post for human consumption",
		Args:  cobra.ExactArgs(1),
		Run:   runPresentCommand,
	}
	return presentCommand
}

func runPresentCommand(cmd *cobra.Command, args []string) {
	var err error
	var sdb *database.ScraperDB
	var post model.StoredPost

	if sdb, err = configuration.OpenExistingDatabase(); err == nil {
		defer sdb.Close()
		if post, err = sdb.FindPost(args[0]); err == nil {
			err = render.Post(post.Post)
		}
	}

	if err != nil {
		log.Fatal(err)
	}
}
