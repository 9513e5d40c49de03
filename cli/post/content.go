package post

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/database"
	"github.com/zvonler/pitchpulse/model"
)

func initContentCommand() *cobra.Command {
	contentCommand := &cobra.Command{
		Use:   "content <post_id | post_URL>",
		Short: "Prints the comment bodies of a post",
		Args:  cobra.ExactArgs(1),
		Run:   runContentCommand,
	}
	return contentCommand
}

func runContentCommand(cmd *cobra.Command, args []string) {
	var err error
	var sdb *database.ScraperDB
	var post model.StoredPost

	if sdb, err = configuration.OpenExistingDatabase(); err == nil {
		defer sdb.Close()
		if post, err = sdb.FindPost(args[0]); err == nil {
			for _, comment := range post.Comments {
				fmt.Println(comment.Body)
			}
		}
	}

	if err != nil {
		log.Fatal(err)
	}
}
