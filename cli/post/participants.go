package post

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/database"
	"github.com/zvonler/pitchpulse/model"
)

func initParticipantsCommand() *cobra.Command {
	participantsCommand := &cobra.Command{
		Use:   "participants <post_id | post_URL>",
		Short: "Lists the authors that have posted or commented in a post",
		Args:  cobra.ExactArgs(1),
		Run:   runParticipantsCommand,
	}
	return participantsCommand
}

func runParticipantsCommand(cmd *cobra.Command, args []string) {
	var err error
	var sdb *database.ScraperDB
	var post model.StoredPost
	var usernames []string

	if sdb, err = configuration.OpenExistingDatabase(); err == nil {
		defer sdb.Close()
		if post, err = sdb.FindPost(args[0]); err == nil {
			if usernames, err = sdb.PostParticipants(post.Id); err == nil {
				for _, username := range usernames {
					fmt.Println(username)
				}
			}
		}
	}

	if err != nil {
		log.Fatal(err)
	}
}
