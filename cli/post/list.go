package post

import (
	"fmt"
	"log"

	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/database"
	"github.com/zvonler/pitchpulse/model"
)

func initListCommand() *cobra.Command {
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists posts in the database",
		Args:  cobra.NoArgs,
		Run:   runListCommand,
	}
	return listCommand
}

func runListCommand(cmd *cobra.Command, args []string) {
	var err error
	var sdb *database.ScraperDB
	var posts []model.StoredPost

	if sdb, err = configuration.OpenExistingDatabase(); err == nil {
		defer sdb.Close()
		if posts, err = sdb.GetPosts(); err == nil {
			fmt.Println(columnize.SimpleFormat(listRows(posts)))
		}
	}

	if err != nil {
		log.Fatal(err)
	}
}

func listRows(posts []model.StoredPost) []string {
	output := []string{
		"PostID | Search | Author | Title | URL",
	}
	for _, p := range posts {
		output = append(output, fmt.Sprintf("%d | %d | %s | %s | %s",
			p.Id, p.SearchId, model.Deref(p.Post.Post.Author), model.Deref(p.Title), p.URL))
	}
	return output
}
