package history

import (
	"fmt"
	"log"
	"time"

	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/database"
)

func NewCommand() *cobra.Command {
	historyCommand := &cobra.Command{
		Use:   "history",
		Short: "Lists the searches stored in the database",
		Args:  cobra.NoArgs,
		Run:   runHistoryCommand,
	}
	return historyCommand
}

func runHistoryCommand(cmd *cobra.Command, args []string) {
	var err error
	var sdb *database.ScraperDB
	var searches []database.Search

	if sdb, err = configuration.OpenExistingDatabase(); err == nil {
		defer sdb.Close()
		if searches, err = sdb.GetSearches(); err == nil {
			output := []string{
				"SearchID | Term | Subreddit | Performed | Posts",
			}
			for _, s := range searches {
				output = append(output, fmt.Sprintf("%d | %s | %s | %s | %d",
					s.Id, s.Term, s.Subreddit, s.Performed.Format(time.DateTime), s.Posts))
			}
			fmt.Println(columnize.SimpleFormat(output))
		}
	}

	if err != nil {
		log.Fatal(err)
	}
}
