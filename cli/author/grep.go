package author

import (
	"fmt"
	"log"

	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/database"
)

func initGrepCommand() *cobra.Command {
	grepCommand := &cobra.Command{
		Use:   "grep <regex>...",
		Short: "Locates author usernames matching one or more regular expression(s)",
		Args:  cobra.MinimumNArgs(1),
		Run:   runGrepCommand,
	}
	return grepCommand
}

func runGrepCommand(cmd *cobra.Command, args []string) {
	var err error
	var sdb *database.ScraperDB
	var summaries []database.AuthorSummary

	if sdb, err = configuration.OpenExistingDatabase(); err == nil {
		defer sdb.Close()
		if summaries, err = sdb.GrepAuthors(args); err == nil {
			output := []string{
				"Username | Posts | Comments",
			}
			for _, s := range summaries {
				output = append(output, fmt.Sprintf("%s | %d | %d", s.Username, s.Posts, s.Comments))
			}
			fmt.Println(columnize.SimpleFormat(output))
		}
	}

	if err != nil {
		log.Fatal(err)
	}
}
