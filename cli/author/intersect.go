package author

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/database"
)

func initIntersectCommand() *cobra.Command {
	intersectCommand := &cobra.Command{
		Use:   "intersect <post_id | post_URL> <post_id | post_URL>",
		Short: "Returns usernames that took part in both posts",
		Args:  cobra.ExactArgs(2),
		Run:   runIntersectCommand,
	}
	return intersectCommand
}

func runIntersectCommand(cmd *cobra.Command, args []string) {
	var err error
	var sdb *database.ScraperDB
	var participants [2][]string

	if sdb, err = configuration.OpenExistingDatabase(); err == nil {
		defer sdb.Close()
		for i, ref := range args {
			post, findErr := sdb.FindPost(ref)
			if findErr != nil {
				err = findErr
				break
			}
			if participants[i], err = sdb.PostParticipants(post.Id); err != nil {
				break
			}
		}
	}

	if err != nil {
		log.Fatal(err)
	}

	for _, username := range intersect(participants[0], participants[1]) {
		fmt.Println(username)
	}
}

// intersect returns the members of a also in b, in a's order.
func intersect(a, b []string) (res []string) {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	for _, s := range a {
		if inB[s] {
			res = append(res, s)
		}
	}
	return
}
