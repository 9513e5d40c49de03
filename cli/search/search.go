package search

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/artifact"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/reddit"
)

var (
	subreddit      string
	output         string
	format         string
	store          bool
	dedupe         bool
	failFast       bool
	strictDates    bool
	checkSubreddit bool
)

func NewCommand() *cobra.Command {
	searchCommand := &cobra.Command{
		Use:   "search <term>...",
		Short: "Searches Reddit and saves every result thread with its comments",
		Args:  cobra.MinimumNArgs(1),
		Example: "" +
			"  " + os.Args[0] + " search arsenal chelsea --subreddit soccer\n" +
			"  " + os.Args[0] + " search 'cute elephant photos' --output elephants.yaml --store",
		Run: runSearchCommand,
	}

	searchCommand.Flags().StringVarP(&subreddit, "subreddit", "r", "", "Restrict the search to a subreddit")
	searchCommand.Flags().StringVarP(&output, "output", "o", "reddit-data.json", "Artifact filename")
	searchCommand.Flags().StringVar(&format, "format", "", "Artifact format, json or yaml (default from the output extension)")
	searchCommand.Flags().BoolVar(&store, "store", false, "Also store posts in the database")
	searchCommand.Flags().BoolVar(&dedupe, "dedupe", false, "Fetch each result link only once")
	searchCommand.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first thread that cannot be fetched")
	searchCommand.Flags().BoolVar(&strictDates, "strict-dates", false, "Fail on entries without a timestamp")
	searchCommand.Flags().BoolVar(&checkSubreddit, "check-subreddit", false, "Confirm the subreddit exists before searching")

	return searchCommand
}

func runSearchCommand(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	term := strings.Join(args, " ")

	cfg := configuration.ScraperConfig()
	cfg.Dedupe = dedupe
	cfg.FailFast = failFast
	cfg.RequireDate = strictDates

	if checkSubreddit && subreddit != "" {
		getter, err := reddit.NewSubredditGetter()
		if err != nil {
			log.Fatal(err)
		}
		if subreddit, err = reddit.CanonicalSubreddit(ctx, getter, subreddit); err != nil {
			log.Fatal(err)
		}
	}

	fetcher, err := reddit.NewFetcher(cfg)
	if err != nil {
		log.Fatal(err)
	}

	artifactFormat, err := artifact.FormatFor(output, format)
	if err != nil {
		log.Fatal(err)
	}
	aw, err := artifact.Create(output, artifactFormat)
	if err != nil {
		log.Fatal(err)
	}

	sinks := []reddit.Sink{aw}
	if store {
		sdb, err := configuration.OpenDatabase()
		if err != nil {
			log.Fatal(err)
		}
		defer sdb.Close()

		searchId, err := sdb.InsertSearch(term, subreddit, time.Now())
		if err != nil {
			log.Fatal(err)
		}
		sinks = append(sinks, sdb.PostSink(searchId))
	}

	_, err = reddit.NewPipeline(cfg, fetcher, sinks...).Run(ctx, term, subreddit)
	if closeErr := aw.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	log.Printf("Dumped %d posts in file %s", aw.Count(), output)

	if err != nil {
		log.Fatal(err)
	}
}
