package parse

import (
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/cli/render"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/reddit"
)

var (
	asJSON bool
)

func NewCommand() *cobra.Command {
	parseCommand := &cobra.Command{
		Use:   "parse <URL>",
		Short: "Parse a single thread URL and describe its contents",
		Args:  cobra.ExactArgs(1),
		Example: "" +
			"  " + os.Args[0] + " parse https://old.reddit.com/r/soccer/comments/abc123/derby/",
		Run: runParseCommand,
	}

	parseCommand.Flags().BoolVar(&asJSON, "json", false, "Print the post as JSON")

	return parseCommand
}

func runParseCommand(cmd *cobra.Command, args []string) {
	cfg := configuration.ScraperConfig()

	fetcher, err := reddit.NewFetcher(cfg)
	if err != nil {
		log.Fatal(err)
	}

	post, err := reddit.NewPipeline(cfg, fetcher).FetchPost(cmd.Context(), args[0])
	if err != nil {
		log.Fatal(err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(post)
	} else {
		err = render.Post(post)
	}
	if err != nil {
		log.Fatal(err)
	}
}
