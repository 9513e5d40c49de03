package post

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/artifact"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/database"
	"github.com/zvonler/pitchpulse/model"
)

var (
	exportOutput string
	exportFormat string
)

func initExportCommand() *cobra.Command {
	exportCommand := &cobra.Command{
		Use:   "export <post_id | post_URL>...",
		Short: "Writes stored posts to an artifact file",
		Args:  cobra.MinimumNArgs(1),
		Run:   runExportCommand,
	}

	exportCommand.Flags().StringVarP(&exportOutput, "output", "o", "reddit-data.json", "Artifact filename")
	exportCommand.Flags().StringVar(&exportFormat, "format", "", "Artifact format, json or yaml (default from the output extension)")

	return exportCommand
}

func runExportCommand(cmd *cobra.Command, args []string) {
	var err error
	var sdb *database.ScraperDB
	var format artifact.Format

	if format, err = artifact.FormatFor(exportOutput, exportFormat); err != nil {
		log.Fatal(err)
	}

	posts := make([]model.Post, 0, len(args))
	if sdb, err = configuration.OpenExistingDatabase(); err == nil {
		defer sdb.Close()
		for _, ref := range args {
			var sp model.StoredPost
			if sp, err = sdb.FindPost(ref); err != nil {
				break
			}
			posts = append(posts, sp.Post)
		}
	}

	if err == nil {
		err = artifact.Write(exportOutput, format, posts)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Dumped %d posts in file %s", len(posts), exportOutput)
}
