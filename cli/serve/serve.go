package serve

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/predict"
	"github.com/zvonler/pitchpulse/reddit"
)

var (
	listen string
)

func NewCommand() *cobra.Command {
	serveCommand := &cobra.Command{
		Use:   "serve",
		Short: "Serves match prediction tasks over HTTP",
		Args:  cobra.NoArgs,
		Example: "" +
			"  " + os.Args[0] + " serve --listen :8080\n" +
			"  curl -d home_team=Arsenal -d away_team=Chelsea localhost:8080/start-predict",
		Run: runServeCommand,
	}

	serveCommand.Flags().StringVar(&listen, "listen", ":8080", "Address to listen on")
	viper.BindPFlag("serve.listen", serveCommand.Flags().Lookup("listen"))

	return serveCommand
}

func runServeCommand(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	cfg := configuration.ScraperConfig()

	fetcher, err := reddit.NewFetcher(cfg)
	if err != nil {
		log.Fatal(err)
	}

	remote := predict.NewRemoteModel(configuration.ModelConfig())
	runner := &predict.Runner{
		Searcher:   reddit.NewPipeline(cfg, fetcher),
		Subreddit:  viper.GetString("serve.subreddit"),
		Classifier: remote,
		Predictor:  remote,
		Odds:       remote,
	}

	registry := predict.NewRegistry(ctx, runner,
		viper.GetInt("serve.max_tasks"), viper.GetDuration("serve.task_ttl"))

	server := &http.Server{
		Addr:    viper.GetString("serve.listen"),
		Handler: predict.NewRouter(registry),
	}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	log.Printf("Starting server on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	registry.Wait()
}
