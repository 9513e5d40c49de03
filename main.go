package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/zvonler/pitchpulse/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pitchpulseCmd := cli.NewCommand()
	if err := pitchpulseCmd.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}
