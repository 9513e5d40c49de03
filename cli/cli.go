package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zvonler/pitchpulse/cli/author"
	"github.com/zvonler/pitchpulse/cli/history"
	"github.com/zvonler/pitchpulse/cli/parse"
	"github.com/zvonler/pitchpulse/cli/post"
	"github.com/zvonler/pitchpulse/cli/search"
	"github.com/zvonler/pitchpulse/cli/serve"
	"github.com/zvonler/pitchpulse/configuration"
)

var (
	dbPath  string
	cfgFile string
	verbose bool
)

func NewCommand() *cobra.Command {
	pitchpulseCli := &cobra.Command{
		Use:     "pitchpulse",
		Short:   "PitchPulse CLI",
		Long:    "PitchPulse Command Line Interface",
		Example: fmt.Sprintf("  %s <command> [flags...]", os.Args[0]),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configuration.InitLogging(verbose)
			return configuration.Load(cfgFile)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pitchpulseCli.PersistentFlags().StringVar(&dbPath, "database", "pitchpulse.db", "Database filename")
	viper.BindPFlag("database", pitchpulseCli.PersistentFlags().Lookup("database"))
	pitchpulseCli.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./pitchpulse.yaml)")
	pitchpulseCli.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	pitchpulseCli.AddCommand(author.NewCommand())
	pitchpulseCli.AddCommand(history.NewCommand())
	pitchpulseCli.AddCommand(parse.NewCommand())
	pitchpulseCli.AddCommand(post.NewCommand())
	pitchpulseCli.AddCommand(search.NewCommand())
	pitchpulseCli.AddCommand(serve.NewCommand())

	return pitchpulseCli
}
