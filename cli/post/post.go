package post

import (
	"os"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	postCommand := &cobra.Command{
		Use:   "post",
		Short: "Commands for stored posts",
		Example: "  # Finds posts with comments mentioning 'penalty'\n" +
			"  " + os.Args[0] + " post grep penalty",
	}

	postCommand.AddCommand(initContentCommand())
	postCommand.AddCommand(initExportCommand())
	postCommand.AddCommand(initGrepCommand())
	postCommand.AddCommand(initListCommand())
	postCommand.AddCommand(initOpenCommand())
	postCommand.AddCommand(initParticipantsCommand())
	postCommand.AddCommand(initPresentCommand())
	postCommand.AddCommand(initWordcloudCommand())

	return postCommand
}
