package author

import (
	"os"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	authorCommand := &cobra.Command{
		Use:   "author",
		Short: "Commands for searching authors",
		Example: "  # Finds authors with usernames containing 'gooner'\n" +
			"  " + os.Args[0] + " author grep gooner",
	}

	authorCommand.AddCommand(initContentCommand())
	authorCommand.AddCommand(initGrepCommand())
	authorCommand.AddCommand(initIntersectCommand())

	return authorCommand
}
