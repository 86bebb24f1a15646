package cli

import (
	"github.com/spf13/cobra"

	"github.com/schererja/pncctl/internal/command"
	"github.com/schererja/pncctl/internal/pnc"
)

func (a *app) newBuildGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <build-id>",
		Short: "Show a build",
		Long: `Show the metadata of a single build.

Examples:
  pncctl build get 5678
  pncctl build get 5678 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: a.dispatch,
	}
}

func getBuilder(svc BuildService, in command.Input) (command.Command, error) {
	return &command.GetOne[pnc.Build]{
		ID:    in.Arg(0),
		Fetch: svc.GetBuild,
	}, nil
}
