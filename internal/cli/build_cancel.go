package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/schererja/pncctl/internal/command"
)

func (a *app) newBuildCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <build-id>",
		Short: "Cancel a running build",
		Long: `Ask the service to cancel a running build. Nothing is printed on success.

Examples:
  pncctl build cancel 5678`,
		Args: cobra.ExactArgs(1),
		RunE: a.dispatch,
	}
}

func cancelBuilder(svc BuildService, in command.Input) (command.Command, error) {
	return &command.Action[command.NoParams, struct{}]{
		ID: in.Arg(0),
		Do: func(ctx context.Context, id string, _ command.NoParams) (*struct{}, error) {
			return nil, svc.CancelBuild(ctx, id)
		},
	}, nil
}
