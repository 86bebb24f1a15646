package cli

import (
	"github.com/spf13/cobra"

	"github.com/schererja/pncctl/internal/command"
	"github.com/schererja/pncctl/internal/pnc"
)

func (a *app) newBuildStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <build-config-id>",
		Short: "Start a new build",
		Long: `Start a new build of a build configuration.

The build is queued on the service and the new build is printed. Option values
are validated before anything is sent.

Examples:
  pncctl build start 1234
  pncctl build start 1234 --rebuild-mode=FORCE
  pncctl build start 1234 --temporary-build=true --keep-pod-on-failure=true`,
		Args: cobra.ExactArgs(1),
		RunE: a.dispatch,
	}

	cmd.Flags().String("rebuild-mode", "", "FORCE, IMPLICIT_DEPENDENCY_CHECK or EXPLICIT_DEPENDENCY_CHECK (default IMPLICIT_DEPENDENCY_CHECK)")
	cmd.Flags().String("keep-pod-on-failure", "false", "keep the build pod when the build fails")
	cmd.Flags().String("timestamp-alignment", "false", "align artifact versions with a timestamp")
	cmd.Flags().String("temporary-build", "false", "mark the build as temporary")

	return cmd
}

func startBuilder(svc BuildService, in command.Input) (command.Command, error) {
	return &command.Action[pnc.BuildParameters, pnc.Build]{
		ID: in.Arg(0),
		Params: func() (pnc.BuildParameters, error) {
			return pnc.ParseBuildParameters(
				in.FlagOr("rebuild-mode", ""),
				in.FlagOr("keep-pod-on-failure", "false"),
				in.FlagOr("timestamp-alignment", "false"),
				in.FlagOr("temporary-build", "false"),
			)
		},
		Do: svc.TriggerBuild,
	}, nil
}
