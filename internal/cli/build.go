package cli

import (
	"github.com/spf13/cobra"

	"github.com/schererja/pncctl/internal/command"
	"github.com/schererja/pncctl/pkg/logger"
)

// newBuildCmd creates and returns the build command with all subcommands
func (a *app) newBuildCmd() *cobra.Command {
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Start, cancel, list and inspect builds",
		Long: `The build commands operate on the build resource of the service.

Examples:
  pncctl build start 1234 --rebuild-mode=FORCE --temporary-build=true
  pncctl build cancel 5678
  pncctl build list --sort=endTime=desc --query=status==SUCCESS
  pncctl build list-built-artifacts 5678
  pncctl build list-dependencies 5678
  pncctl build get 5678
  pncctl build download-sources 5678`,
	}

	buildCmd.AddCommand(a.newBuildStartCmd())
	buildCmd.AddCommand(a.newBuildCancelCmd())
	buildCmd.AddCommand(a.newBuildListCmd())
	buildCmd.AddCommand(a.newBuildListBuiltArtifactsCmd())
	buildCmd.AddCommand(a.newBuildListDependenciesCmd())
	buildCmd.AddCommand(a.newBuildGetCmd())
	buildCmd.AddCommand(a.newBuildDownloadSourcesCmd())

	return buildCmd
}

// registerBuildCommands binds every build sub-command name to its builder
func registerBuildCommands(d *command.Dispatcher[BuildService], log *logger.Logger) {
	d.Register("start", startBuilder)
	d.Register("cancel", cancelBuilder)
	d.Register("list", listBuildsBuilder)
	d.Register("list-built-artifacts", listBuiltArtifactsBuilder)
	d.Register("list-dependencies", listDependenciesBuilder)
	d.Register("get", getBuilder)
	d.Register("download-sources", downloadSourcesBuilder(log))
}
