package cli

import (
	"github.com/spf13/cobra"

	"github.com/schererja/pncctl/internal/command"
	"github.com/schererja/pncctl/pkg/logger"
)

func (a *app) newBuildDownloadSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download-sources <build-id>",
		Short: "Download the SCM sources used for a build",
		Long: `Download the SCM source archive of a build to <build-id>-sources.tar.gz.

The command fails if that file already exists.

Examples:
  pncctl build download-sources 5678
  pncctl build download-sources 5678 --output-dir ./sources`,
		Args: cobra.ExactArgs(1),
		RunE: a.dispatch,
	}
	cmd.Flags().String("output-dir", ".", "directory to write the archive to")
	return cmd
}

func downloadSourcesBuilder(log *logger.Logger) command.Builder[BuildService] {
	return func(svc BuildService, in command.Input) (command.Command, error) {
		return &command.StreamDownload{
			ID:   in.Arg(0),
			Dir:  in.FlagOr("output-dir", "."),
			Open: svc.ScmArchive,
			Log:  log,
		}, nil
	}
}
