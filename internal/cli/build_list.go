package cli

import (
	"github.com/spf13/cobra"

	"github.com/schererja/pncctl/internal/command"
	"github.com/schererja/pncctl/internal/pnc"
)

func (a *app) newBuildListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List builds",
		Long: `List builds, one record per build, in the order the service returns them.

Examples:
  pncctl build list
  pncctl build list --sort=endTime=desc --query=status==SUCCESS
  pncctl build list --output json --page-size 200`,
		Args: cobra.NoArgs,
		RunE: a.dispatch,
	}
	addListFlags(cmd)
	return cmd
}

func (a *app) newBuildListBuiltArtifactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-built-artifacts <build-id>",
		Short: "List the artifacts a build produced",
		Long: `List the artifacts produced by a build.

Examples:
  pncctl build list-built-artifacts 5678
  pncctl build list-built-artifacts 5678 --query=filename=like=%.jar`,
		Args: cobra.ExactArgs(1),
		RunE: a.dispatch,
	}
	addListFlags(cmd)
	return cmd
}

func (a *app) newBuildListDependenciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-dependencies <build-id>",
		Short: "List the artifacts a build depended on",
		Long: `List the dependency artifacts of a build.

Examples:
  pncctl build list-dependencies 5678
  pncctl build list-dependencies 5678 --sort=identifier=asc`,
		Args: cobra.ExactArgs(1),
		RunE: a.dispatch,
	}
	addListFlags(cmd)
	return cmd
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("sort", "", "sort expression, e.g. endTime=desc")
	cmd.Flags().String("query", "", "query expression, e.g. status==SUCCESS")
}

// listOptions keeps sort and query absent unless the user set them
func listOptions(in command.Input) pnc.ListOptions {
	return pnc.ListOptions{
		Sort:  in.FlagPtr("sort"),
		Query: in.FlagPtr("query"),
	}
}

func listBuildsBuilder(svc BuildService, in command.Input) (command.Command, error) {
	return &command.List[pnc.Build]{
		Open:    svc.Builds,
		Options: listOptions(in),
	}, nil
}

func listBuiltArtifactsBuilder(svc BuildService, in command.Input) (command.Command, error) {
	buildID := in.Arg(0)
	return &command.List[pnc.Artifact]{
		Open: func(opts pnc.ListOptions) *pnc.Collection[pnc.Artifact] {
			return svc.BuiltArtifacts(buildID, opts)
		},
		Options: listOptions(in),
	}, nil
}

func listDependenciesBuilder(svc BuildService, in command.Input) (command.Command, error) {
	buildID := in.Arg(0)
	return &command.List[pnc.Artifact]{
		Open: func(opts pnc.ListOptions) *pnc.Collection[pnc.Artifact] {
			return svc.DependencyArtifacts(buildID, opts)
		},
		Options: listOptions(in),
	}, nil
}
