package cli

import (
	"context"
	"io"

	"github.com/schererja/pncctl/internal/config"
	"github.com/schererja/pncctl/internal/pnc"
	"github.com/schererja/pncctl/pkg/logger"
)

// BuildService is the remote side of the build commands
type BuildService interface {
	Builds(opts pnc.ListOptions) *pnc.Collection[pnc.Build]
	BuiltArtifacts(buildID string, opts pnc.ListOptions) *pnc.Collection[pnc.Artifact]
	DependencyArtifacts(buildID string, opts pnc.ListOptions) *pnc.Collection[pnc.Artifact]
	GetBuild(ctx context.Context, id string) (*pnc.Build, error)
	TriggerBuild(ctx context.Context, buildConfigID string, params pnc.BuildParameters) (*pnc.Build, error)
	CancelBuild(ctx context.Context, id string) error
	ScmArchive(ctx context.Context, id string) (io.ReadCloser, error)
}

func newClientService(cfg *config.Config, log *logger.Logger) (BuildService, error) {
	return pnc.NewClient(cfg.URL, log, pnc.WithPageSize(cfg.PageSize))
}
