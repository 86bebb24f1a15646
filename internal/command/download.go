package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/docker/go-units"

	"github.com/schererja/pncctl/pkg/logger"
)

// SourcesFileName is the archive name download-sources writes for a build
func SourcesFileName(id string) string {
	return id + "-sources.tar.gz"
}

// StreamDownload copies a remote byte stream into a new local file.
//
// The destination is created exclusively before the stream is requested, so an
// existing file is never touched and no remote call is made in that case. The
// stream and the file are closed on every path; a failed copy removes the
// partial file.
type StreamDownload struct {
	ID   string
	Dir  string
	Open func(ctx context.Context, id string) (io.ReadCloser, error)
	Log  *logger.Logger
}

func (d *StreamDownload) Execute(ctx context.Context, _ Printer) error {
	if d.ID == "" {
		return invalid(errMissingID)
	}
	if filepath.Base(d.ID) != d.ID {
		return invalid(fmt.Errorf("identifier %q cannot be used as a file name", d.ID))
	}
	log := d.Log
	if log == nil {
		log = logger.Discard()
	}

	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	destPath := filepath.Join(dir, SourcesFileName(d.ID))

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return localIO(fmt.Errorf("refusing to overwrite existing file %s", destPath))
		}
		return localIO(fmt.Errorf("failed to create file: %w", err))
	}

	n, err := d.copy(ctx, out)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = localIO(fmt.Errorf("failed to save file: %w", closeErr))
	}
	if err != nil {
		// Clean up partial download
		if rmErr := os.Remove(destPath); rmErr != nil {
			log.Warn("Failed to remove partial download",
				slog.String("path", destPath),
				slog.String("error", rmErr.Error()))
		}
		return err
	}

	log.InfoContext(ctx, "Downloaded sources",
		slog.String("build", d.ID),
		slog.String("path", destPath),
		slog.String("size", units.HumanSize(float64(n))))
	return nil
}

func (d *StreamDownload) copy(ctx context.Context, out *os.File) (int64, error) {
	in, err := d.Open(ctx, d.ID)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return n, localIO(fmt.Errorf("failed to save file after %s: %w", units.HumanSize(float64(n)), err))
	}
	return n, nil
}
