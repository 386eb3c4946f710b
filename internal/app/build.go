// SPDX-License-Identifier: MPL-2.0

package app

import (
	"context"
	"os"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/issue"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/fspath"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/packaging"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/project"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// BuildRequest configures Session.Build.
type BuildRequest struct {
	// OutputDir defaults to the configured output_dir.
	OutputDir types.FilesystemPath
	Progress  packaging.ProgressFunc
}

// Build packages a snapshot of m. The project is validated before the
// output directory is created, so a project that cannot be built leaves the
// filesystem untouched. The build runs on its own goroutine; canceling ctx
// stops it at the next staging step.
func (s *Session) Build(ctx context.Context, m *project.Model, req BuildRequest) (*packaging.ArchiveResult, error) {
	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = s.Config.OutputDir
	}
	snap := m.Snapshot()

	if err := packaging.Validate(snap, s.Registry); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(string(outputDir), 0o755); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("create output directory").
			WithResource(string(outputDir)).
			WithSuggestion("Set output_dir in the config file or pass --output").
			Wrap(fspath.NewIOError("mkdir", outputDir, err)).
			BuildError()
	}

	// The engine notices cancellation itself; waiting for the task means no
	// temporary file outlives the call.
	task := s.Engine.Start(ctx, snap, s.Registry, packaging.BuildOptions{OutputDir: outputDir, Progress: req.Progress})
	return task.Result()
}
