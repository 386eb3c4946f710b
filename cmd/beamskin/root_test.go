// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/app"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/issue"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/testutil"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/tui"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/watch"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/fspath"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/packaging"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/project"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/registry"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

type cliHarness struct {
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	stdin  *strings.Reader
}

// newHarness returns a harness whose sessions read a config file pointing
// every directory into a temporary directory.
func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf("data_dir: %q\noutput_dir: %q\nauthor_name: \"Jo\"\n",
		filepath.Join(dir, "data"), filepath.Join(dir, "mods"))
	testutil.MustWriteFile(t, filepath.Join(dir, "config", "config.cue"), cfg)
	return &cliHarness{dir: dir, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, stdin: strings.NewReader("")}
}

func (h *cliHarness) run(args ...string) error {
	h.stdout.Reset()
	h.stderr.Reset()
	a := NewApp(Dependencies{
		Stdin:  h.stdin,
		Stdout: h.stdout,
		Stderr: h.stderr,
		Open: func(ctx context.Context, opts app.Options) (*app.Session, error) {
			opts.Config.ConfigDirPath = types.FilesystemPath(filepath.Join(h.dir, "config"))
			return app.Open(ctx, opts)
		},
	})
	root := NewRootCommand(a)
	root.SetArgs(args)
	root.SetOut(h.stdout)
	root.SetErr(h.stderr)
	return root.ExecuteContext(context.Background())
}

func (h *cliHarness) path(elem ...string) string {
	return filepath.Join(append([]string{h.dir}, elem...)...)
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{"nil", nil, types.ExitSuccess},
		{"plain", errors.New("boom"), types.ExitFailure},
		{"explicit", &ExitError{Code: 7}, 7},
		{"declined", &ExitError{Code: types.ExitCanceled, Err: errDeclined}, types.ExitCanceled},
		{"prompt cancelled", fmt.Errorf("confirm: %w", tui.ErrCancelled), types.ExitCanceled},
		{"context canceled", context.Canceled, types.ExitCanceled},
		{"validation", &packaging.ValidationError{Problems: []packaging.Problem{{Kind: packaging.ProblemNoVehicles}}}, types.ExitInvalidInput},
		{"archive exists", &packaging.ArchiveExistsError{Path: "x.zip"}, types.ExitConflict},
		{"duplicate vehicle", &registry.DuplicateVehicleIDError{ID: "etk800"}, types.ExitConflict},
		{"builtin vehicle", &registry.BuiltinVehicleError{ID: "etk800"}, types.ExitConflict},
		{"naming contract", &project.NamingContractError{VehicleID: "etk800", Reason: "r"}, types.ExitInvalidInput},
		{"malformed", &configdoc.MalformedConfigError{Path: "a.jbeam", Offset: 3, Reason: "r"}, types.ExitInvalidInput},
		{"watch config", &watch.InvalidWatchConfigError{FieldErrors: []error{errors.New("debounce")}}, types.ExitInvalidInput},
		{"io", fspath.NewIOError("write", "x", errors.New("disk full")), types.ExitFailure},
		{"wrapped conflict", issue.NewErrorContext().WithOperation("create project").Wrap(app.ErrProjectExists).Build(), types.ExitConflict},
		{
			"config",
			issue.NewErrorContext().WithOperation("load configuration").WithIssue(issue.ConfigLoadFailedId).Wrap(errors.New("bad")).Build(),
			types.ExitUsage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	verr := &packaging.ValidationError{Problems: []packaging.Problem{
		{Kind: packaging.ProblemNoVehicles, Message: "the project has no vehicles"},
		{Kind: packaging.ProblemInvalidModName, Message: "invalid mod name"},
	}}
	got := formatErrorForDisplay(verr, false)
	if !strings.HasPrefix(got, "project validation failed") {
		t.Errorf("missing heading: %q", got)
	}
	if !strings.Contains(got, "- the project has no vehicles") || !strings.Contains(got, "- invalid mod name") {
		t.Errorf("expected one line per problem, got %q", got)
	}

	ae := issue.NewErrorContext().
		WithOperation("open project").
		WithResource("demo.bsproject").
		WithSuggestion("Create it first").
		Wrap(os.ErrNotExist).
		Build()
	got = formatErrorForDisplay(ae, false)
	if !strings.Contains(got, "failed to open project: demo.bsproject") || !strings.Contains(got, "Create it first") {
		t.Errorf("formatErrorForDisplay(actionable) = %q", got)
	}
	if got := formatErrorForDisplay(errors.New("plain"), true); got != "plain" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}
}

func TestRenderError(t *testing.T) {
	t.Parallel()

	t.Run("declined", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		renderError(&buf, &ExitError{Code: types.ExitCanceled, Err: errDeclined}, false)
		if got := buf.String(); !strings.Contains(got, "Aborted.") || strings.Contains(got, "Error") {
			t.Errorf("renderError(declined) = %q", got)
		}
	})

	t.Run("catalog issue", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		renderError(&buf, &registry.UnknownVehicleIDError{ID: "hovercraft"}, false)
		got := buf.String()
		if !strings.Contains(got, `vehicle "hovercraft" is not registered`) {
			t.Errorf("missing summary: %q", got)
		}
		if !strings.Contains(got, "vehicle search") {
			t.Errorf("expected the rendered catalog issue, got %q", got)
		}
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		renderError(&buf, nil, true)
		if buf.Len() != 0 {
			t.Errorf("renderError(nil) wrote %q", buf.String())
		}
	})
}

func TestCLI_ProjectRoundTrip(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	proj := h.path("demo.bsproject")
	tex := testutil.WriteTexture(t, h.dir, "etk800_skin_Red.dds")

	steps := [][]string{
		{"project", "new", "-p", proj, "--mod-name", "demo"},
		{"project", "add-vehicle", "-p", proj, "etk800"},
		{"project", "add-skin", "-p", proj, "etk800", tex},
	}
	for _, args := range steps {
		if err := h.run(args...); err != nil {
			t.Fatalf("%v: %v\nstderr: %s", args, err, h.stderr)
		}
	}

	m, warnings, err := project.Load(types.FilesystemPath(proj))
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
	if got := m.Info(); got.ModName != "demo" || got.AuthorName != "Jo" {
		t.Errorf("Info() = %+v", got)
	}
	v, ok := m.Vehicle("etk800")
	if !ok || len(v.Assets) != 1 || v.Assets[0].DisplayName != "Red" {
		t.Fatalf("Vehicle(etk800) = %+v, %v", v, ok)
	}

	if err := h.run("build", "-p", proj); err != nil {
		t.Fatalf("build: %v\nstderr: %s", err, h.stderr)
	}
	if !strings.Contains(h.stdout.String(), "Built") {
		t.Errorf("stdout = %q", h.stdout)
	}
	if _, err := os.Stat(h.path("mods", "demo.zip")); err != nil {
		t.Errorf("archive missing: %v", err)
	}
}

func TestCLI_FailedEditLeavesProjectUnchanged(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	proj := h.path("demo.bsproject")
	if err := h.run("project", "new", "-p", proj); err != nil {
		t.Fatal(err)
	}
	if err := h.run("project", "add-vehicle", "-p", proj, "etk800"); err != nil {
		t.Fatal(err)
	}
	before := testutil.MustReadFile(t, proj)

	err := h.run("project", "add-skin", "-p", proj, "etk800", h.path("ETK800_skin_Red.dds"))
	if !errors.Is(err, project.ErrNamingContractViolation) {
		t.Fatalf("error = %v, want a naming contract violation", err)
	}
	if got := testutil.MustReadFile(t, proj); got != before {
		t.Errorf("project file changed:\n%s", got)
	}
}

func TestCLI_ConfirmDeclined(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	proj := h.path("demo.bsproject")
	for _, args := range [][]string{
		{"project", "new", "-p", proj},
		{"project", "add-vehicle", "-p", proj, "etk800", "pickup"},
	} {
		if err := h.run(args...); err != nil {
			t.Fatal(err)
		}
	}

	h.stdin = strings.NewReader("n\n")
	err := h.run("project", "clear", "-p", proj)
	if got := exitCodeFor(err); got != types.ExitCanceled {
		t.Fatalf("exit code = %d (%v), want %d", got, err, types.ExitCanceled)
	}
	m, _, err := project.Load(types.FilesystemPath(proj))
	if err != nil {
		t.Fatal(err)
	}
	if m.VehicleCount() != 2 {
		t.Errorf("VehicleCount() = %d after declining, want 2", m.VehicleCount())
	}

	h.stdin = strings.NewReader("y\n")
	if err := h.run("project", "clear", "-p", proj); err != nil {
		t.Fatal(err)
	}
	m, _, err = project.Load(types.FilesystemPath(proj))
	if err != nil {
		t.Fatal(err)
	}
	if m.VehicleCount() != 0 {
		t.Errorf("VehicleCount() = %d after confirming, want 0", m.VehicleCount())
	}
}

func TestCLI_VehicleShowUnknown(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	err := h.run("vehicle", "show", "hovercraft")
	if !errors.Is(err, registry.ErrUnknownVehicleID) {
		t.Fatalf("error = %v, want ErrUnknownVehicleID", err)
	}
	if got := exitCodeFor(err); got != types.ExitInvalidInput {
		t.Errorf("exit code = %d, want %d", got, types.ExitInvalidInput)
	}
}
