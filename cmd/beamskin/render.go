// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/issue"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/packaging"
)

// renderError writes err for the user: a one-line summary with suggestions,
// the validation problems if any, and the matching catalog issue rendered as
// markdown.
func renderError(w io.Writer, err error, verbose bool) {
	if err == nil {
		return
	}
	if errors.Is(err, errDeclined) {
		_, _ = fmt.Fprintln(w, SubtitleStyle.Render("Aborted."))
		return
	}

	_, _ = fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	if iss := catalogIssue(err); iss != nil {
		rendered, renderErr := iss.Render(markdownStyle(w))
		if renderErr == nil {
			_, _ = fmt.Fprint(w, rendered)
		}
	}
}

// formatErrorForDisplay formats an error for user display. Validation
// errors list one problem per line; actionable errors carry suggestions.
func formatErrorForDisplay(err error, verboseMode bool) string {
	if verr, ok := errors.AsType[*packaging.ValidationError](err); ok {
		var b strings.Builder
		b.WriteString(packaging.ErrValidationFailed.Error())
		for _, p := range verr.Problems {
			b.WriteString("\n")
			b.WriteString(problemStyle.Render("- " + p.String()))
		}
		return b.String()
	}
	if ae, ok := errors.AsType[*issue.ActionableError](err); ok {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

func catalogIssue(err error) *issue.Issue {
	if ae, ok := errors.AsType[*issue.ActionableError](err); ok {
		return ae.CatalogIssue()
	}
	return issue.ForError(err)
}

// markdownStyle picks the glamour style: colored on a terminal, plain
// otherwise.
func markdownStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}
