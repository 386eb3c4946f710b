// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type (
	// ActionableError is a failed command step as shown to the user: the
	// step, the file or vehicle it touched, and what to try next.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("open project").
	//		WithResource("./stripes.bsproject").
	//		WithSuggestion("Run 'beamskin project new' to create one").
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "register vehicle".
		Operation string
		// Resource names the path or vehicle involved, if any.
		Resource    string
		Suggestions []string
		Cause       error
		// Issue selects the catalog entry rendered below the message. When
		// zero, the entry is derived from Cause with ForError.
		Issue Id
	}

	// ErrorContext accumulates an ActionableError step by step, so a
	// command can name its operation before it knows the cause.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
		issue       Id
	}
)

// NewErrorContext returns an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error renders "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders Error followed by one bulleted line per suggestion. In
// verbose mode the unwrapped cause chain is appended, outermost first.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}
	return msg.String()
}

// CatalogIssue returns the catalog entry for this error, or nil.
func (e *ActionableError) CatalogIssue() *Issue {
	if e.Issue != 0 {
		return Get(e.Issue)
	}
	return ForError(e.Cause)
}

func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends one hint; call it again for more.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithIssue pins the catalog entry instead of deriving it from the cause.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	return c
}

func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build returns nil until an operation is set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: slices.Clone(c.suggestions),
		Cause:       c.cause,
		Issue:       c.issue,
	}
}

// BuildError is Build typed as error, so that a missing operation yields a
// nil interface rather than a typed nil.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
