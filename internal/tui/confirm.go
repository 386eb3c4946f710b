// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"bufio"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const keyCtrlC = "ctrl+c"

// All type declarations in a single block for decorder compliance.
type (
	// ConfirmOptions configures the Confirm component.
	ConfirmOptions struct {
		// Title is the question/prompt to display.
		Title string
		// Description provides additional context below the title.
		Description string
		// Affirmative is the text for the affirmative option (default: "Yes").
		Affirmative string
		// Negative is the text for the negative option (default: "No").
		Negative string
		// Default is the default value (true for yes, false for no).
		Default bool
		// Config holds common TUI configuration.
		Config Config
	}

	// confirmModel is the bubbletea model behind Confirm.
	confirmModel struct {
		title       string
		description string
		affirmative string
		negative    string
		selection   bool
		done        bool
		cancelled   bool
		width       int
	}
)

// Confirm prompts the user to confirm an action (yes/no).
// Returns true for affirmative, false for negative, or ErrCancelled.
func Confirm(opts ConfirmOptions) (bool, error) {
	if opts.Config.Accessible {
		return confirmLine(opts)
	}

	var programOpts []tea.ProgramOption
	if opts.Config.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Config.Input))
	}
	if opts.Config.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Config.Output))
	}
	finalModel, err := tea.NewProgram(newConfirmModel(opts), programOpts...).Run()
	if err != nil {
		return false, err
	}

	m := finalModel.(*confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.selection, nil
}

// confirmLine asks on a single line and reads one answer. An empty answer
// picks the default.
func confirmLine(opts ConfirmOptions) (bool, error) {
	hint := "y/N"
	if opts.Default {
		hint = "Y/n"
	}
	if opts.Description != "" {
		fmt.Fprintln(opts.Config.Output, opts.Description)
	}
	fmt.Fprintf(opts.Config.Output, "%s [%s] ", opts.Title, hint)

	line, err := bufio.NewReader(opts.Config.Input).ReadString('\n')
	if err != nil && line == "" {
		return false, ErrCancelled
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return opts.Default, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("unrecognized answer %q", strings.TrimSpace(line))
	}
}

func newConfirmModel(opts ConfirmOptions) *confirmModel {
	m := &confirmModel{
		title:       opts.Title,
		description: opts.Description,
		affirmative: opts.Affirmative,
		negative:    opts.Negative,
		selection:   opts.Default,
	}
	if m.affirmative == "" {
		m.affirmative = "Yes"
	}
	if m.negative == "" {
		m.negative = "No"
	}
	return m
}

// Init implements tea.Model.
func (m *confirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case keyCtrlC, "esc":
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		case "y":
			m.selection = true
			m.done = true
			return m, tea.Quit
		case "n":
			m.selection = false
			m.done = true
			return m, tea.Quit
		case "left", "h":
			m.selection = true
		case "right", "l":
			m.selection = false
		case "up", "down", "tab", "shift+tab":
			m.selection = !m.selection
		case "enter", " ":
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	return m, nil
}

// View implements tea.Model.
func (m *confirmModel) View() string {
	if m.done {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7C3AED")).Bold(true).Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Padding(0, 1)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	yesView := inactiveStyle.Render(m.affirmative)
	noView := inactiveStyle.Render(m.negative)
	if m.selection {
		yesView = activeStyle.Render(m.affirmative)
	} else {
		noView = activeStyle.Render(m.negative)
	}

	lines := make([]string, 0, 4)
	if m.title != "" {
		lines = append(lines, titleStyle.Render(m.title))
	}
	if m.description != "" {
		lines = append(lines, descStyle.Render(m.description))
	}
	lines = append(lines,
		yesView+"  "+noView,
		helpStyle.Render("enter submit • y yes • n no • esc cancel"),
	)

	view := strings.Join(lines, "\n")
	if m.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.width).Render(view)
	}
	return view
}
