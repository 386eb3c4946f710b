// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output. The colors are chosen for dark
// terminal backgrounds.
const (
	// ColorPrimary is purple, used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for subtitles and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green, used for finished builds and saved changes.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber, used for warnings such as missing textures.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue, used for vehicle ids, keys, and paths.
	ColorHighlight = lipgloss.Color("#3B82F6")

	// ColorVerbose is light gray, used for verbose details.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// KeyStyle is for vehicle ids, config keys, and other identifiers.
	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// VerboseStyle is for supplementary information.
	VerboseStyle = lipgloss.NewStyle().
			Foreground(ColorVerbose)

	// badgeStyle marks custom vehicles in listings.
	badgeStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Italic(true)

	// problemStyle indents validation problems under their heading.
	problemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(ColorVerbose)
)
