// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
)

// Text styles.
var (
	// Package renders package names.
	Package = lipgloss.NewStyle().Foreground(Iris).Bold(true)
	// Path renders filesystem paths.
	Path = lipgloss.NewStyle().Foreground(Slate)
	// Missing renders entries that no longer exist on disk.
	Missing = lipgloss.NewStyle().Foreground(Red).Strikethrough(true)
)
