package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are presented.
type OutputMode int

const (
	// OutputModePlain writes unstyled text, suitable for pipes.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes a single lipgloss-styled render.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea program.
	OutputModeInteractive
)

func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// Fallback terminal dimensions.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// DetectOutputMode picks the output mode for w.
// forcePlain disables styling and interaction; noTUI keeps styling but skips
// the interactive program. NO_COLOR in the environment, or noColor, turns a
// styled render into plain text.
func DetectOutputMode(w io.Writer, forcePlain, noTUI, noColor bool) OutputMode {
	return detectOutputMode(IsTerminal(w), os.Getenv("NO_COLOR") != "", forcePlain, noTUI, noColor)
}

func detectOutputMode(isTTY, envNoColor, forcePlain, noTUI, noColor bool) OutputMode {
	if forcePlain || !isTTY {
		return OutputModePlain
	}
	if noTUI {
		if noColor || envNoColor {
			return OutputModePlain
		}
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the width of stdout, or a default when unknown.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
