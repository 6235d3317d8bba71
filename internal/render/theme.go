package render

import "github.com/zhych125/lessgo/internal/term"

// Theme holds the named style slots used while drawing a frame: three for
// the status line (normal, error, search prompt) plus one for match
// highlights. Concrete colors are a presentation detail left to whoever
// constructs a Theme (flag, env var, or DefaultTheme); the seam itself —
// named slots, not hardcoded styles scattered through the draw code — is
// what the render package depends on.
type Theme struct {
	Normal       term.Style
	Error        term.Style
	SearchPrompt term.Style
	Highlight    term.Style
}

// DefaultTheme returns a reasonable ANSI-16 theme.
func DefaultTheme() Theme {
	return Theme{
		Normal:       term.Style{Foreground: term.ColorDefault, Background: term.ColorDefault},
		Error:        term.Style{Foreground: 1, Background: term.ColorDefault},
		SearchPrompt: term.Style{Foreground: 3, Background: term.ColorDefault},
		Highlight:    term.Style{Foreground: term.ColorDefault, Background: term.ColorDefault, Reverse: true},
	}
}
