// Package term abstracts the terminal drawing surface so the render
// coordinator depends on an interface rather than a concrete library. The
// concrete implementation (tcell.go) wraps github.com/gdamore/tcell/v2.
package term

import "github.com/zhych125/lessgo/internal/input"

// Style is a foreground/background/attribute triple. The concrete meaning
// of the fields is owned by the Screen implementation; callers only ever
// pass Style values obtained from a Theme.
type Style struct {
	Foreground Color
	Background Color
	Reverse    bool
}

// Color is an indexed terminal color; -1 means "terminal default".
type Color int32

const ColorDefault Color = -1

// Screen is the terminal drawing surface the render coordinator targets.
// Implementations must enter raw mode, the alternate screen, and mouse
// capture on Init, and restore all three on Close (including when Close
// runs from a deferred recover after a panic).
type Screen interface {
	// Init enters raw mode / alternate screen / mouse capture.
	Init() error
	// Close restores the terminal to its prior state. Idempotent.
	Close() error
	// Size returns the current terminal dimensions in columns, rows.
	Size() (width, height int)
	// SetCell draws a single rune at (x, y) with the given style.
	SetCell(x, y int, r rune, style Style)
	// Clear blanks the entire screen.
	Clear()
	// Show flushes pending SetCell/Clear calls to the terminal.
	Show()
	// PollEvent blocks for the next input event. It returns ok=false once
	// the screen has been closed.
	PollEvent() (Event, bool)
}

// EventKind discriminates the Event union.
type EventKind int

const (
	EventKey EventKind = iota
	EventMouse
	EventResize
)

// Event is a single terminal input event translated into the vocabulary
// internal/input expects.
type Event struct {
	Kind EventKind

	Key input.Key // valid when Kind == EventKey

	// valid when Kind == EventMouse
	MouseScrollDir input.ScrollDir
	IsScroll       bool

	// valid when Kind == EventResize
	Width, Height int
}
